package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/FlyinPancake/tauri-presentation/internal/errors"
	"github.com/FlyinPancake/tauri-presentation/internal/logging"
	"github.com/FlyinPancake/tauri-presentation/internal/progress"
	"github.com/FlyinPancake/tauri-presentation/internal/sieve"
)

// Messages returned to callers.
const (
	msgEmptyName    = "Don't be so shy, introduce yourself"
	msgDivideByZero = "Cannot divide by zero"
)

type handlers struct {
	deps Deps
}

func (h *handlers) greet(_ context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[GreetArgs](raw)
	if err != nil {
		return nil, err
	}
	if args.Name == "" {
		return nil, apperrors.NewValidationError("name", msgEmptyName)
	}
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", args.Name), nil
}

func (h *handlers) performCalculation(_ context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[CalculationArgs](raw)
	if err != nil {
		return nil, err
	}
	return Calculate(args.A, args.B, args.Operation)
}

// Calculate applies op to a and b with int32 wrapping arithmetic.
func Calculate(a, b int32, op Operation) (int32, error) {
	switch op {
	case Add:
		return a + b, nil
	case Subtract:
		return a - b, nil
	case Multiply:
		return a * b, nil
	case Divide:
		if b == 0 {
			return 0, apperrors.NewValidationError("b", msgDivideByZero)
		}
		return a / b, nil
	}
	return 0, apperrors.NewValidationError("operation", fmt.Sprintf("unknown operation %q", string(op)))
}

func (h *handlers) systemInfo(_ context.Context, _ json.RawMessage) (any, error) {
	host := h.deps.Host()
	stats := h.deps.Sample()
	return SystemInfo{
		OS:         host.OS,
		Arch:       host.Arch,
		Hostname:   host.Hostname,
		Timestamp:  uint64(h.deps.Now().Unix()),
		NumCPU:     host.NumCPU,
		CPUPercent: stats.CPUPercent,
		MemPercent: stats.MemPercent,
	}, nil
}

func (h *handlers) asyncTask(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[AsyncTaskArgs](raw)
	if err != nil {
		return nil, err
	}
	if args.Duration > uint64(math.MaxInt64/int64(time.Second)) {
		return nil, apperrors.NewValidationError("duration", fmt.Sprintf("duration %d seconds is too large", args.Duration))
	}

	timer := time.NewTimer(time.Duration(args.Duration) * time.Second)
	defer timer.Stop()
	select {
	case <-timer.C:
		return fmt.Sprintf("Async task completed after %d seconds", args.Duration), nil
	case <-ctx.Done():
		return nil, apperrors.WrapError(ctx.Err(), "async_task")
	}
}

func (h *handlers) startProgressTask(ctx context.Context, _ json.RawMessage) (any, error) {
	task := h.deps.Progress.Start(h.deps.TaskContext)
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("progress.task_id", task.ID))
	h.deps.Logger.Debug("progress task started", logging.String("task_id", task.ID))

	m := h.deps.Metrics
	m.TaskStarted()
	go func() {
		<-task.Done()
		m.TaskStopped()
	}()
	return progress.Acknowledgment, nil
}

func (h *handlers) calculatePrimes(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[PrimesArgs](raw)
	if err != nil {
		return nil, err
	}
	result := sieve.Count(args.Limit)
	h.deps.Metrics.AddSieved(args.Limit)
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int64("sieve.limit", int64(args.Limit)),
		attribute.Int64("sieve.count", int64(result.Count)))
	return result, nil
}

func (h *handlers) calculatePi(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[PiArgs](raw)
	if err != nil {
		return nil, err
	}
	result, err := h.deps.Engine.EstimatePi(ctx, args.Iterations)
	if err != nil {
		return nil, apperrors.CalculationError{Operation: "monte_carlo", Cause: err}
	}
	h.deps.Metrics.AddSamples(args.Iterations)
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int64("montecarlo.iterations", int64(min(args.Iterations, math.MaxInt64))),
		attribute.Float64("montecarlo.error", result.Error))
	return result, nil
}
