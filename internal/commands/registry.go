// Package commands maps named invocations with JSON arguments to the
// application operations, recording a span and metrics for each call.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	apperrors "github.com/FlyinPancake/tauri-presentation/internal/errors"
	"github.com/FlyinPancake/tauri-presentation/internal/logging"
	"github.com/FlyinPancake/tauri-presentation/internal/metrics"
	"github.com/FlyinPancake/tauri-presentation/internal/montecarlo"
	"github.com/FlyinPancake/tauri-presentation/internal/progress"
	"github.com/FlyinPancake/tauri-presentation/internal/sysmon"
)

// ErrUnknownCommand is returned by Invoke for names without a handler.
var ErrUnknownCommand = errors.New("unknown command")

// Handler executes one command with its raw JSON arguments.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Deps are the collaborators of the registered commands.
type Deps struct {
	// Engine serves calculate_pi_monte_carlo. Required.
	Engine *montecarlo.Engine
	// Progress serves start_progress_task. Required.
	Progress *progress.Emitter
	// TaskContext bounds the lifetime of progress tasks, which outlive the
	// invocation that started them. Defaults to context.Background().
	TaskContext context.Context

	Metrics *metrics.Metrics
	Tracer  trace.Tracer
	Logger  logging.Logger

	// Now, Host and Sample are overridable for tests.
	Now    func() time.Time
	Host   func() sysmon.Host
	Sample func() sysmon.Stats
}

// Registry dispatches invocations to handlers. It is immutable after
// NewRegistry and safe for concurrent use.
type Registry struct {
	handlers map[string]Handler
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	logger   logging.Logger
}

// NewRegistry builds the registry of all application commands.
func NewRegistry(d Deps) *Registry {
	if d.TaskContext == nil {
		d.TaskContext = context.Background()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.NewMetrics()
	}
	if d.Tracer == nil {
		d.Tracer = noop.NewTracerProvider().Tracer("commands")
	}
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Host == nil {
		d.Host = sysmon.Identify
	}
	if d.Sample == nil {
		d.Sample = sysmon.Sample
	}

	h := &handlers{deps: d}
	return &Registry{
		handlers: map[string]Handler{
			Greet:              h.greet,
			PerformCalculation: h.performCalculation,
			GetSystemInfo:      h.systemInfo,
			AsyncTask:          h.asyncTask,
			StartProgressTask:  h.startProgressTask,
			CalculatePrimes:    h.calculatePrimes,
			CalculatePi:        h.calculatePi,
		},
		metrics: d.Metrics,
		tracer:  d.Tracer,
		logger:  d.Logger,
	}
}

// Names returns the registered command names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the command name with args. Validation failures are returned
// as apperrors.ValidationError carrying the user-facing message.
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	ctx, span := r.tracer.Start(ctx, "command."+name,
		trace.WithAttributes(attribute.String("command.name", name)))
	defer span.End()

	start := time.Now()
	handler, ok := r.handlers[name]
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownCommand, name)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.metrics.ObserveCommand(metrics.UnknownCommand, metrics.StatusRejected, time.Since(start))
		return nil, err
	}

	result, err := handler(ctx, args)
	elapsed := time.Since(start)

	status := metrics.StatusOK
	switch {
	case err == nil:
		span.SetStatus(codes.Ok, "")
	case apperrors.IsValidationError(err):
		status = metrics.StatusRejected
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case apperrors.IsContextError(err):
		status = metrics.StatusCanceled
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Debug("command interrupted", logging.String("command", name), logging.Err(err))
	default:
		status = metrics.StatusError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Error("command failed", err, logging.String("command", name))
	}
	r.metrics.ObserveCommand(name, status, elapsed)
	r.logger.Debug("command invoked",
		logging.String("command", name),
		logging.String("status", status),
		logging.Float64("elapsed_ms", float64(elapsed.Nanoseconds())/1e6))

	return result, err
}

// decodeArgs unmarshals args into T. Empty or null arguments decode to the
// zero value; unknown fields are ignored.
func decodeArgs[T any](args json.RawMessage) (T, error) {
	var v T
	if len(args) == 0 || string(args) == "null" {
		return v, nil
	}
	if err := json.Unmarshal(args, &v); err != nil {
		return v, apperrors.NewValidationError("args", fmt.Sprintf("invalid arguments: %v", err))
	}
	return v, nil
}
