package commands

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "github.com/FlyinPancake/tauri-presentation/internal/errors"
	"github.com/FlyinPancake/tauri-presentation/internal/events"
	"github.com/FlyinPancake/tauri-presentation/internal/metrics"
	"github.com/FlyinPancake/tauri-presentation/internal/montecarlo"
	"github.com/FlyinPancake/tauri-presentation/internal/progress"
	"github.com/FlyinPancake/tauri-presentation/internal/sieve"
	"github.com/FlyinPancake/tauri-presentation/internal/sysmon"
)

type fixture struct {
	registry *Registry
	bus      *events.Bus
	emitter  *progress.Emitter
	metrics  *metrics.Metrics
	spans    *tracetest.SpanRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	bus := events.NewBus()
	emitter := progress.NewEmitter(bus, progress.Options{Steps: 3, Interval: time.Millisecond}, nil)
	m := metrics.NewMetrics()
	r := NewRegistry(Deps{
		Engine:   montecarlo.NewEngine(montecarlo.Options{ChunkSize: 1_000, Workers: 2, Seed: 7}, nil),
		Progress: emitter,
		Metrics:  m,
		Tracer:   tp.Tracer("test"),
		Now:      func() time.Time { return time.Unix(1_700_000_000, 0) },
		Host: func() sysmon.Host {
			return sysmon.Host{OS: "linux", Arch: "amd64", Hostname: "devbox", NumCPU: 8}
		},
		Sample: func() sysmon.Stats { return sysmon.Stats{CPUPercent: 12.5, MemPercent: 40} },
	})
	t.Cleanup(func() {
		emitter.Wait()
		bus.Close()
	})
	return &fixture{registry: r, bus: bus, emitter: emitter, metrics: m, spans: spans}
}

func (f *fixture) invoke(t *testing.T, name, args string) (any, error) {
	t.Helper()
	return f.registry.Invoke(context.Background(), name, json.RawMessage(args))
}

func TestRegistry_Names(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []string{
		AsyncTask,
		CalculatePi,
		CalculatePrimes,
		GetSystemInfo,
		Greet,
		PerformCalculation,
		StartProgressTask,
	}, f.registry.Names())
}

func TestRegistry_UnknownCommand(t *testing.T) {
	f := newFixture(t)
	_, err := f.invoke(t, "launch_rockets", `{}`)
	require.ErrorIs(t, err, ErrUnknownCommand)
	_, err = f.invoke(t, "self_destruct", `{}`)
	require.ErrorIs(t, err, ErrUnknownCommand)
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metricCounter(metrics.UnknownCommand, metrics.StatusRejected)))
	assert.Equal(t, 1, testutil.CollectAndCount(f.metrics.Invocations()),
		"unknown names must share one label set")

	ended := f.spans.Ended()
	require.Len(t, ended, 2)
	assert.Contains(t, ended[0].Attributes(), attribute.String("command.name", "launch_rockets"))
}

func TestGreet(t *testing.T) {
	f := newFixture(t)

	got, err := f.invoke(t, Greet, `{"name":"Ada"}`)
	require.NoError(t, err)
	assert.Equal(t, "Hello, Ada! You've been greeted from Go!", got)

	for _, args := range []string{`{"name":""}`, `{}`, ``} {
		_, err := f.invoke(t, Greet, args)
		require.Error(t, err, "args %q", args)
		assert.Equal(t, "Don't be so shy, introduce yourself", err.Error())
		assert.True(t, apperrors.IsValidationError(err))
	}
}

func TestPerformCalculation(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name    string
		args    string
		want    int32
		wantErr string
	}{
		{"add", `{"a":7,"b":3,"operation":"add"}`, 10, ""},
		{"subtract", `{"a":7,"b":10,"operation":"subtract"}`, -3, ""},
		{"multiply", `{"a":-6,"b":7,"operation":"multiply"}`, -42, ""},
		{"divide truncates", `{"a":7,"b":2,"operation":"divide"}`, 3, ""},
		{"divide by zero", `{"a":10,"b":0,"operation":"divide"}`, 0, "Cannot divide by zero"},
		{"add wraps", `{"a":2147483647,"b":1,"operation":"add"}`, math.MinInt32, ""},
		{"unknown op", `{"a":1,"b":1,"operation":"modulo"}`, 0, `unknown operation "modulo"`},
		{"out of range", `{"a":2147483648,"b":1,"operation":"add"}`, 0, "invalid arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.invoke(t, PerformCalculation, tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, apperrors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculate_MinDividedByMinusOne(t *testing.T) {
	got, err := Calculate(math.MinInt32, -1, Divide)
	require.NoError(t, err)
	assert.Equal(t, int32(math.MinInt32), got)
}

func TestGetSystemInfo(t *testing.T) {
	f := newFixture(t)
	got, err := f.invoke(t, GetSystemInfo, `{}`)
	require.NoError(t, err)
	assert.Equal(t, SystemInfo{
		OS:         "linux",
		Arch:       "amd64",
		Hostname:   "devbox",
		Timestamp:  1_700_000_000,
		NumCPU:     8,
		CPUPercent: 12.5,
		MemPercent: 40,
	}, got)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"os":"linux","arch":"amd64","hostname":"devbox","timestamp":1700000000,
		"num_cpu":8,"cpu_percent":12.5,"mem_percent":40}`, string(data))
}

func TestAsyncTask(t *testing.T) {
	f := newFixture(t)

	got, err := f.invoke(t, AsyncTask, `{"duration":0}`)
	require.NoError(t, err)
	assert.Equal(t, "Async task completed after 0 seconds", got)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err = f.registry.Invoke(ctx, AsyncTask, json.RawMessage(`{"duration":60}`))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second, "async_task should honor cancellation")
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metricCounter(AsyncTask, metrics.StatusCanceled)))
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metricCounter(AsyncTask, metrics.StatusError)))
}

func TestAsyncTask_DurationOverflow(t *testing.T) {
	f := newFixture(t)
	_, err := f.invoke(t, AsyncTask, `{"duration":18446744073709551615}`)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestCalculatePrimes(t *testing.T) {
	f := newFixture(t)
	got, err := f.invoke(t, CalculatePrimes, `{"limit":25}`)
	require.NoError(t, err)
	res, ok := got.(sieve.Result)
	require.True(t, ok, "unexpected result type %T", got)
	assert.Equal(t, uint64(9), res.Count)
	assert.Equal(t, uint32(25), res.Limit)
	assert.GreaterOrEqual(t, res.ElapsedMs, 0.0)
}

func TestCalculatePi(t *testing.T) {
	f := newFixture(t)

	got, err := f.invoke(t, CalculatePi, `{"iterations":10000}`)
	require.NoError(t, err)
	res, ok := got.(montecarlo.SamplingResult)
	require.True(t, ok, "unexpected result type %T", got)
	assert.Equal(t, uint64(10_000), res.Iterations)
	assert.GreaterOrEqual(t, res.Estimate, 0.0)
	assert.LessOrEqual(t, res.Estimate, 4.0)
	assert.InDelta(t, math.Abs(res.Estimate-math.Pi), res.Error, 1e-12)

	got, err = f.invoke(t, CalculatePi, `{"iterations":0}`)
	require.NoError(t, err)
	res = got.(montecarlo.SamplingResult)
	assert.Equal(t, 0.0, res.Estimate)
	assert.Equal(t, math.Pi, res.Error)
}

func TestCalculatePi_Canceled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.registry.Invoke(ctx, CalculatePi, json.RawMessage(`{"iterations":100000}`))
	require.ErrorIs(t, err, context.Canceled)
	var calcErr apperrors.CalculationError
	assert.True(t, errors.As(err, &calcErr))
}

func TestStartProgressTask(t *testing.T) {
	f := newFixture(t)
	sub := f.bus.Subscribe(16)
	defer sub.Close()

	got, err := f.invoke(t, StartProgressTask, `{}`)
	require.NoError(t, err)
	assert.Equal(t, "Progress task started", got)

	var updates int
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-sub.Events():
			switch ev.Name {
			case events.ProgressUpdate:
				updates++
			case events.ProgressComplete:
				assert.Equal(t, 3, updates)
				return
			}
		case <-timeout:
			t.Fatal("progress task did not complete")
		}
	}
}

func TestInvoke_RecordsSpansAndMetrics(t *testing.T) {
	f := newFixture(t)

	_, err := f.invoke(t, Greet, `{"name":"Ada"}`)
	require.NoError(t, err)
	_, err = f.invoke(t, PerformCalculation, `{"a":1,"b":0,"operation":"divide"}`)
	require.Error(t, err)
	_, err = f.invoke(t, Greet, `not json`)
	require.Error(t, err)

	ended := f.spans.Ended()
	require.Len(t, ended, 3)
	assert.Equal(t, "command.greet", ended[0].Name())
	assert.Equal(t, codes.Ok, ended[0].Status().Code)
	assert.Equal(t, "command.perform_calculation", ended[1].Name())
	assert.Equal(t, codes.Error, ended[1].Status().Code)
	assert.Equal(t, "Cannot divide by zero", ended[1].Status().Description)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metricCounter(Greet, metrics.StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metricCounter(Greet, metrics.StatusRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metricCounter(PerformCalculation, metrics.StatusRejected)))
}

func (f *fixture) metricCounter(command, status string) prometheus.Collector {
	return f.metrics.Invocations().WithLabelValues(command, status)
}
