package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	if m == nil || m.Registry() == nil {
		t.Fatal("NewMetrics returned an incomplete value")
	}
	// Independent registries must not collide.
	_ = NewMetrics()
}

func TestMetrics_ObserveCommand(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.ObserveCommand("greet", StatusOK, time.Millisecond)
	m.ObserveCommand("greet", StatusOK, time.Millisecond)
	m.ObserveCommand("greet", StatusRejected, time.Millisecond)

	if got := testutil.ToFloat64(m.invocations.WithLabelValues("greet", StatusOK)); got != 2 {
		t.Errorf("ok invocations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.invocations.WithLabelValues("greet", StatusRejected)); got != 1 {
		t.Errorf("rejected invocations = %v, want 1", got)
	}
}

func TestMetrics_Gauges(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.TaskStarted()
	m.TaskStarted()
	m.TaskStopped()
	if got := testutil.ToFloat64(m.activeTasks); got != 1 {
		t.Errorf("active tasks = %v, want 1", got)
	}
	m.AddSamples(1_000)
	m.AddSieved(100)
	if got := testutil.ToFloat64(m.samples); got != 1_000 {
		t.Errorf("samples = %v, want 1000", got)
	}
	if got := testutil.ToFloat64(m.sieved); got != 100 {
		t.Errorf("sieved = %v, want 100", got)
	}
}

func TestMetrics_WritePrometheus(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.ObserveCommand("calculate_pi_monte_carlo", StatusOK, 3*time.Millisecond)

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus() error = %v", err)
	}
	body := buf.String()
	for _, want := range []string{
		"tauridemo_command_invocations_total",
		"tauridemo_command_duration_seconds",
		`command="calculate_pi_monte_carlo"`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output should contain %q", want)
		}
	}
}
