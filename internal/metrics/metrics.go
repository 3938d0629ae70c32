// Package metrics exposes Prometheus instrumentation for command invocations
// and the compute workloads.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

const namespace = "tauridemo"

// Status label values.
const (
	StatusOK       = "ok"
	StatusRejected = "rejected"
	StatusError    = "error"
	StatusCanceled = "canceled"
)

// UnknownCommand is the command label of invocations naming no registered
// command, which keeps the label set bounded.
const UnknownCommand = "unknown"

// Metrics holds the application collectors on a private registry, so several
// instances can coexist (tests, embedded use) without global state.
type Metrics struct {
	registry    *prometheus.Registry
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	activeTasks prometheus.Gauge
	samples     prometheus.Counter
	sieved      prometheus.Counter
}

// NewMetrics creates and registers all collectors, including the Go runtime
// and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_invocations_total",
			Help:      "Number of command invocations by command and status.",
		}, []string{"command", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Command latency in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		}, []string{"command"}),
		activeTasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "progress_tasks_active",
			Help:      "Number of progress tasks currently running.",
		}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "montecarlo_samples_total",
			Help:      "Number of Monte Carlo samples drawn.",
		}),
		sieved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sieve_numbers_total",
			Help:      "Number of integers covered by prime sieves.",
		}),
	}
	m.registry.MustRegister(
		m.invocations, m.duration, m.activeTasks, m.samples, m.sieved,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Invocations returns the invocation counter, labeled by command and status.
func (m *Metrics) Invocations() *prometheus.CounterVec { return m.invocations }

// ObserveCommand records one invocation.
func (m *Metrics) ObserveCommand(command, status string, d time.Duration) {
	m.invocations.WithLabelValues(command, status).Inc()
	m.duration.WithLabelValues(command).Observe(d.Seconds())
}

// TaskStarted increments the active progress task gauge.
func (m *Metrics) TaskStarted() { m.activeTasks.Inc() }

// TaskStopped decrements the active progress task gauge.
func (m *Metrics) TaskStopped() { m.activeTasks.Dec() }

// AddSamples counts Monte Carlo samples.
func (m *Metrics) AddSamples(n uint64) { m.samples.Add(float64(n)) }

// AddSieved counts integers covered by a sieve.
func (m *Metrics) AddSieved(limit uint32) { m.sieved.Add(float64(limit)) }

// WritePrometheus writes every registered metric in the text exposition format.
func (m *Metrics) WritePrometheus(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
