// Package metrics exports generator events as Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "flake"

// Metrics implements snowflake.Observer. Register it with WithObserver.
type Metrics struct {
	registry *prometheus.Registry

	generated   prometheus.Counter
	regressions prometheus.Counter
	drift       prometheus.Histogram
	exhausted   prometheus.Counter
	timeouts    prometheus.Counter
	wait        prometheus.Histogram
	info        *prometheus.GaugeVec
}

// New creates the collectors and registers them, plus the Go and process
// collectors, on a private registry.
func New() *Metrics {
	m := &Metrics{
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ids_generated_total",
			Help:      "Ids handed out by the generator.",
		}),
		regressions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clock_regressions_total",
			Help:      "Generate calls rejected because the clock moved backwards.",
		}),
		drift: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "clock_regression_drift_milliseconds",
			Help:      "How far the clock moved backwards when a regression was detected.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		exhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sequence_exhausted_total",
			Help:      "Times the per-millisecond sequence ran out and the generator waited.",
		}),
		timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wait_timeouts_total",
			Help:      "Waits for the next millisecond that exceeded the configured maximum.",
		}),
		wait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sequence_wait_seconds",
			Help:      "Time spent waiting for the next millisecond.",
			Buckets:   prometheus.ExponentialBuckets(50e-6, 2, 10),
		}),
		info: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "generator_info",
			Help:      "Identity of the generator; always 1.",
		}, []string{"worker_id", "datacenter_id", "epoch_ms"}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(
		m.generated, m.regressions, m.drift, m.exhausted, m.timeouts, m.wait, m.info,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// SetIdentity publishes the generator identity as labels on generator_info.
func (m *Metrics) SetIdentity(workerID, datacenterID, epoch int64) {
	m.info.Reset()
	m.info.WithLabelValues(
		strconv.FormatInt(workerID, 10),
		strconv.FormatInt(datacenterID, 10),
		strconv.FormatInt(epoch, 10),
	).Set(1)
}

func (m *Metrics) Generated() { m.generated.Inc() }

func (m *Metrics) ClockRegressed(driftMillis int64) {
	m.regressions.Inc()
	m.drift.Observe(float64(driftMillis))
}

func (m *Metrics) SequenceExhausted(waited time.Duration) {
	m.exhausted.Inc()
	m.wait.Observe(waited.Seconds())
}

func (m *Metrics) WaitTimedOut(waited time.Duration) {
	m.timeouts.Inc()
	m.wait.Observe(waited.Seconds())
}

// Registerer lets other components (e.g. gRPC interceptors) add collectors.
func (m *Metrics) Registerer() prometheus.Registerer { return m.registry }

// Gatherer exposes the registry for tests and custom handlers.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
