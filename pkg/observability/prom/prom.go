// Package prom implements the observability hooks on top of Prometheus
// collectors held in a private registry.
//
// The CLI is a short-lived process, so nothing is served over HTTP. Instead
// the registry is written once, at exit, in the text exposition format that
// the node exporter's textfile collector picks up.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/cmlayout/pkg/observability"
)

const namespace = "cmlayout"

// Metrics records optimizer, codec and cache events.
type Metrics struct {
	reg *prometheus.Registry

	runs        *prometheus.CounterVec
	iterations  *prometheus.CounterVec
	duration    prometheus.Histogram
	temperature prometheus.Gauge
	averageLoss prometheus.Gauge
	energyDelta prometheus.Gauge
	movable     prometheus.Gauge

	codecOps      *prometheus.CounterVec
	codecBytes    *prometheus.CounterVec
	codecDuration *prometheus.HistogramVec

	cacheEvents *prometheus.CounterVec
	cacheBytes  prometheus.Counter
}

var (
	_ observability.OptimizerHooks = (*Metrics)(nil)
	_ observability.CodecHooks     = (*Metrics)(nil)
	_ observability.CacheHooks     = (*Metrics)(nil)
)

// New creates collectors registered with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "optimizer",
			Name:      "runs_total",
			Help:      "Optimization runs by outcome",
		}, []string{"status"}),
		iterations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "optimizer",
			Name:      "iterations_total",
			Help:      "Annealing iterations by outcome",
		}, []string{"outcome"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "optimizer",
			Name:      "duration_seconds",
			Help:      "Wall time of optimization runs",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		temperature: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "optimizer",
			Name:      "temperature",
			Help:      "Temperature at the last progress report",
		}),
		averageLoss: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "optimizer",
			Name:      "average_loss",
			Help:      "Rolling average of candidate loss at the last progress report",
		}),
		energyDelta: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "optimizer",
			Name:      "energy_delta",
			Help:      "Summed loss change of accepted swaps in the last run",
		}),
		movable: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "optimizer",
			Name:      "movable_components",
			Help:      "Components eligible for swapping in the last run",
		}),
		codecOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "operations_total",
			Help:      "Save reads and writes by status",
		}, []string{"op", "status"}),
		codecBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "bytes_total",
			Help:      "Save bytes read and written",
		}, []string{"op"}),
		codecDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "duration_seconds",
			Help:      "Save read and write latency",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"op"}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Cache hits, misses and writes",
		}, []string{"key_type", "event"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache",
		}),
	}
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// WriteTextfile writes the current values to path in the text exposition
// format. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}

func (m *Metrics) OnOptimizeStart(_ context.Context, _, movable int) {
	m.movable.Set(float64(movable))
}

func (m *Metrics) OnProgress(_ context.Context, p observability.Progress) {
	m.temperature.Set(p.Temperature)
	m.averageLoss.Set(p.AverageLoss)
}

func (m *Metrics) OnOptimizeComplete(_ context.Context, s observability.Summary, d time.Duration, err error) {
	m.runs.WithLabelValues(status(err)).Inc()
	m.iterations.WithLabelValues("accepted").Add(float64(s.Accepted))
	m.iterations.WithLabelValues("rejected").Add(float64(s.Rejected))
	m.iterations.WithLabelValues("skipped").Add(float64(s.Skipped))
	m.energyDelta.Set(s.EnergyDelta)
	m.duration.Observe(d.Seconds())
}

func (m *Metrics) OnDecode(_ context.Context, _, bytes int, d time.Duration, err error) {
	m.codec("decode", bytes, d, err)
}

func (m *Metrics) OnEncode(_ context.Context, _, bytes int, d time.Duration, err error) {
	m.codec("encode", bytes, d, err)
}

func (m *Metrics) codec(op string, bytes int, d time.Duration, err error) {
	m.codecOps.WithLabelValues(op, status(err)).Inc()
	m.codecBytes.WithLabelValues(op).Add(float64(bytes))
	m.codecDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.Add(float64(size))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
