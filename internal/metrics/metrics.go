// Package metrics records collection statistics in Prometheus format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the collectors for one process. Each Recorder owns its
// registry so tests and repeated runs do not share state.
type Recorder struct {
	registry    *prometheus.Registry
	outcomes    *prometheus.CounterVec
	collections *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewRecorder creates a Recorder with a private registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bcollect_outcomes_total",
			Help: "Outcomes seen by the collector, by result.",
		}, []string{"result"}),
		collections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bcollect_collections_total",
			Help: "Finished collections, by status.",
		}, []string{"status"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bcollect_collect_duration_seconds",
			Help:    "Time spent validating and collecting one input set.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
	}
}

// Observe records one finished collection.
func (r *Recorder) Observe(successes, failures int, elapsed time.Duration) {
	r.outcomes.WithLabelValues("success").Add(float64(successes))
	r.outcomes.WithLabelValues("failure").Add(float64(failures))
	status := "collected"
	if failures > 0 {
		status = "combined"
	}
	r.collections.WithLabelValues(status).Inc()
	r.duration.Observe(elapsed.Seconds())
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.registry }

// WriteTextfile writes the current values to path in the text exposition
// format used by the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
