// Package metrics records run statistics for the Prometheus textfile
// collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the metrics of a single run on its own registry.
type Recorder struct {
	reg *prometheus.Registry

	indicators  *prometheus.CounterVec
	boundaries  prometheus.Counter
	identifiers prometheus.Counter
	failures    *prometheus.CounterVec
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// NewRecorder creates a Recorder with all metrics registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		reg: reg,
		indicators: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "indgen",
			Name:      "indicators_generated_total",
			Help:      "Number of program indicators generated, by template.",
		}, []string{"template"}),
		boundaries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "indgen",
			Name:      "boundaries_generated_total",
			Help:      "Number of analytics period boundaries generated.",
		}),
		identifiers: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "indgen",
			Name:      "identifiers_consumed_total",
			Help:      "Number of identifiers taken from the pool.",
		}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "indgen",
			Name:      "run_failures_total",
			Help:      "Number of failed runs, by stage.",
		}, []string{"stage"}),
		duration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "indgen",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "indgen",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}
}

// Indicators records n indicators generated from template.
func (r *Recorder) Indicators(template string, n int) {
	r.indicators.WithLabelValues(template).Add(float64(n))
}

// Boundaries records n generated boundaries.
func (r *Recorder) Boundaries(n int) {
	r.boundaries.Add(float64(n))
}

// Identifiers records n consumed identifiers.
func (r *Recorder) Identifiers(n int) {
	r.identifiers.Add(float64(n))
}

// Failure records a failed run at stage.
func (r *Recorder) Failure(stage string) {
	r.failures.WithLabelValues(stage).Inc()
}

// Finish records the run duration and, on success, the completion time.
func (r *Recorder) Finish(started time.Time, ok bool) {
	now := time.Now()
	r.duration.Set(now.Sub(started).Seconds())
	if ok {
		r.lastSuccess.Set(float64(now.Unix()))
	}
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteTextfile writes all metrics in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
