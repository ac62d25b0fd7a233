// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics records assessment outcomes in a private Prometheus
// registry. Batch runs write it out in the node exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdiddy/metaqa/pkg/types"
)

const namespace = "metaqa"

// Recorder collects assessment metrics. It is safe for concurrent use.
type Recorder struct {
	registry    *prometheus.Registry
	assessments *prometheus.CounterVec
	failures    prometheus.Counter
	scores      *prometheus.HistogramVec
	patterns    *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewRecorder returns a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Completed assessments by overall quality level.",
		}, []string{"level"}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessment_errors_total",
			Help:      "Inputs that could not be assessed.",
		}),
		scores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "score",
			Help:      "Distribution of assessment scores by kind.",
			Buckets:   []float64{40, 60, 75, 90, 100},
		}, []string{"kind"}),
		patterns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failure_patterns_total",
			Help:      "Detected failure patterns by type.",
		}, []string{"type"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assessment_duration_seconds",
			Help:      "Wall time of one assessment, including decoding.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
	r.registry.MustRegister(r.assessments, r.failures, r.scores, r.patterns, r.duration)
	return r
}

// Observe records one finished report and how long it took.
func (r *Recorder) Observe(rep *types.Report, took time.Duration) {
	r.assessments.WithLabelValues(string(rep.OverallLevel)).Inc()
	r.scores.WithLabelValues("overall").Observe(rep.OverallScore)
	r.scores.WithLabelValues("completeness").Observe(rep.CompletenessScore)
	r.scores.WithLabelValues("validity").Observe(rep.ValidityScore)
	r.scores.WithLabelValues("consistency").Observe(rep.ConsistencyScore)
	for _, p := range rep.FailurePatterns {
		r.patterns.WithLabelValues(string(p.Type)).Inc()
	}
	r.duration.Observe(took.Seconds())
}

// ObserveError records an input that failed before a report existed.
func (r *Recorder) ObserveError() {
	r.failures.Inc()
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
