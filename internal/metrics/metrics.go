// Package metrics provides Prometheus instrumentation for coordinate mapping
// and anatomical validation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/facemap/backend/internal/models"
)

const namespace = "facemap"

// Transform directions.
const (
	DirectionTo3D   = "to_3d"
	DirectionFrom3D = "from_3d"
)

var validationDurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1}

// Metrics holds the application collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry           *prometheus.Registry
	transforms         *prometheus.CounterVec
	validations        *prometheus.CounterVec
	findings           *prometheus.CounterVec
	validationDuration prometheus.Histogram
}

// NewRegistry creates a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New registers all collectors on reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		transforms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coordinate_transforms_total",
			Help:      "Coordinate transforms by direction and anatomical zone.",
		}, []string{"direction", "zone"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Validation runs by outcome and cache status.",
		}, []string{"outcome", "cache"}),
		findings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_findings_total",
			Help:      "Validation findings by kind, type and severity.",
		}, []string{"kind", "type", "severity"}),
		validationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "validation_duration_seconds",
			Help:      "Time spent validating a point set.",
			Buckets:   validationDurationBuckets,
		}),
	}
	reg.MustRegister(m.transforms, m.validations, m.findings, m.validationDuration)
	return m
}

// ObserveTransform counts one coordinate transform.
func (m *Metrics) ObserveTransform(direction, zone string) {
	if m == nil {
		return
	}
	m.transforms.WithLabelValues(direction, zone).Inc()
}

// ObserveValidation records a validation run and its findings.
func (m *Metrics) ObserveValidation(result models.ValidationResult, cached bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "valid"
	if !result.IsValid {
		outcome = "invalid"
	}
	cacheStatus := "miss"
	if cached {
		cacheStatus = "hit"
	}
	m.validations.WithLabelValues(outcome, cacheStatus).Inc()
	m.validationDuration.Observe(elapsed.Seconds())

	for _, w := range result.Warnings {
		m.findings.WithLabelValues("warning", string(w.Type), string(w.Severity)).Inc()
	}
	for _, e := range result.Errors {
		m.findings.WithLabelValues("error", string(e.Type), "blocking").Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
