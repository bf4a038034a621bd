// Package metrics exposes the Prometheus collectors used across deckforge.
// A nil *Metrics is valid and records nothing, so components can be built
// without a registry in tests.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "deckforge"

// Outcome labels for image resolution attempts.
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

// Metrics groups every collector the service records into.
type Metrics struct {
	registry *prometheus.Registry

	imageLookups   *prometheus.CounterVec
	renderDuration prometheus.Histogram
	renderFailures prometheus.Counter
	renderedSlides prometheus.Counter
	archiveLookups *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		imageLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_lookups_total",
			Help:      "Photo-search attempts by provider and outcome.",
		}, []string{"provider", "outcome"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent assembling and encoding a presentation.",
			Buckets:   prometheus.DefBuckets,
		}),
		renderFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_failures_total",
			Help:      "Presentations that could not be encoded.",
		}),
		renderedSlides: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rendered_slides_total",
			Help:      "Slides written into generated presentations, title slides included.",
		}),
		archiveLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archive_lookups_total",
			Help:      "Rendered deck archive lookups by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
	}

	for _, c := range []prometheus.Collector{
		m.imageLookups, m.renderDuration, m.renderFailures,
		m.renderedSlides, m.archiveLookups, m.httpRequests,
		collectors.NewGoCollector(),
	} {
		if err := m.registry.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return m, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ImageLookup counts one provider attempt.
func (m *Metrics) ImageLookup(provider, outcome string) {
	if m == nil {
		return
	}
	m.imageLookups.WithLabelValues(provider, outcome).Inc()
}

// Render records a finished assembly. slides is ignored when err is set.
func (m *Metrics) Render(started time.Time, slides int, err error) {
	if m == nil {
		return
	}
	m.renderDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		m.renderFailures.Inc()
		return
	}
	m.renderedSlides.Add(float64(slides))
}

// ArchiveLookup counts a deck archive hit, miss, or error.
func (m *Metrics) ArchiveLookup(outcome string) {
	if m == nil {
		return
	}
	m.archiveLookups.WithLabelValues(outcome).Inc()
}

// HTTPRequest counts one served request.
func (m *Metrics) HTTPRequest(method string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, fmt.Sprintf("%d", status)).Inc()
}
