// Package metrics holds the service's Prometheus collectors on a private registry.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "facility_registry"

type Metrics struct {
	registry *prometheus.Registry

	autocompleteRequests *prometheus.CounterVec
	autocompleteDuration *prometheus.HistogramVec
	skippedPayloads      *prometheus.CounterVec
	cacheLookups         *prometheus.CounterVec
	httpRequests         *prometheus.CounterVec
	suggestions          *prometheus.CounterVec
}

// New builds and registers every collector. Runtime collectors are included
// only when withRuntime is set, which keeps test registries small.
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		autocompleteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "autocomplete_requests_total",
			Help:      "Autocomplete lookups by resolved category and outcome.",
		}, []string{"category", "outcome"}),
		autocompleteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "autocomplete_duration_seconds",
			Help:      "Time spent building autocomplete responses.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"category"}),
		skippedPayloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_payloads_total",
			Help:      "Stored payloads that could not be normalized.",
		}, []string{"source"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Autocomplete cache lookups by result.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		suggestions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestions_total",
			Help:      "Suggested edits by lifecycle event.",
		}, []string{"event"}),
	}

	m.registry.MustRegister(
		m.autocompleteRequests,
		m.autocompleteDuration,
		m.skippedPayloads,
		m.cacheLookups,
		m.httpRequests,
		m.suggestions,
	)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveAutocomplete(category, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if category == "" {
		category = "unknown"
	}
	m.autocompleteRequests.WithLabelValues(category, outcome).Inc()
	m.autocompleteDuration.WithLabelValues(category).Observe(elapsed.Seconds())
}

func (m *Metrics) PayloadSkipped(source string) {
	if m == nil {
		return
	}
	m.skippedPayloads.WithLabelValues(source).Inc()
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) Suggestion(event string) {
	if m == nil {
		return
	}
	m.suggestions.WithLabelValues(event).Inc()
}
