// Package metrics holds the prometheus collectors for the HTTP API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Requests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "monelog",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "monelog",
			Subsystem: "http",
			Name:      "request_latency_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	TotalsComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "monelog",
			Subsystem: "expense",
			Name:      "totals_computed_total",
			Help:      "Total number of expense totals computed",
		},
	)

	EntriesIgnored = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "monelog",
			Subsystem: "expense",
			Name:      "entries_ignored_total",
			Help:      "Entries that were not numeric and counted as zero",
		},
	)

	SessionLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "monelog",
			Subsystem: "auth",
			Name:      "session_lookups_total",
			Help:      "Session token validations by source and result",
		},
		[]string{"source", "result"},
	)
)

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }
