package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mapa_saude_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mapa_saude_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Search metrics
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mapa_saude_search_requests_total",
			Help: "Total number of establishment searches",
		},
		[]string{"proximity"},
	)

	// Geocoding metrics
	GeocodeFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mapa_saude_geocode_failures_total",
			Help: "Total number of failed geocoding lookups",
		},
	)
)
