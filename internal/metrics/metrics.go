// README: Prometheus collectors for HTTP traffic and the fare pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxi_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taxi_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// DistanceSource counts how each distance was obtained: routing, cache, haversine, random.
	DistanceSource = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxi_distance_source_total",
			Help: "Distances served, by source",
		},
		[]string{"source"},
	)

	// RateTableSource counts where GetRateTable found its table: cache, remote, default.
	RateTableSource = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxi_rate_table_source_total",
			Help: "Rate table reads, by source",
		},
		[]string{"source"},
	)

	UpstreamFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxi_upstream_failures_total",
			Help: "Failed calls to upstream services",
		},
		[]string{"upstream"},
	)

	FareEstimates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxi_fare_estimates_total",
			Help: "Fare estimates computed",
		},
		[]string{"category", "trip_type"},
	)
)
