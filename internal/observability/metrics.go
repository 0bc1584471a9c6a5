package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RidesPublished = promauto.NewCounter(prometheus.CounterOpts{Namespace: "carpool", Name: "rides_published_total", Help: "Total rides published"})
	SeatsAccepted  = promauto.NewCounter(prometheus.CounterOpts{Namespace: "carpool", Name: "seat_requests_accepted_total", Help: "Total seat requests accepted"})
	CapacityDenied = promauto.NewCounter(prometheus.CounterOpts{Namespace: "carpool", Name: "capacity_denied_total", Help: "Accepts rejected because the ride was full"})
	RatingsCreated = promauto.NewCounter(prometheus.CounterOpts{Namespace: "carpool", Name: "ratings_created_total", Help: "Total ratings recorded"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "carpool", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "carpool",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
