package apiclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hrms_client",
			Name:      "requests_total",
			Help:      "HTTP attempts by method and outcome (status code or network_error).",
		},
		[]string{"method", "status"},
	)

	retriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hrms_client",
			Name:      "retries_total",
			Help:      "Requests resent after a network failure or timeout.",
		},
		[]string{"method"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hrms_client",
			Name:      "request_duration_seconds",
			Help:      "Latency of a single HTTP attempt.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)
