package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Counter for scored submissions
	submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cremis_submissions_total",
			Help: "Total number of scored submissions",
		},
		[]string{"tier"},
	)

	// Counter for rejected submissions
	submissionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cremis_submission_errors_total",
			Help: "Total number of rejected submissions",
		},
		[]string{"reason"}, // malformed, too_large, invalid, incomplete, internal
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cremis_http_request_duration_seconds",
			Help:    "Time spent handling HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
