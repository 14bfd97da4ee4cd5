// Package metrics holds the prometheus collectors for the service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Source outcomes
const (
	OutcomeOK       = "ok"
	OutcomeAbsent   = "absent"
	OutcomeFailed   = "failed"
	OutcomeSkipped  = "skipped"
	CacheHit        = "hit"
	CacheMiss       = "miss"
	CacheError      = "error"
	RunResultReady  = "ready"
	RunResultFailed = "error"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoreply_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "autoreply_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoreply_runs_total",
			Help: "Total number of pipeline runs by result.",
		},
		[]string{"result"},
	)

	SourceResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoreply_source_results_total",
			Help: "Compensation source outcomes.",
		},
		[]string{"source", "outcome"},
	)

	ClassificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoreply_classifications_total",
			Help: "Outreach classifications by provenance and label.",
		},
		[]string{"source", "label"},
	)

	RateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoreply_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		},
		[]string{"endpoint"},
	)

	ModelCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoreply_model_calls_total",
			Help: "Generative model calls by tier and outcome.",
		},
		[]string{"tier", "outcome"},
	)

	FetchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoreply_fetch_cache_total",
			Help: "Fetch cache lookups by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		RunsTotal,
		SourceResultsTotal,
		ClassificationsTotal,
		FetchCacheTotal,
		RateLimitedTotal,
		ModelCallsTotal,
	)
}
