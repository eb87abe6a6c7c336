package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FetchRequests counts upstream fetch attempts per adapter.
	FetchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newslens_fetch_requests_total",
			Help: "Number of upstream fetch attempts, labeled by source adapter.",
		},
		[]string{"source"},
	)

	// FetchErrors counts fetches that failed or degraded to an empty result.
	FetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newslens_fetch_errors_total",
			Help: "Number of failed upstream fetches, labeled by source adapter.",
		},
		[]string{"source"},
	)

	// FetchDuration observes upstream round-trip latency per adapter.
	FetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newslens_fetch_duration_seconds",
			Help:    "Upstream fetch latency in seconds, labeled by source adapter.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// ScoreFailures counts sentiment scoring failures that degraded to
	// Neutral, labeled by language.
	ScoreFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newslens_sentiment_score_failures_total",
			Help: "Number of scoring failures that fell back to Neutral, labeled by language.",
		},
		[]string{"language"},
	)
)

func init() {
	prometheus.MustRegister(FetchRequests, FetchErrors, FetchDuration, ScoreFailures)
}
