package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_runs_total",
			Help: "Total number of recommendation runs by mode and empty reason",
		},
		[]string{"mode", "empty_reason"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation runs in seconds, data fetch included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_results",
			Help:    "Number of results returned per recommendation run",
			Buckets: []float64{0, 1, 3, 5, 10, 20, 50},
		},
		[]string{"mode"},
	)

	ActivityCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_cache_lookups_total",
			Help: "Activity signal cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_rate_limited_total",
			Help: "Requests rejected by the per-member rate limiter",
		},
	)
)
