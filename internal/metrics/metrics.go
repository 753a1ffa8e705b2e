// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metrics provides Prometheus instrumentation for the HTTP surface
// and the recommendation engine.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookstar_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookstar_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookstar_recommendation_requests_total",
			Help: "Total recommendation requests by result kind",
		},
		[]string{"result"}, // "hybrid", "fallback", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookstar_recommendation_duration_seconds",
			Help:    "End-to-end recommendation pipeline duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendationCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookstar_recommendation_result_size",
			Help:    "Number of books returned per recommendation request",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		},
	)

	// Cache Metrics
	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookstar_cache_entries",
			Help: "Current number of cached derived entries",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookstar_db_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)
)

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).
		Observe(duration.Seconds())
}

// RecordRecommendation records one recommendation pipeline run.
func RecordRecommendation(result string, size int, duration time.Duration) {
	RecommendationRequests.WithLabelValues(result).Inc()
	RecommendationDuration.Observe(duration.Seconds())
	if result != "error" {
		RecommendationCount.Observe(float64(size))
	}
}

// ObserveQuery starts a timer for one storage query. Call the returned
// function when the query finishes, typically via defer.
func ObserveQuery(query string) func() {
	start := time.Now()
	return func() {
		DBQueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	}
}
