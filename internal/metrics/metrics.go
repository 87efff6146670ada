// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

// Package metrics defines the Prometheus collectors exported at /metrics.
//
// Collectors are registered on the default registry through promauto and
// updated through the Record* helpers so call sites stay one line long.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Neo4j Metrics
	Neo4jQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "neo4j_query_duration_seconds",
			Help:    "Duration of Neo4j queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	Neo4jQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neo4j_query_errors_total",
			Help: "Total number of Neo4j query errors",
		},
		[]string{"operation", "error_type"},
	)

	// Knowledge Graph Metrics
	KnowledgeGraphTriples = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "knowledge_graph_triples",
			Help: "Number of triples in the loaded RDF knowledge graph",
		},
	)

	KnowledgeGraphCourses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "knowledge_graph_courses",
			Help: "Number of schema:Course subjects in the knowledge graph",
		},
	)

	CatalogSearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_search_duration_seconds",
			Help:    "Duration of similarity searches over the knowledge graph",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	CatalogSearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_search_results",
			Help:    "Number of results returned by similarity searches",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		},
	)

	// Submission Metrics
	CourseSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "course_submissions_total",
			Help: "Total number of course submissions",
		},
		[]string{"source", "result"}, // source: web, api; result: stored, failed
	)

	CourseSubmissionMissingFields = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "course_submission_missing_fields",
			Help:    "Number of empty fields reported per course submission",
			Buckets: []float64{0, 1, 2, 5, 10, 20},
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Auth Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of login and registration attempts",
		},
		[]string{"action", "result"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Number of sessions in the session store",
		},
	)

	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_expired_total",
			Help: "Total number of expired sessions removed by cleanup",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

const maxErrorLabel = 50

// RecordNeo4jQuery records a Neo4j query metric
func RecordNeo4jQuery(operation string, duration time.Duration, err error) {
	Neo4jQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > maxErrorLabel {
			errorType = errorType[:maxErrorLabel]
		}
		Neo4jQueryErrors.WithLabelValues(operation, errorType).Inc()
	}
}

// RecordCatalogSearch records a knowledge graph similarity search
func RecordCatalogSearch(duration time.Duration, results int) {
	CatalogSearchDuration.Observe(duration.Seconds())
	CatalogSearchResults.Observe(float64(results))
}

// RecordSubmission records a course submission outcome
func RecordSubmission(source string, missingFields int, err error) {
	result := "stored"
	if err != nil {
		result = "failed"
	}
	CourseSubmissions.WithLabelValues(source, result).Inc()
	CourseSubmissionMissingFields.Observe(float64(missingFields))
}

// RecordAuthAttempt records a login or registration outcome
func RecordAuthAttempt(action string, success bool) {
	AuthAttempts.WithLabelValues(action, strconv.FormatBool(success)).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
