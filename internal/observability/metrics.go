// Package observability wires Prometheus metrics for the application's
// domain operations.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationsServed counts recommendation requests by outcome:
	// "matched", "no_matches" or "incomplete_profile".
	RecommendationsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitiva_recommendations_served_total",
		Help: "Recommendation requests served, by outcome.",
	}, []string{"outcome"})

	// SchedulesGenerated counts schedule generate operations by kind:
	// "created" for a fresh schedule, "extended" for adding to an active one.
	SchedulesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitiva_schedules_generated_total",
		Help: "Schedule generate operations, by kind.",
	}, []string{"kind"})

	// SchedulesDeactivated counts schedule deactivations, both explicit and
	// via removing the last program.
	SchedulesDeactivated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitiva_schedules_deactivated_total",
		Help: "Schedules deactivated.",
	})

	// SessionsCompleted counts workout sessions marked completed.
	SessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitiva_workout_sessions_completed_total",
		Help: "Workout sessions marked completed.",
	})

	// HTTPRequestDuration observes request latency per route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fitiva_http_request_duration_seconds",
		Help:    "HTTP request latency by route, method and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)
