// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_requests_scored_total",
			Help: "Total number of recommendation requests scored",
		},
		[]string{"assessment_type", "risk_level"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "engine_request_duration_seconds",
			Help: "Duration of one full scoring+recommendation cycle",
		},
		[]string{"assessment_type"},
	)

	RecommendationsReturned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_recommendations_returned_total",
			Help: "Total recommendations returned per tier",
		},
		[]string{"tier"},
	)

	EventPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_event_publish_failures_total",
			Help: "Journey events that failed to reach the event sink",
		},
	)

	ThresholdEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_threshold_evaluations_total",
			Help: "Threshold evaluator runs by result status",
		},
		[]string{"experiment_id", "status"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)
)
