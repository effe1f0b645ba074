// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admission_worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admission_worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "admission_worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	MatchScoreDistribution = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "admission_match_score",
			Help:    "Distribution of computed school match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	DocumentValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admission_document_validations_total",
			Help: "Document validation outcomes by type and result",
		},
		[]string{"document_type", "result"},
	)
)
