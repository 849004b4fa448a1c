// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
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

	MatchScoresComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_scores_computed_total",
			Help: "Total number of vendor match scores computed",
		},
		[]string{"confidence"},
	)

	MatchScoreDistribution = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_score_total",
			Help:    "Distribution of computed total match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	MatchWarningsRaised = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_warnings_raised_total",
			Help: "Total number of match warnings raised by severity",
		},
		[]string{"severity"},
	)

	VendorPoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vendor_pool_size",
			Help:    "Number of candidate vendors scored per ranking request",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		},
	)
)
