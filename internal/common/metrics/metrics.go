// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intel_pipeline_runs_total",
			Help: "Total number of competitive-report pipeline runs",
		},
		[]string{"status"},
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "intel_pipeline_duration_seconds",
			Help: "Duration of pipeline runs in seconds",
		},
	)

	RecordsScanned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intel_records_scanned_total",
			Help: "Total post records scanned across all runs",
		},
	)

	FilesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intel_files_skipped_total",
			Help: "Upload files skipped during normalization",
		},
		[]string{"reason"},
	)

	LinesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intel_lines_skipped_total",
			Help: "Unparsable lines or rows skipped during normalization",
		},
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
)
