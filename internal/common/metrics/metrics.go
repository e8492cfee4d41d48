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

	CasesClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_cases_classified_total",
			Help: "Cases classified, by case type",
		},
		[]string{"case_type"},
	)

	TriageOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_outcomes_total",
			Help: "Composed triage responses, by terminal status",
		},
		[]string{"status"},
	)

	LLMCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_llm_calls_total",
			Help: "Text completion calls, by pipeline operation and result",
		},
		[]string{"operation", "result"},
	)

	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "triage_llm_call_duration_seconds",
			Help:    "Latency of text completion calls",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)
)
