package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RunsTotal counts job runs by job name and final status.
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobward_job_runs_total",
			Help: "Total number of job runs",
		},
		[]string{"job", "status"},
	)

	// RunDuration tracks job run durations in seconds.
	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobward_job_duration_seconds",
			Help:    "Duration of job runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14), // 10ms to ~160s
		},
		[]string{"job"},
	)

	// RunsInFlight tracks the number of jobs currently executing on this instance.
	RunsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobward_jobs_in_flight",
			Help: "Number of jobs currently executing",
		},
	)

	// LockSkipsTotal counts scheduled runs skipped because another instance
	// held the lock.
	LockSkipsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobward_lock_skips_total",
			Help: "Total number of runs skipped due to lock contention",
		},
		[]string{"key"},
	)

	// LockStoreErrors counts failed lock-store round trips (runs skipped fail-closed).
	LockStoreErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobward_lock_store_errors_total",
			Help: "Total number of lock store errors",
		},
	)
)
