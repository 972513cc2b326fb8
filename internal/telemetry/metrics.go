package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики пайплайна.
//
// Экспортируются на /metrics endpoint каждого сервиса (promhttp в main).
var (
	// JobsTotal — количество завершённых jobs по финальному статусу.
	JobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relay",
		Name:      "jobs_total",
		Help:      "Finished jobs by terminal status.",
	}, []string{"status"})

	// StageDuration — длительность стадий пайплайна.
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "relay",
		Name:      "stage_duration_seconds",
		Help:      "Duration of pipeline stages.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})

	// StageFailures — ошибки стадий пайплайна.
	StageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relay",
		Name:      "stage_failures_total",
		Help:      "Pipeline stage failures by stage.",
	}, []string{"stage"})

	// JobsInFlight — jobs, выполняющиеся прямо сейчас.
	JobsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "relay",
		Name:      "jobs_in_flight",
		Help:      "Jobs currently being processed.",
	})
)
