package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики Prometheus. Регистрируются в DefaultRegisterer при импорте
// пакета, экспортируются через promhttp в main каждого сервиса.
var (
	// MatchesExecuted — счётчик обработанных воркером матчей
	// по итоговому статусу (PLAYED, TIMED_OUT, UNPARSEABLE, SPAWN_FAILED).
	MatchesExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gauntlet",
		Subsystem: "worker",
		Name:      "matches_executed_total",
		Help:      "Matches executed by the worker, labeled by resulting status.",
	}, []string{"status"})

	// MatchDuration — гистограмма wall-clock длительности игрового процесса.
	MatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gauntlet",
		Subsystem: "worker",
		Name:      "match_duration_seconds",
		Help:      "Wall-clock duration of game process runs.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12),
	})

	// RatingUpdates — счётчик успешно применённых пересчётов рейтинга.
	RatingUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gauntlet",
		Subsystem: "orchestrator",
		Name:      "rating_updates_total",
		Help:      "Successfully applied rating updates.",
	})

	// RatingFailures — счётчик матчей, ушедших в RATING_FAILED.
	RatingFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gauntlet",
		Subsystem: "orchestrator",
		Name:      "rating_failures_total",
		Help:      "Matches that failed rating and were marked RATING_FAILED.",
	})

	// MatchesRequeued — счётчик зависших матчей, возвращённых sweeper'ом
	// в очередь.
	MatchesRequeued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gauntlet",
		Subsystem: "sweeper",
		Name:      "matches_requeued_total",
		Help:      "Stuck RUNNING matches reset back to PENDING.",
	})
)
