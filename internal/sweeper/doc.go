// Package sweeper реализует уборку хвостов турнира.
//
// Sweeper периодически возвращает в очередь матчи, зависшие в RUNNING
// после смерти воркера, и удаляет устаревшие replay-файлы.
//
// Структура:
//   - sweeper.go — основная логика (Tick, pruneReplays)
//   - cron.go    — парсинг cron-выражений и вычисление следующего прохода
//
// Использование:
//
//	sw := sweeper.New(sweeper.Config{
//	    MatchRepo: matchRepo,
//	    Publisher: publisher,  // опционально
//	    Logger:    logger,
//	})
//
//	// Вызывается по cron-расписанию (обычно раз в минуту)
//	if err := sw.Tick(ctx); err != nil {
//	    logger.Error("sweep failed", "error", err)
//	}
//
// Leader Election:
//
// Sweeper не реализует leader election самостоятельно.
// Это делается в main.go через pg_try_advisory_lock.
// Метод Tick() вызывается только лидером.
package sweeper
