package domain

// MatchStatus — статус выполнения матча.
//
// Жизненный цикл:
//
//	PENDING → RUNNING → PLAYED → FINISHED
//	                  ↘ TIMED_OUT / UNPARSEABLE / SPAWN_FAILED
//	          PLAYED  ↘ RATING_FAILED
//
// PLAYED — процесс игры завершился и результат распарсен, но рейтинги
// ещё не применены. Применяет их Orchestrator (строго один раз).
type MatchStatus string

const (
	// MatchStatusPending — матч создан, ожидает воркера.
	MatchStatusPending MatchStatus = "PENDING"

	// MatchStatusRunning — игровой процесс запущен воркером.
	MatchStatusRunning MatchStatus = "RUNNING"

	// MatchStatusPlayed — процесс завершился, результат распарсен,
	// рейтинги ещё не применены.
	MatchStatusPlayed MatchStatus = "PLAYED"

	// MatchStatusFinished — рейтинги применены, матч полностью завершён.
	MatchStatusFinished MatchStatus = "FINISHED"

	// MatchStatusTimedOut — процесс не уложился в бюджет времени и был убит.
	// Рейтинги не применяются.
	MatchStatusTimedOut MatchStatus = "TIMED_OUT"

	// MatchStatusUnparseable — вывод процесса не удалось декодировать.
	// Рейтинги не применяются.
	MatchStatusUnparseable MatchStatus = "UNPARSEABLE"

	// MatchStatusSpawnFailed — процесс не удалось запустить вовсе
	// (нет бинарника, нет прав). Рейтинги не применяются.
	MatchStatusSpawnFailed MatchStatus = "SPAWN_FAILED"

	// MatchStatusRatingFailed — игра прошла успешно, но шаг рейтинга
	// получил некорректные данные. Отличается от ошибок оркестрации:
	// само соревнование состоялось.
	MatchStatusRatingFailed MatchStatus = "RATING_FAILED"
)

// IsTerminal возвращает true, если статус финальный (матч завершён).
func (s MatchStatus) IsTerminal() bool {
	switch s {
	case MatchStatusFinished, MatchStatusTimedOut, MatchStatusUnparseable,
		MatchStatusSpawnFailed, MatchStatusRatingFailed:
		return true
	default:
		return false
	}
}

// IsFailure возвращает true, если статус финальный и неуспешный.
func (s MatchStatus) IsFailure() bool {
	return s.IsTerminal() && s != MatchStatusFinished
}
