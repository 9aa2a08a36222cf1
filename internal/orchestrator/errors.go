package orchestrator

import "errors"

// Ошибки оркестратора.
var (
	// ErrMatchNotFound — матч не найден в БД.
	ErrMatchNotFound = errors.New("match not found")

	// ErrMatchNotPlayed — матч не в статусе PLAYED
	// (уже отрейтингован или завершился отказом).
	ErrMatchNotPlayed = errors.New("match is not in PLAYED status")

	// ErrOrchestratorStopped — оркестратор остановлен.
	ErrOrchestratorStopped = errors.New("orchestrator stopped")
)
