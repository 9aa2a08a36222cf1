package worker

import "errors"

// Ошибки воркера.
var (
	// ErrMatchNotFound — матч не найден в БД.
	ErrMatchNotFound = errors.New("match not found")

	// ErrMatchNotPending — матч не в статусе PENDING
	// (уже взят другим воркером или завершён).
	ErrMatchNotPending = errors.New("match is not in PENDING status")

	// ErrWorkerStopped — воркер остановлен.
	ErrWorkerStopped = errors.New("worker stopped")
)
