package arena

import "errors"

// Ошибки арены. Каждая соответствует терминальному статусу матча.
var (
	// ErrMatchTimedOut — матч не уложился в лимит времени и был убит.
	ErrMatchTimedOut = errors.New("match timed out")

	// ErrResultUnparseable — процесс завершился, но stdout не удалось
	// разобрать как отчёт о матче.
	ErrResultUnparseable = errors.New("match results unparseable")

	// ErrSpawnFailed — процесс не удалось запустить вовсе
	// (нет бинарника, нет прав, нет ресурсов).
	ErrSpawnFailed = errors.New("failed to spawn game process")
)
