package rating

import "errors"

// Ошибки движка рейтингов.
var (
	// ErrInvalidInput — движок получил некорректные данные: разная длина
	// списков, sigma <= 0 или бессмысленные ранги. Не retryable —
	// вызывающий должен исправить вход.
	ErrInvalidInput = errors.New("invalid rating input")
)
