// Package arena запускает внешний игровой бинарник и разбирает его
// результаты.
//
// Структура:
//   - command.go: сборка аргументов командной строки под параметры матча
//   - exec.go: запуск процесса с дедлайном и захватом stdout
//   - results.go: разбор JSON-отчёта в domain.Outcome
//
// Пакет не трогает БД и очереди: на входе матч и игроки, на выходе
// Outcome либо одна из ошибок errors.go. Классификацию ошибки в
// статус матча делает воркер.
package arena
