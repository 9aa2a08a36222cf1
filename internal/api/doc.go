// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go             — Handler с DI (репозитории, publisher, logger)
//   - routes.go              — регистрация маршрутов
//   - middleware.go          — middleware (logging, recovery)
//   - response.go            — унифицированные JSON-ответы и обработка ошибок
//   - dto.go                 — Data Transfer Objects (request/response)
//   - player_handler.go      — обработчики для /players
//   - match_handler.go       — обработчики для /matches
//   - leaderboard_handler.go — обработчик для /leaderboard
//
// API предоставляет REST endpoints для регистрации игроков,
// создания матчей и чтения таблицы лидеров.
package api
