// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - connection.go — управление соединением с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление exchanges, queues, bindings
//   - publisher.go  — публикация сообщений в очереди
//   - consumer.go   — потребление сообщений из очередей
//
// Типы сообщений:
//   - match.ready      — матч ожидает воркера
//   - match.completed  — игровой процесс матча завершён
//
// Exchanges:
//   - gauntlet.matches — события матчей
//   - gauntlet.dlq     — dead letter queue
package mq
