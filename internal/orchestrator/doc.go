// Package orchestrator применяет результаты матчей к рейтингам игроков.
//
// Orchestrator отвечает за:
//   - Получение событий о сыгранных матчах из очереди RabbitMQ
//   - Сериализацию пересчётов через per-player блокировки
//   - Пересчёт рейтингов участников (rating.Rate)
//   - Транзакционное сохранение новых значений («все или никто»)
//   - Финализацию матчей (FINISHED/RATING_FAILED)
//
// Результат каждого матча применяется к рейтингам ровно один раз.
package orchestrator
