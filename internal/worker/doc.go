// Package worker выполняет матчи.
//
// # Обзор
//
// Worker — stateless компонент системы Gauntlet, который проводит
// матчи, созданные через API. Worker отвечает за:
//
//   - Получение матчей из очереди RabbitMQ (event-driven)
//   - Периодическую проверку PENDING матчей в БД (polling fallback)
//   - Запуск игрового процесса через arena с бюджетом времени
//   - Запись исхода матча (PLAYED либо терминальный отказ) в БД
//   - Отправку события в очередь matches.completed
//
// Workers масштабируются горизонтально — несколько экземпляров
// потребляют из одной очереди matches.ready. Атомарный CAS на статусе
// (PENDING -> RUNNING) гарантирует, что каждый матч играется один раз.
//
// # Ключевые компоненты
//
// ## Worker
//
// Основная структура, управляющая жизненным циклом.
// Создаётся через New(cfg Config) и запускается методом Start(ctx).
//
//	w := worker.New(worker.Config{
//	    MatchRepo:  matchRepo,
//	    PlayerRepo: playerRepo,
//	    Arena:      gameArena,
//	    Publisher:  publisher,
//	    Conn:       mqConn,
//	    Logger:     logger,
//	})
//
//	if err := w.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Stop()
//
// # Обработка матча
//
//  1. Получение матча (из очереди или polling)
//  2. Загрузка матча из БД, проверка статуса PENDING
//  3. CAS PENDING -> RUNNING (проигравший гонку воркер отступает)
//  4. Загрузка участников в порядке match.PlayerIDs
//  5. arena.Execute: запуск процесса, захват stdout, разбор отчёта
//  6. Успех → RecordOutcome (PLAYED), publish match.completed
//  7. Отказ → MarkFailed (TIMED_OUT / UNPARSEABLE / SPAWN_FAILED),
//     publish match.completed
//
// # Отсутствие retry
//
// Отказ матча терминален: таймаут или кривой вывод игры не лечатся
// повторным запуском того же seed'а в автоматическом режиме. Реванш —
// это новый Match, созданный через API. Единственное исключение —
// смерть самого воркера: такие матчи возвращает в очередь sweeper.
//
// # Ошибки
//
// Ошибки арены транслируются в терминальные статусы:
//   - ErrMatchTimedOut     → TIMED_OUT
//   - ErrResultUnparseable → UNPARSEABLE
//   - ErrSpawnFailed       → SPAWN_FAILED
//
// Ненулевой exit code с разбираемым отчётом отказом не считается:
// отчёт авторитетен.
package worker
