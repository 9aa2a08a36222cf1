package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Gauntlet/internal/arena"
	"github.com/shaiso/Gauntlet/internal/domain"
	"github.com/shaiso/Gauntlet/internal/mq"
	"github.com/shaiso/Gauntlet/internal/repo"
	"github.com/shaiso/Gauntlet/internal/telemetry"
)

// handleMatchReady обрабатывает событие о новом матче из очереди matches.ready.
func (w *Worker) handleMatchReady(ctx context.Context, delivery *mq.Delivery) error {
	// Парсим payload
	payload, err := mq.ParsePayload[mq.MatchReadyPayload](&delivery.Message)
	if err != nil {
		w.logger.Error("failed to parse match.ready payload", "error", err)
		return err
	}

	w.logger.Debug("received match.ready event", "match_id", payload.MatchID)

	// Обрабатываем матч
	if err := w.processMatch(ctx, payload.MatchID); err != nil {
		// Ожидаемые ситуации — не возвращаем ошибку (ack)
		if errors.Is(err, ErrMatchNotFound) || errors.Is(err, ErrMatchNotPending) {
			w.logger.Debug("match not processed", "match_id", payload.MatchID, "reason", err)
			return nil
		}
		w.logger.Error("failed to process match", "match_id", payload.MatchID, "error", err)
		return err
	}

	return nil
}

// processMatch загружает матч из БД, запускает игру и записывает исход.
//
// Ровно один запуск на матч: переход PENDING -> RUNNING делается
// атомарным CAS в БД, проигравший гонку воркер получает
// ErrMatchNotPending. Ретраев нет: любой отказ арены — терминальный
// статус, реванш — это новый матч.
func (w *Worker) processMatch(ctx context.Context, matchID uuid.UUID) error {
	// 1. Загружаем матч из БД
	match, err := w.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		return fmt.Errorf("get match: %w", err)
	}

	// 2. Проверяем статус
	if match.Status != domain.MatchStatusPending {
		return ErrMatchNotPending
	}

	// 3. Захватываем матч: CAS PENDING -> RUNNING
	if err := w.matchRepo.UpdateStatus(ctx, match.ID, domain.MatchStatusPending, domain.MatchStatusRunning); err != nil {
		if errors.Is(err, repo.ErrInvalidState) {
			return ErrMatchNotPending
		}
		return fmt.Errorf("claim match: %w", err)
	}
	match.MarkRunning()
	if err := w.matchRepo.Update(ctx, match); err != nil {
		return fmt.Errorf("update match to running: %w", err)
	}

	// 4. Загружаем участников в порядке матча
	players, err := w.playerRepo.ListByIDs(ctx, match.PlayerIDs)
	if err != nil {
		match.MarkFailed(domain.MatchStatusSpawnFailed, fmt.Sprintf("load players: %v", err))
		if uerr := w.matchRepo.Update(ctx, match); uerr != nil {
			return fmt.Errorf("update match after player load failure: %w", uerr)
		}
		return w.publishCompletion(ctx, match)
	}

	w.logger.Info("match started",
		"match_id", match.ID,
		"players", match.NumPlayers(),
		"time_limit_sec", match.TimeLimitSec,
	)

	// 5. Запускаем игру
	started := time.Now()
	outcome, execErr := w.arena.Execute(ctx, match, players)
	telemetry.MatchDuration.Observe(time.Since(started).Seconds())

	// Воркер останавливается: матч остаётся в RUNNING, его вернёт
	// в очередь sweeper. Записывать отказ нельзя — игра не виновата.
	if execErr != nil && ctx.Err() != nil {
		return fmt.Errorf("worker stopping: %w", ctx.Err())
	}

	// 6. Записываем исход
	if execErr == nil {
		match.RecordOutcome(outcome)
	} else {
		match.MarkFailed(failureStatus(execErr), execErr.Error())
	}
	if err := w.matchRepo.Update(ctx, match); err != nil {
		return fmt.Errorf("update match outcome: %w", err)
	}

	telemetry.MatchesExecuted.WithLabelValues(string(match.Status)).Inc()

	if execErr == nil {
		w.logger.Info("match played",
			"match_id", match.ID,
			"ranks", match.Ranks,
			"duration", time.Since(started),
		)
	} else {
		w.logger.Warn("match failed",
			"match_id", match.ID,
			"status", match.Status,
			"error", match.Error,
		)
	}

	// 7. Сообщаем оркестратору
	return w.publishCompletion(ctx, match)
}

// failureStatus переводит ошибку арены в терминальный статус матча.
func failureStatus(err error) domain.MatchStatus {
	switch {
	case errors.Is(err, arena.ErrMatchTimedOut):
		return domain.MatchStatusTimedOut
	case errors.Is(err, arena.ErrResultUnparseable):
		return domain.MatchStatusUnparseable
	default:
		return domain.MatchStatusSpawnFailed
	}
}

// publishCompletion публикует событие match.completed.
func (w *Worker) publishCompletion(ctx context.Context, match *domain.Match) error {
	if w.publisher == nil {
		w.logger.Warn("publisher not available, skipping match.completed publish",
			"match_id", match.ID,
		)
		return nil
	}

	payload := mq.MatchCompletedPayload{
		MatchID: match.ID,
		Status:  string(match.Status),
		Error:   match.Error,
	}

	if err := w.publisher.PublishMatchCompleted(ctx, payload); err != nil {
		w.logger.Warn("failed to publish match.completed",
			"match_id", match.ID,
			"error", err,
		)
		// Не возвращаем ошибку — матч обновлён в БД, оркестратор подхватит через polling
	}

	return nil
}
