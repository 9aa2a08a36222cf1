package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shaiso/Gauntlet/internal/domain"
	"github.com/shaiso/Gauntlet/internal/mq"
	"github.com/shaiso/Gauntlet/internal/rating"
	"github.com/shaiso/Gauntlet/internal/repo"
	"github.com/shaiso/Gauntlet/internal/telemetry"
)

// handleMatchCompleted обрабатывает событие из очереди matches.completed.
func (o *Orchestrator) handleMatchCompleted(ctx context.Context, delivery *mq.Delivery) error {
	// Парсим payload
	payload, err := mq.ParsePayload[mq.MatchCompletedPayload](&delivery.Message)
	if err != nil {
		o.logger.Error("failed to parse match.completed payload", "error", err)
		return err
	}

	o.logger.Debug("received match.completed event",
		"match_id", payload.MatchID,
		"status", payload.Status,
	)

	// Отказные матчи рейтинг не трогают: воркер уже записал
	// терминальный статус, здесь делать нечего.
	if payload.Status != string(domain.MatchStatusPlayed) {
		return nil
	}

	if err := o.processPlayed(ctx, payload.MatchID); err != nil {
		// Ожидаемые ситуации — не возвращаем ошибку (ack)
		if errors.Is(err, ErrMatchNotFound) || errors.Is(err, ErrMatchNotPlayed) {
			o.logger.Debug("match not rated", "match_id", payload.MatchID, "reason", err)
			return nil
		}
		o.logger.Error("failed to rate match", "match_id", payload.MatchID, "error", err)
		return err
	}

	return nil
}

// processPlayed пересчитывает рейтинги участников сыгранного матча.
//
// Применение «всё или ничего» и ровно один раз: блокировки всех
// участников берутся до чтения их рейтингов, статус матча повторно
// проверяется уже под блокировками, новые значения всех игроков
// сохраняются одной транзакцией вместе с финализацией матча.
func (o *Orchestrator) processPlayed(ctx context.Context, matchID uuid.UUID) error {
	// 1. Загружаем матч (быстрая проверка до захвата блокировок)
	match, err := o.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		return fmt.Errorf("get match: %w", err)
	}
	if match.Status != domain.MatchStatusPlayed {
		return ErrMatchNotPlayed
	}

	// 2. Захватываем участников
	unlock := o.locks.LockAll(match.PlayerIDs)
	defer unlock()

	// 3. Перечитываем матч под блокировками: он мог быть отрейтингован,
	// пока мы ждали (polling и consumer гонятся за одним матчем).
	match, err = o.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("reload match: %w", err)
	}
	if match.Status != domain.MatchStatusPlayed {
		return ErrMatchNotPlayed
	}

	// 4. Загружаем участников в порядке матча
	players, err := o.playerRepo.ListByIDs(ctx, match.PlayerIDs)
	if err != nil {
		return o.markRatingFailed(ctx, match, fmt.Errorf("load players: %w", err))
	}

	// 5. Считаем новые рейтинги (вход не мутируется: при ошибке
	// ни один игрок не изменён)
	current := make([]rating.Rating, len(players))
	for i, p := range players {
		current[i] = rating.Rating{Mu: p.Mu, Sigma: p.Sigma}
	}

	updated, err := rating.Rate(current, match.Ranks, o.ratingCfg)
	if err != nil {
		return o.markRatingFailed(ctx, match, err)
	}

	// 6. Применяем и сохраняем одной транзакцией
	for i, p := range players {
		p.ApplyRating(updated[i].Mu, updated[i].Sigma)
	}
	if err := o.playerRepo.UpdateRatings(ctx, players); err != nil {
		return fmt.Errorf("persist ratings: %w", err)
	}

	// 7. Финализируем матч
	match.MarkFinished()
	if err := o.matchRepo.Update(ctx, match); err != nil {
		return fmt.Errorf("finalize match: %w", err)
	}

	telemetry.RatingUpdates.Inc()

	o.logger.Info("match rated",
		"match_id", match.ID,
		"players", len(players),
	)
	return nil
}

// markRatingFailed переводит матч в RATING_FAILED.
//
// Невалидный вход инференса (рассинхрон ranks с участниками, кривой
// рейтинг в БД) не лечится повтором — матч финализируется с ошибкой,
// рейтинги всех участников остаются нетронутыми.
func (o *Orchestrator) markRatingFailed(ctx context.Context, match *domain.Match, cause error) error {
	match.MarkFailed(domain.MatchStatusRatingFailed, cause.Error())
	if err := o.matchRepo.Update(ctx, match); err != nil {
		return fmt.Errorf("mark rating failed: %w", err)
	}

	telemetry.RatingFailures.Inc()

	o.logger.Warn("match rating failed",
		"match_id", match.ID,
		"error", cause,
	)
	return nil
}
