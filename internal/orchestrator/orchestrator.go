package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shaiso/Gauntlet/internal/domain"
	"github.com/shaiso/Gauntlet/internal/mq"
	"github.com/shaiso/Gauntlet/internal/rating"
	"github.com/shaiso/Gauntlet/internal/repo"
)

// Default configuration values.
const (
	defaultPollInterval = 10 * time.Second
	defaultBatchSize    = 100
)

// Orchestrator применяет результаты матчей к рейтингам.
//
// Orchestrator — компонент системы, который:
//   - Получает события о сыгранных матчах из очереди RabbitMQ
//   - Периодически проверяет PLAYED матчи в БД (polling fallback)
//   - Пересчитывает рейтинги участников через rating.Rate
//   - Сохраняет новые рейтинги одной транзакцией
//   - Финализирует матчи (FINISHED/RATING_FAILED)
//
// Per-player блокировки сериализуют пересчёты: два матча с общим
// участником применяются строго по очереди, матчи без общих
// участников — параллельно. Экземпляр singleton (как и лидер
// sweeper'а): exactly-once применения рейтинга держится на
// внутрипроцессных блокировках и повторной проверке статуса под ними.
type Orchestrator struct {
	// Repositories
	matchRepo  *repo.MatchRepo
	playerRepo *repo.PlayerRepo

	// MQ
	conn *mq.Connection

	// Rating
	ratingCfg rating.Config

	// Per-player блокировки
	locks *PlayerLocks

	// Consumer
	consumer *mq.Consumer

	// Configuration
	pollInterval time.Duration
	batchSize    int

	// Lifecycle
	logger     *slog.Logger
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	stopped    bool
	stoppedMu  sync.RWMutex
}

// Config — конфигурация Orchestrator.
type Config struct {
	// Repositories
	MatchRepo  *repo.MatchRepo
	PlayerRepo *repo.PlayerRepo

	// MQ
	Conn *mq.Connection

	// Rating — параметры инференса (zero value — умолчания).
	Rating rating.Config

	// Polling configuration
	PollInterval time.Duration // интервал polling (default: 10s)
	BatchSize    int           // количество матчей за один poll (default: 100)

	// Logger
	Logger *slog.Logger
}

// New создаёт новый Orchestrator.
func New(cfg Config) *Orchestrator {
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		matchRepo:    cfg.MatchRepo,
		playerRepo:   cfg.PlayerRepo,
		conn:         cfg.Conn,
		ratingCfg:    cfg.Rating,
		locks:        NewPlayerLocks(),
		pollInterval: pollInterval,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// Start запускает Orchestrator.
//
// Запускает:
//   - Consumer для matches.completed
//   - Polling горутину для fallback
func (o *Orchestrator) Start(ctx context.Context) error {
	if o.IsStopped() {
		return ErrOrchestratorStopped
	}

	ctx, cancel := context.WithCancel(ctx)
	o.cancelFunc = cancel

	o.logger.Info("starting orchestrator",
		"poll_interval", o.pollInterval,
		"batch_size", o.batchSize,
	)

	// Создаём и запускаем consumer. Без RabbitMQ остаётся только polling.
	if o.conn != nil {
		o.consumer = mq.NewConsumer(o.conn, o.logger, mq.ConsumerConfig{
			Queue:    string(mq.QueueMatchesCompleted),
			Handler:  o.handleMatchCompleted,
			Prefetch: 10,
		})

		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			if err := o.consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				o.logger.Error("match consumer error", "error", err)
			}
		}()
	}

	// Запускаем polling
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.pollLoop(ctx)
	}()

	o.logger.Info("orchestrator started")
	return nil
}

// Stop останавливает Orchestrator.
func (o *Orchestrator) Stop() {
	o.stoppedMu.Lock()
	o.stopped = true
	o.stoppedMu.Unlock()

	o.logger.Info("stopping orchestrator...")

	if o.cancelFunc != nil {
		o.cancelFunc()
	}

	if o.consumer != nil {
		o.consumer.Stop()
	}

	// Ждём завершения горутин
	o.wg.Wait()

	o.logger.Info("orchestrator stopped")
}

// IsStopped проверяет, остановлен ли Orchestrator.
func (o *Orchestrator) IsStopped() bool {
	o.stoppedMu.RLock()
	defer o.stoppedMu.RUnlock()
	return o.stopped
}

// pollLoop — цикл polling для fallback.
func (o *Orchestrator) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(o.pollInterval)
	defer ticker.Stop()

	// Первый poll сразу при старте (подхватываем матчи, сыгранные пока были выключены)
	o.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.poll(ctx)
		}
	}
}

// poll выполняет один цикл polling.
func (o *Orchestrator) poll(ctx context.Context) {
	matches, err := o.matchRepo.ListByStatus(ctx, domain.MatchStatusPlayed, o.batchSize)
	if err != nil {
		o.logger.Error("failed to list played matches", "error", err)
		return
	}

	if len(matches) == 0 {
		return
	}

	o.logger.Debug("poll found played matches", "count", len(matches))

	for i := range matches {
		match := &matches[i]

		if err := o.processPlayed(ctx, match.ID); err != nil {
			o.logger.Error("failed to rate match from poll",
				"match_id", match.ID,
				"error", err,
			)
		}
	}
}
