package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shaiso/Gauntlet/internal/arena"
	"github.com/shaiso/Gauntlet/internal/domain"
	"github.com/shaiso/Gauntlet/internal/mq"
	"github.com/shaiso/Gauntlet/internal/repo"
)

// Default configuration values.
const (
	defaultPollInterval = 10 * time.Second
	defaultBatchSize    = 10
	defaultPrefetch     = 1
)

// Worker выполняет матчи.
//
// Worker — stateless компонент системы, который:
//   - Получает матчи из очереди RabbitMQ (event-driven)
//   - Периодически проверяет PENDING матчи в БД (polling fallback)
//   - Запускает игровой процесс через arena и разбирает результат
//   - Записывает исход (PLAYED либо терминальный отказ) в БД
//   - Отправляет событие в очередь matches.completed
//
// Workers масштабируются горизонтально — несколько экземпляров
// могут потреблять из одной очереди; CAS на статусе матча гарантирует,
// что каждый матч запускается один раз.
//
// Prefetch = 1: матч занимает ядро на всё время игры, набирать
// сообщения впрок бессмысленно.
type Worker struct {
	// Repositories
	matchRepo  *repo.MatchRepo
	playerRepo *repo.PlayerRepo

	// Arena
	arena *arena.Arena

	// MQ
	publisher *mq.Publisher
	conn      *mq.Connection

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

// Config — конфигурация Worker.
type Config struct {
	// Repositories
	MatchRepo  *repo.MatchRepo
	PlayerRepo *repo.PlayerRepo

	// Arena — запуск игрового бинарника.
	Arena *arena.Arena

	// MQ
	Publisher *mq.Publisher
	Conn      *mq.Connection

	// Polling configuration
	PollInterval time.Duration // интервал polling (default: 10s)
	BatchSize    int           // количество матчей за один poll (default: 10)

	// Logger
	Logger *slog.Logger
}

// New создаёт новый Worker.
func New(cfg Config) *Worker {
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

	return &Worker{
		matchRepo:    cfg.MatchRepo,
		playerRepo:   cfg.PlayerRepo,
		arena:        cfg.Arena,
		publisher:    cfg.Publisher,
		conn:         cfg.Conn,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// Start запускает Worker.
//
// Запускает:
//   - Consumer для matches.ready
//   - Polling горутину для fallback
func (w *Worker) Start(ctx context.Context) error {
	if w.IsStopped() {
		return ErrWorkerStopped
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel

	w.logger.Info("starting worker",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	// Создаём и запускаем consumer. Без RabbitMQ остаётся только polling.
	if w.conn != nil {
		w.consumer = mq.NewConsumer(w.conn, w.logger, mq.ConsumerConfig{
			Queue:    string(mq.QueueMatchesReady),
			Handler:  w.handleMatchReady,
			Prefetch: defaultPrefetch,
		})

		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			if err := w.consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				w.logger.Error("match consumer error", "error", err)
			}
		}()
	}

	// Запускаем polling
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.pollLoop(ctx)
	}()

	w.logger.Info("worker started")
	return nil
}

// Stop останавливает Worker.
func (w *Worker) Stop() {
	w.stoppedMu.Lock()
	w.stopped = true
	w.stoppedMu.Unlock()

	w.logger.Info("stopping worker...")

	if w.cancelFunc != nil {
		w.cancelFunc()
	}

	if w.consumer != nil {
		w.consumer.Stop()
	}

	// Ждём завершения горутин
	w.wg.Wait()

	w.logger.Info("worker stopped")
}

// IsStopped проверяет, остановлен ли Worker.
func (w *Worker) IsStopped() bool {
	w.stoppedMu.RLock()
	defer w.stoppedMu.RUnlock()
	return w.stopped
}

// pollLoop — цикл polling для fallback.
func (w *Worker) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Первый poll сразу при старте (подхватываем матчи, созданные пока были выключены)
	w.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// poll выполняет один цикл polling.
func (w *Worker) poll(ctx context.Context) {
	matches, err := w.matchRepo.ListByStatus(ctx, domain.MatchStatusPending, w.batchSize)
	if err != nil {
		w.logger.Error("failed to list pending matches", "error", err)
		return
	}

	if len(matches) == 0 {
		return
	}

	w.logger.Debug("poll found pending matches", "count", len(matches))

	for i := range matches {
		match := &matches[i]

		if err := w.processMatch(ctx, match.ID); err != nil {
			w.logger.Error("failed to process match from poll",
				"match_id", match.ID,
				"error", err,
			)
		}
	}
}
