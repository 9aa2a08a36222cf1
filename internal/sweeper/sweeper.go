package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shaiso/Gauntlet/internal/mq"
	"github.com/shaiso/Gauntlet/internal/repo"
	"github.com/shaiso/Gauntlet/internal/telemetry"
)

// defaultGraceSec — запас сверх бюджета матча, после которого
// RUNNING считается зависшим. Покрывает WaitDelay арены и время
// на запись исхода в БД.
const defaultGraceSec = 60.0

// Sweeper возвращает в очередь матчи умерших воркеров и прибирает
// устаревшие replay-файлы.
//
// Зависший матч — это RUNNING, переживший собственный бюджет времени
// с запасом: живой воркер к этому моменту либо записал исход, либо
// убил процесс по таймауту. Терминальные статусы sweeper не трогает:
// отказ матча не лечится перезапуском, это решает оператор новым
// матчем.
type Sweeper struct {
	matchRepo *repo.MatchRepo
	publisher *mq.Publisher
	logger    *slog.Logger

	graceSec  float64
	replayDir string
	replayTTL time.Duration
}

// Config — конфигурация Sweeper.
type Config struct {
	MatchRepo *repo.MatchRepo
	Publisher *mq.Publisher
	Logger    *slog.Logger

	// GraceSec — запас сверх бюджета матча (default: 60).
	GraceSec float64

	// ReplayDir, ReplayTTL — каталог и срок хранения replay-файлов.
	// Нулевой TTL отключает уборку.
	ReplayDir string
	ReplayTTL time.Duration
}

// New создаёт новый Sweeper.
func New(cfg Config) *Sweeper {
	graceSec := cfg.GraceSec
	if graceSec <= 0 {
		graceSec = defaultGraceSec
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Sweeper{
		matchRepo: cfg.MatchRepo,
		publisher: cfg.Publisher,
		logger:    logger,
		graceSec:  graceSec,
		replayDir: cfg.ReplayDir,
		replayTTL: cfg.ReplayTTL,
	}
}

// Tick выполняет один проход sweeper'а.
//
// 1. Возвращает зависшие RUNNING матчи в PENDING
// 2. Публикует match.ready для каждого возвращённого
// 3. Удаляет replay-файлы старше TTL (если настроено)
//
// Ошибка публикации не фатальна: воркеры подхватят PENDING
// через polling.
func (s *Sweeper) Tick(ctx context.Context) error {
	ids, err := s.matchRepo.RequeueStuck(ctx, s.graceSec)
	if err != nil {
		return fmt.Errorf("requeue stuck matches: %w", err)
	}

	for _, id := range ids {
		s.logger.Warn("requeued stuck match", "match_id", id)

		if s.publisher != nil {
			if err := s.publisher.PublishMatchReady(ctx, id); err != nil {
				s.logger.Warn("failed to publish match.ready",
					"match_id", id,
					"error", err,
				)
			}
		}
	}

	if len(ids) > 0 {
		telemetry.MatchesRequeued.Add(float64(len(ids)))
		s.logger.Info("sweep completed", "requeued", len(ids))
	}

	if s.replayTTL > 0 && s.replayDir != "" {
		if err := s.pruneReplays(); err != nil {
			// Уборка replay — вспомогательная: не роняем тик.
			s.logger.Warn("failed to prune replays", "error", err)
		}
	}

	return nil
}

// pruneReplays удаляет replay-файлы старше TTL.
func (s *Sweeper) pruneReplays() error {
	entries, err := os.ReadDir(s.replayDir)
	if err != nil {
		return fmt.Errorf("read replay dir: %w", err)
	}

	cutoff := time.Now().Add(-s.replayTTL)
	var pruned int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.replayDir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warn("failed to remove replay", "path", path, "error", err)
			continue
		}
		pruned++
	}

	if pruned > 0 {
		s.logger.Info("pruned replays", "count", pruned, "ttl", s.replayTTL)
	}
	return nil
}
