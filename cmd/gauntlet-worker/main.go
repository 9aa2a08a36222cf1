// Gauntlet Worker — исполняет матчи.
//
// Worker:
//   - Получает матчи из RabbitMQ (с fallback на polling)
//   - Захватывает матч через CAS PENDING -> RUNNING
//   - Запускает игровой бинарник и парсит его результаты
//   - Публикует событие о завершении для orchestrator
//
// Workers масштабируются горизонтально.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/Gauntlet/internal/arena"
	"github.com/shaiso/Gauntlet/internal/mq"
	"github.com/shaiso/Gauntlet/internal/repo"
	"github.com/shaiso/Gauntlet/internal/telemetry"
	"github.com/shaiso/Gauntlet/internal/worker"
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger("gauntlet-worker")
	logger.Info("starting gauntlet-worker")

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// DB pool
	pool, err := repo.NewPool(ctx)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("database connected")

	// Создаём репозитории
	matchRepo := repo.NewMatchRepo(pool)
	playerRepo := repo.NewPlayerRepo(pool)

	// Игровой бинарник обязателен: без него worker бесполезен.
	gameBinary := os.Getenv("GAME_BINARY")
	if gameBinary == "" {
		logger.Error("GAME_BINARY is not set")
		os.Exit(1)
	}
	ar := arena.New(gameBinary, os.Getenv("REPLAY_DIR"))

	// RabbitMQ
	var publisher *mq.Publisher
	var mqConn *mq.Connection
	mqURL := os.Getenv("RABBITMQ_URL")
	if mqURL == "" {
		mqURL = mq.DefaultURL()
	}

	mqConn, err = mq.NewConnection(mqURL, logger)
	if err != nil {
		logger.Warn("RabbitMQ not available, running in polling-only mode", "error", err)
	} else {
		defer mqConn.Close()
		logger.Info("RabbitMQ connected")

		// Создаём топологию
		if err := mq.SetupTopology(ctx, mqConn); err != nil {
			logger.Warn("failed to setup topology", "error", err)
		}

		publisher = mq.NewPublisher(mqConn, logger)
	}

	// Создаём worker
	w := worker.New(worker.Config{
		MatchRepo:  matchRepo,
		PlayerRepo: playerRepo,
		Arena:      ar,
		Publisher:  publisher,
		Conn:       mqConn,
		Logger:     logger,
	})

	// Запускаем worker
	if err := w.Start(ctx); err != nil {
		logger.Error("failed to start worker", "error", err)
		os.Exit(1)
	}

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	port := ":8082"
	if v := os.Getenv("WORKER_PORT"); v != "" {
		port = ":" + v
	}

	go func() {
		logger.Info("listening", "addr", port)
		if err := http.ListenAndServe(port, mux); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	// Останавливаем worker
	w.Stop()
	logger.Info("gauntlet-worker stopped")
}
