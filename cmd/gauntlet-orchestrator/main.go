// Gauntlet Orchestrator — обновляет рейтинги по сыгранным матчам.
//
// Orchestrator:
//   - Получает события о сыгранных матчах из RabbitMQ (с fallback на polling)
//   - Запускает байесовский инференс рейтингов по рангам матча
//   - Атомарно записывает новые рейтинги всех участников
//   - Переводит матч в FINISHED
//
// Разворачивается в одном экземпляре: последовательность обновлений
// рейтинга одного игрока защищена внутрипроцессными локами.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/Gauntlet/internal/mq"
	"github.com/shaiso/Gauntlet/internal/orchestrator"
	"github.com/shaiso/Gauntlet/internal/repo"
	"github.com/shaiso/Gauntlet/internal/telemetry"
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger("gauntlet-orchestrator")
	logger.Info("starting gauntlet-orchestrator")

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

	// RabbitMQ
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
	}

	// Создаём orchestrator
	orch := orchestrator.New(orchestrator.Config{
		MatchRepo:  matchRepo,
		PlayerRepo: playerRepo,
		Conn:       mqConn,
		Logger:     logger,
	})

	// Запускаем orchestrator
	if err := orch.Start(ctx); err != nil {
		logger.Error("failed to start orchestrator", "error", err)
		os.Exit(1)
	}

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	port := ":8083"
	if v := os.Getenv("ORCH_PORT"); v != "" {
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

	// Останавливаем orchestrator
	orch.Stop()
	logger.Info("gauntlet-orchestrator stopped")
}
