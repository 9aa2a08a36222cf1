// Gauntlet Sweeper — возвращает зависшие матчи в очередь и убирает
// устаревшие replay-файлы.
//
// Sweeper одиночный: лидерство удерживается через pg_try_advisory_lock,
// поэтому запуск нескольких экземпляров безопасен — работает только один.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/Gauntlet/internal/mq"
	"github.com/shaiso/Gauntlet/internal/repo"
	"github.com/shaiso/Gauntlet/internal/sweeper"
	"github.com/shaiso/Gauntlet/internal/telemetry"
)

const sweepLockKey int64 = 424242

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger("gauntlet-sweeper")
	logger.Info("starting gauntlet-sweeper")

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

	matchRepo := repo.NewMatchRepo(pool)

	// RabbitMQ: без него requeue работает, но worker узнает о матче
	// только через polling.
	var publisher *mq.Publisher
	mqURL := os.Getenv("RABBITMQ_URL")
	if mqURL == "" {
		mqURL = mq.DefaultURL()
	}

	mqConn, err := mq.NewConnection(mqURL, logger)
	if err != nil {
		logger.Warn("RabbitMQ not available, requeued matches rely on polling", "error", err)
	} else {
		defer mqConn.Close()
		logger.Info("RabbitMQ connected")

		if err := mq.SetupTopology(ctx, mqConn); err != nil {
			logger.Warn("failed to setup topology", "error", err)
		}

		publisher = mq.NewPublisher(mqConn, logger)
	}

	// Расписание и параметры уборки
	cronExpr := os.Getenv("SWEEP_CRON")
	if cronExpr == "" {
		cronExpr = sweeper.DefaultCronExpr
	}
	if err := sweeper.ValidateCronExpr(cronExpr); err != nil {
		logger.Error("invalid SWEEP_CRON", "expr", cronExpr, "error", err)
		os.Exit(1)
	}

	var graceSec float64
	if v := os.Getenv("GRACE_SEC"); v != "" {
		graceSec, err = strconv.ParseFloat(v, 64)
		if err != nil {
			logger.Error("invalid GRACE_SEC", "value", v, "error", err)
			os.Exit(1)
		}
	}

	var replayTTL time.Duration
	if v := os.Getenv("REPLAY_TTL"); v != "" {
		replayTTL, err = time.ParseDuration(v)
		if err != nil {
			logger.Error("invalid REPLAY_TTL", "value", v, "error", err)
			os.Exit(1)
		}
	}

	sw := sweeper.New(sweeper.Config{
		MatchRepo: matchRepo,
		Publisher: publisher,
		Logger:    logger,
		GraceSec:  graceSec,
		ReplayDir: os.Getenv("REPLAY_DIR"),
		ReplayTTL: replayTTL,
	})

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	// sweeper loop
	go func() {
		tk := time.NewTicker(1 * time.Second)
		defer tk.Stop()

		var hasLock bool
		defer func() {
			if hasLock {
				_, _ = pool.Exec(context.Background(), "select pg_advisory_unlock($1)", sweepLockKey)
			}
		}()

		nextRun, _ := sweeper.NextTick(cronExpr, time.Now())

		for {
			select {
			case t := <-tk.C:
				// пытаемся стать лидером (или подтвердить лидерство)
				var ok bool
				if !hasLock {
					if err := pool.QueryRow(ctx, "select pg_try_advisory_lock($1)", sweepLockKey).Scan(&ok); err != nil {
						logger.Warn("advisory lock", "error", err)
						continue
					}
					hasLock = ok
				}

				if !hasLock {
					// не лидер — пропускаем тик
					continue
				}

				if t.Before(nextRun) {
					continue
				}

				if err := sw.Tick(ctx); err != nil {
					logger.Error("sweep tick", "error", err)
				}
				nextRun, _ = sweeper.NextTick(cronExpr, t)

			case <-ctx.Done():
				return
			}
		}
	}()

	// serve
	port := ":8081"
	if v := os.Getenv("SWEEP_PORT"); v != "" {
		port = ":" + v
	}

	go func() {
		logger.Info("listening", "addr", port)
		if err := http.ListenAndServe(port, mux); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("gauntlet-sweeper stopped")
}
