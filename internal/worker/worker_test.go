package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shaiso/Gauntlet/internal/arena"
	"github.com/shaiso/Gauntlet/internal/domain"
)

// --- failureStatus Tests ---

func TestFailureStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domain.MatchStatus
	}{
		{"таймаут", arena.ErrMatchTimedOut, domain.MatchStatusTimedOut},
		{"кривой вывод", arena.ErrResultUnparseable, domain.MatchStatusUnparseable},
		{"не запустился", arena.ErrSpawnFailed, domain.MatchStatusSpawnFailed},
		{"обёрнутый таймаут", fmt.Errorf("wrap: %w", arena.ErrMatchTimedOut), domain.MatchStatusTimedOut},
		{"неизвестная ошибка", fmt.Errorf("boom"), domain.MatchStatusSpawnFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := failureStatus(tc.err); got != tc.want {
				t.Errorf("failureStatus(%v) = %s, ожидалось %s", tc.err, got, tc.want)
			}
		})
	}
}

// --- Worker configuration Tests ---

func TestNew_DefaultConfig(t *testing.T) {
	w := New(Config{})

	if w.pollInterval != defaultPollInterval {
		t.Errorf("expected default poll interval %v, got %v", defaultPollInterval, w.pollInterval)
	}
	if w.batchSize != defaultBatchSize {
		t.Errorf("expected default batch size %d, got %d", defaultBatchSize, w.batchSize)
	}
	if w.logger == nil {
		t.Error("expected default logger")
	}
}

func TestNew_CustomConfig(t *testing.T) {
	w := New(Config{
		PollInterval: 5 * time.Second,
		BatchSize:    25,
	})

	if w.pollInterval != 5*time.Second {
		t.Errorf("expected poll interval 5s, got %v", w.pollInterval)
	}
	if w.batchSize != 25 {
		t.Errorf("expected batch size 25, got %d", w.batchSize)
	}
}

func TestWorker_IsStopped(t *testing.T) {
	w := New(Config{})

	if w.IsStopped() {
		t.Error("new worker should not be stopped")
	}

	w.Stop()

	if !w.IsStopped() {
		t.Error("worker should be stopped after Stop()")
	}
}

func TestWorker_StartAfterStop(t *testing.T) {
	w := New(Config{})
	w.Stop()

	if err := w.Start(context.Background()); !errors.Is(err, ErrWorkerStopped) {
		t.Errorf("expected ErrWorkerStopped, got %v", err)
	}
}
