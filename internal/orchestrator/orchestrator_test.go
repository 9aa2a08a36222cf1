package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

// --- PlayerLocks Tests ---

func TestPlayerLocks_LockUnlock(t *testing.T) {
	pl := NewPlayerLocks()
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	unlock := pl.LockAll(ids)
	unlock()

	// Повторный захват тех же игроков не должен блокироваться.
	done := make(chan struct{})
	go func() {
		unlock := pl.LockAll(ids)
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("повторный захват после освобождения завис")
	}

	if pl.Size() != 2 {
		t.Errorf("ожидалось 2 известных игрока, получено %d", pl.Size())
	}
}

func TestPlayerLocks_Duplicates(t *testing.T) {
	pl := NewPlayerLocks()
	id := uuid.New()

	// Дубликаты в списке не должны приводить к self-deadlock.
	done := make(chan struct{})
	go func() {
		unlock := pl.LockAll([]uuid.UUID{id, id, id})
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("захват с дубликатами завис")
	}
}

// TestPlayerLocks_NoDeadlock: конкурентные захваты пересекающихся
// составов в разном порядке не должны заходить в deadlock —
// блокировки берутся в отсортированном порядке.
func TestPlayerLocks_NoDeadlock(t *testing.T) {
	pl := NewPlayerLocks()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	sets := [][]uuid.UUID{
		{a, b},
		{b, a},
		{b, c},
		{c, a},
		{a, b, c},
		{c, b, a},
	}

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		for _, set := range sets {
			wg.Add(1)
			go func(ids []uuid.UUID) {
				defer wg.Done()
				unlock := pl.LockAll(ids)
				time.Sleep(time.Microsecond)
				unlock()
			}(set)
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("конкурентные захваты зашли в deadlock")
	}
}

// TestPlayerLocks_MutualExclusion: пока состав захвачен, второй
// захват с общим участником ждёт.
func TestPlayerLocks_MutualExclusion(t *testing.T) {
	pl := NewPlayerLocks()
	shared := uuid.New()

	unlock := pl.LockAll([]uuid.UUID{shared, uuid.New()})

	acquired := make(chan struct{})
	go func() {
		u := pl.LockAll([]uuid.UUID{uuid.New(), shared})
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("второй захват прошёл, пока общий игрок занят")
	case <-time.After(100 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("второй захват не прошёл после освобождения")
	}
}

// --- Orchestrator configuration Tests ---

func TestNew_DefaultConfig(t *testing.T) {
	o := New(Config{})

	if o.pollInterval != defaultPollInterval {
		t.Errorf("expected default poll interval %v, got %v", defaultPollInterval, o.pollInterval)
	}
	if o.batchSize != defaultBatchSize {
		t.Errorf("expected default batch size %d, got %d", defaultBatchSize, o.batchSize)
	}
	if o.locks == nil {
		t.Error("expected player locks to be initialized")
	}
}

func TestOrchestrator_IsStopped(t *testing.T) {
	o := New(Config{})

	if o.IsStopped() {
		t.Error("new orchestrator should not be stopped")
	}

	o.Stop()

	if !o.IsStopped() {
		t.Error("orchestrator should be stopped after Stop()")
	}
}

func TestOrchestrator_StartAfterStop(t *testing.T) {
	o := New(Config{})
	o.Stop()

	if err := o.Start(context.Background()); !errors.Is(err, ErrOrchestratorStopped) {
		t.Errorf("expected ErrOrchestratorStopped, got %v", err)
	}
}
