package orchestrator

import (
	"bytes"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// PlayerLocks — набор именованных блокировок по игрокам.
//
// Матчи с общим участником применяются к рейтингам строго по очереди,
// матчи с непересекающимися составами — параллельно. Блокировки
// берутся в отсортированном по ID порядке, что исключает deadlock
// при пересекающихся составах.
//
// Мьютексы не освобождаются из карты: их число ограничено числом
// игроков турнира.
type PlayerLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewPlayerLocks создаёт пустой набор блокировок.
func NewPlayerLocks() *PlayerLocks {
	return &PlayerLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// get возвращает мьютекс игрока, создавая при первом обращении.
func (pl *PlayerLocks) get(id uuid.UUID) *sync.Mutex {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	m, ok := pl.locks[id]
	if !ok {
		m = &sync.Mutex{}
		pl.locks[id] = m
	}
	return m
}

// LockAll захватывает блокировки всех перечисленных игроков и
// возвращает функцию освобождения. Дубликаты в списке схлопываются.
func (pl *PlayerLocks) LockAll(ids []uuid.UUID) (unlock func()) {
	// Дедупликация + отсортированный порядок захвата.
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Slice(unique, func(a, b int) bool {
		return bytes.Compare(unique[a][:], unique[b][:]) < 0
	})

	acquired := make([]*sync.Mutex, 0, len(unique))
	for _, id := range unique {
		m := pl.get(id)
		m.Lock()
		acquired = append(acquired, m)
	}

	return func() {
		// Освобождаем в обратном порядке.
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].Unlock()
		}
	}
}

// Size возвращает количество известных игроков (для отладки).
func (pl *PlayerLocks) Size() int {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return len(pl.locks)
}
