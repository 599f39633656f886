// internal/store/memory.go
//
// In-memory implementation of Store. Ephemeral, used in development and
// tests, or when durability is not required.
//
// Characteristics:
//   - Rooms keyed by upper-cased room code in a map.
//   - Concurrency-safe via RWMutex.
//   - Load and Save work on deep copies, so callers never share a snapshot
//     with the store.

package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"codigosecreto/internal/game"
)

type memory struct {
	mu    sync.RWMutex
	rooms map[string]*game.State
}

// NewMemoryStore constructs an in-memory Store.
func NewMemoryStore() Store {
	return &memory{rooms: make(map[string]*game.State)}
}

func (m *memory) Load(ctx context.Context, roomCode string) (*game.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.rooms[strings.ToUpper(roomCode)]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (m *memory) Save(ctx context.Context, s *game.State) error {
	key := strings.ToUpper(s.RoomCode)

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, exists := m.rooms[key]
	switch {
	case !exists && s.Revision != 0:
		// Room was deleted under the caller.
		return ErrConflict
	case exists && cur.Revision != s.Revision:
		return ErrConflict
	}

	s.Revision++
	m.rooms[key] = s.Clone()
	return nil
}

func (m *memory) Delete(ctx context.Context, roomCode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, strings.ToUpper(roomCode))
	return nil
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for code, s := range m.rooms {
		if s.LastActivity.Before(cutoff) {
			delete(m.rooms, code)
			n++
		}
	}
	return n, nil
}
