// internal/store/store.go
//
// Persistence interface for room state. Implementations may be backed by
// memory (development) or SQLite. Concurrency control is optimistic: State
// carries a revision, Save commits only when the stored revision matches the
// snapshot's, and callers retry the whole load-apply-save loop on conflict.

package store

import (
	"context"
	"errors"
	"time"

	"codigosecreto/internal/game"
)

var (
	// ErrNotFound means no room exists under the given code.
	ErrNotFound = errors.New("room not found")

	// ErrConflict means the stored revision moved since the snapshot was
	// loaded; the caller should reload and retry.
	ErrConflict = errors.New("room was modified concurrently")
)

// IsNotFound reports whether err is a missing-room error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err is a revision conflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// Store defines the persistence interface for rooms, keyed by room code
// (case-insensitive; implementations normalize to upper case).
type Store interface {
	// Load retrieves a room snapshot. Returns ErrNotFound if missing.
	Load(ctx context.Context, roomCode string) (*game.State, error)

	// Save persists the snapshot if its revision still matches the stored
	// one, then bumps the snapshot's revision. Returns ErrConflict otherwise.
	// A snapshot with revision zero creates the room.
	Save(ctx context.Context, s *game.State) error

	// Delete removes a room. Deleting a missing room is not an error.
	Delete(ctx context.Context, roomCode string) error

	// Sweep deletes rooms idle since before cutoff and reports how many.
	Sweep(ctx context.Context, cutoff time.Time) (int, error)
}
