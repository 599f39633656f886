// internal/store/sqlite.go
//
// SQLite implementation of Store. Each room is one row: the state as a JSON
// blob plus a revision column used for compare-and-swap. Durability is
// last-write-wins at the row level; the revision guard turns concurrent
// writers into retries instead of lost updates.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"codigosecreto/internal/game"
)

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
	code          TEXT PRIMARY KEY,
	revision      INTEGER NOT NULL,
	state         BLOB NOT NULL,
	last_activity INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_rooms_last_activity ON rooms(last_activity);`

type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) a SQLite-backed Store at path.
// Configures busy timeout and WAL journaling, and applies the schema.
func OpenSQLite(path string) (Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Load(ctx context.Context, roomCode string) (*game.State, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM rooms WHERE code = ?`,
		strings.ToUpper(roomCode),
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var st game.State
	if err := json.Unmarshal(blob, &st); err != nil {
		return nil, fmt.Errorf("decode room %s: %w", roomCode, err)
	}
	return &st, nil
}

func (s *sqliteStore) Save(ctx context.Context, st *game.State) error {
	code := strings.ToUpper(st.RoomCode)
	prev := st.Revision
	st.Revision = prev + 1

	blob, err := json.Marshal(st)
	if err != nil {
		st.Revision = prev
		return fmt.Errorf("encode room %s: %w", code, err)
	}

	if prev == 0 {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO rooms (code, revision, state, last_activity) VALUES (?, ?, ?, ?)`,
			code, st.Revision, blob, st.LastActivity.Unix(),
		)
		if err != nil {
			st.Revision = prev
			var sqliteErr sqlite3.Error
			if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
				return ErrConflict
			}
			return err
		}
		return nil
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE rooms SET revision = ?, state = ?, last_activity = ? WHERE code = ? AND revision = ?`,
		st.Revision, blob, st.LastActivity.Unix(), code, prev,
	)
	if err != nil {
		st.Revision = prev
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		st.Revision = prev
		return err
	}
	if n == 0 {
		st.Revision = prev
		return ErrConflict
	}
	return nil
}

func (s *sqliteStore) Delete(ctx context.Context, roomCode string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM rooms WHERE code = ?`, strings.ToUpper(roomCode))
	return err
}

func (s *sqliteStore) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM rooms WHERE last_activity < ?`, cutoff.Unix())
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// Close releases the underlying database handle.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}
