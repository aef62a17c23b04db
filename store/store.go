// Package store persists the emulated LED state across restarts.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/thiefmaster/aorura/comm"
)

// Store keeps the last state of each emulated device keyed by id. States are
// stored in their 2-byte wire form.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens the database and initializes the schema
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS device_state (
			id TEXT PRIMARY KEY,
			command TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create device_state table: %w", err)
	}
	return nil
}

// Load returns the stored state for id. ok is false when nothing was stored.
func (s *Store) Load(id string) (state comm.State, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw string
	err = s.db.QueryRow(`SELECT command FROM device_state WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return comm.State{}, false, nil
	}
	if err != nil {
		return comm.State{}, false, fmt.Errorf("failed to load state: %w", err)
	}
	if len(raw) != len(comm.Command{}) {
		return comm.State{}, false, fmt.Errorf("stored command %q: %w", raw, comm.ErrInvalidCommand)
	}

	state, err = comm.Decode(comm.Command{raw[0], raw[1]})
	if err != nil {
		return comm.State{}, false, fmt.Errorf("stored command: %w", err)
	}
	return state, true, nil
}

// Save stores state for id, replacing any previous value.
func (s *Store) Save(id string, state comm.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := comm.Encode(state)
	now := time.Now().UTC().Unix()
	_, err := s.db.Exec(`
		INSERT INTO device_state (id, command, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			command = excluded.command,
			updated_at = excluded.updated_at
	`, id, string(cmd[:]), now)
	if err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	log.Debug().Str("id", id).Stringer("state", state).Msg("state saved")
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
