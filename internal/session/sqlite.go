package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"landscapecore/pkg/domain"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Compile-time contract assertion.
var _ domain.SessionStore = (*SQLiteStore)(nil)

// SQLiteStore persists session payloads to a single SQLite table. Every
// mutation writes through; reads are served from the hydrated memory store.
type SQLiteStore struct {
	*MemoryStore
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewSQLiteStore opens (or creates) the session database at path and hydrates
// the in-memory state from it.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "landscapecore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS session (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create session table: %w", err)
	}
	s := &SQLiteStore{MemoryStore: NewMemoryStore(), db: db, path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) load() error {
	rows, err := s.db.Query(`SELECT key, payload FROM session`)
	if err != nil {
		return fmt.Errorf("select session: %w", err)
	}
	defer func() { _ = rows.Close() }()
	snapshot := make(map[string][]byte)
	for rows.Next() {
		var key string
		var payload []byte
		if err := rows.Scan(&key, &payload); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		snapshot[key] = payload
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate session: %w", err)
	}
	s.Restore(snapshot)
	return nil
}

// Set stores payload under key and writes it through to the database.
func (s *SQLiteStore) Set(key string, payload []byte) error {
	if err := s.MemoryStore.Set(key, payload); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(
		`INSERT INTO session(key,payload) VALUES(?,?) ON CONFLICT(key) DO UPDATE SET payload=excluded.payload`,
		key, payload,
	); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Remove deletes the key from memory and the database.
func (s *SQLiteStore) Remove(key string) error {
	if err := s.MemoryStore.Remove(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM session WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Clear removes every key from memory and the database.
func (s *SQLiteStore) Clear() error {
	if err := s.MemoryStore.Clear(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM session`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the backing database file path.
func (s *SQLiteStore) Path() string { return s.path }
