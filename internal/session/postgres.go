package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"landscapecore/pkg/domain"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// Compile-time contract assertion.
var _ domain.SessionStore = (*PostgresStore)(nil)

const defaultPostgresDSN = "postgres://localhost/landscapecore?sslmode=disable"

// PostgresStore persists session payloads to a Postgres table, mirroring the
// SQLite store's write-through semantics. It exists for shared facilitation
// servers where several workshops archive into one database.
type PostgresStore struct {
	*MemoryStore
	db *sql.DB
	mu sync.Mutex
}

// NewPostgresStore opens a Postgres-backed store using the provided DSN
// (falls back to a local default) and hydrates in-memory state.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	if dsn == "" {
		dsn = defaultPostgresDSN
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS session (
		key TEXT PRIMARY KEY,
		payload BYTEA NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create session table: %w", err)
	}
	s := &PostgresStore{MemoryStore: NewMemoryStore(), db: db}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT key, payload FROM session`)
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
func (s *PostgresStore) Set(key string, payload []byte) error {
	if err := s.MemoryStore.Set(key, payload); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(
		`INSERT INTO session(key,payload) VALUES($1,$2) ON CONFLICT(key) DO UPDATE SET payload=excluded.payload`,
		key, payload,
	); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Remove deletes the key from memory and the database.
func (s *PostgresStore) Remove(key string) error {
	if err := s.MemoryStore.Remove(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM session WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Clear removes every key from memory and the database.
func (s *PostgresStore) Clear() error {
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
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *PostgresStore) DB() *sql.DB { return s.db }
