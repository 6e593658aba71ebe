package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Linskii/coffee-tracker/bo"
)

// SQLiteStore persists bo.State and bo.Config as JSON blob columns in a
// SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if absent) a SQLite database at dbPath and
// ensures its schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: initializing schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bo_states (
		key TEXT PRIMARY KEY,
		state TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS bo_config (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		config TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// GetState loads the state for key, or (nil, nil) if no row exists.
func (s *SQLiteStore) GetState(ctx context.Context, key string) (*bo.State, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM bo_states WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: reading state %q: %w", key, err)
	}
	var state bo.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("store: decoding state %q: %w", key, err)
	}
	return &state, nil
}

// PutState inserts or replaces the state for key.
func (s *SQLiteStore) PutState(ctx context.Context, key string, state *bo.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("store: encoding state %q: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO bo_states (key, state, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
	`, key, string(raw))
	if err != nil {
		return fmt.Errorf("store: writing state %q: %w", key, err)
	}
	return nil
}

// DeleteState removes the row for key, if any.
func (s *SQLiteStore) DeleteState(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM bo_states WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("store: deleting state %q: %w", key, err)
	}
	return nil
}

// Keys returns every stored state key.
func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM bo_states`)
	if err != nil {
		return nil, fmt.Errorf("store: listing keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("store: scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// GetConfig loads the single stored config row, or (nil, nil) if absent.
func (s *SQLiteStore) GetConfig(ctx context.Context) (*bo.Config, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT config FROM bo_config WHERE id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: reading config: %w", err)
	}
	var cfg bo.Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("store: decoding config: %w", err)
	}
	return &cfg, nil
}

// PutConfig upserts the single config row.
func (s *SQLiteStore) PutConfig(ctx context.Context, cfg *bo.Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("store: encoding config: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO bo_config (id, config) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET config = excluded.config
	`, string(raw))
	if err != nil {
		return fmt.Errorf("store: writing config: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
