package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"nexus-daily/model"
)

// SQLiteStore keeps the state as a single JSON value in a key-value table.
type SQLiteStore struct {
	conn *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{conn: conn}
	if err := s.initSchema(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() (model.AppState, bool, error) {
	var value string
	err := s.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, Key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewState(), false, nil
	}
	if err != nil {
		return model.AppState{}, false, fmt.Errorf("failed to read state: %w", err)
	}

	state, err := decodeState([]byte(value))
	if err != nil {
		return model.AppState{}, false, fmt.Errorf("failed to decode state: %w", err)
	}
	return state, true, nil
}

func (s *SQLiteStore) Save(state model.AppState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.conn.Exec(query, Key, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
