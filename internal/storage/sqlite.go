package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	// Registers the pure-Go sqlite driver with database/sql under the
	// name "sqlite". No cgo, so the CLI cross-compiles cleanly.
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on an embedded sqlite database.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens (creating if necessary) the state database at path.
// Use ":memory:" in tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("storage: creating state directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: opening state database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: pinging state database: %w", err)
	}

	// The store is touched by at most one actor at a time; a single
	// connection keeps ":memory:" databases coherent in tests as well.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS local_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: creating local_state table: %w", err)
	}

	return &SQLiteStore{conn: conn}, nil
}

// Credential returns the stored bearer credential, and whether one exists.
func (s *SQLiteStore) Credential() (string, bool, error) {
	var value string
	err := s.conn.QueryRow(
		"SELECT value FROM local_state WHERE key = ?", CredentialKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: reading credential: %w", err)
	}
	return value, true, nil
}

// SetCredential stores the bearer credential, replacing any previous value.
func (s *SQLiteStore) SetCredential(credential string) error {
	_, err := s.conn.Exec(
		`INSERT INTO local_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		CredentialKey, credential,
	)
	if err != nil {
		return fmt.Errorf("storage: writing credential: %w", err)
	}
	return nil
}

// ClearCredential removes the stored credential.
func (s *SQLiteStore) ClearCredential() error {
	if _, err := s.conn.Exec(
		"DELETE FROM local_state WHERE key = ?", CredentialKey,
	); err != nil {
		return fmt.Errorf("storage: clearing credential: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
