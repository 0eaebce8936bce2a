package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tessella/gridlock/pkg/board"
	"github.com/tessella/gridlock/pkg/observability"
)

// SQLiteStore persists boards to an embedded sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	// busy_timeout waits up to 10 seconds for locks to clear
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=10000")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS boards (
		name       TEXT PRIMARY KEY,
		data       BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create boards table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load retrieves a board by name.
func (s *SQLiteStore) Load(ctx context.Context, name string) (*board.Board, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM boards WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		observability.Store().OnMiss(ctx, BackendSQLite, name)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	observability.Store().OnLoad(ctx, BackendSQLite, name)
	return board.Unmarshal(data)
}

// Save stores a board under its name, overwriting any previous version.
func (s *SQLiteStore) Save(ctx context.Context, b *board.Board) error {
	data, err := board.Marshal(b)
	if err != nil {
		return err
	}
	ts := time.Now().Unix()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO boards(name, data, updated_at) VALUES(?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = ?, updated_at = ?`,
		b.Name, data, ts, data, ts)
	if err != nil {
		return err
	}
	observability.Store().OnSave(ctx, BackendSQLite, b.Name, len(b.Widgets))
	return nil
}

// List returns all stored board names, ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM boards ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a board. Deleting a missing board is a no-op.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE name = ?`, name)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
