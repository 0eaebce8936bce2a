// Package store persists named boards across gridlock invocations.
//
// This package defines the Store interface and implementations for different
// backends:
//   - memory: In-memory storage for development/testing
//   - file: JSON-file-per-board directory for CLI usage
//   - sqlite: Embedded database for single-host deployments
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage, boards stored as native documents
//
// The placement engine never touches storage; stores hold opaque boards and
// the caller runs operations between Load and Save.
//
// # Usage
//
//	st, err := store.Open(ctx, store.BackendFile, "~/.local/share/gridlock/boards")
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	b, err := st.Load(ctx, "dashboard")
//	if errors.Is(err, store.ErrNotFound) {
//	    // First run - start with an empty board
//	}
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/tessella/gridlock/pkg/board"
)

// ErrNotFound is returned when a requested board does not exist.
var ErrNotFound = errors.New("board not found")

// Supported backend names, as used in config files and --store flags.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Store persists boards under their names.
//
// Load returns [ErrNotFound] (possibly wrapped) when no board has the given
// name. Save overwrites any existing board with the same name. Delete of a
// missing board is a no-op. Implementations are safe for concurrent use.
type Store interface {
	Load(ctx context.Context, name string) (*board.Board, error)
	Save(ctx context.Context, b *board.Board) error
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// Open creates a store for the given backend.
//
// The dsn is backend-specific: a directory for "file", a database path for
// "sqlite", a redis address ("host:port") for "redis", a connection URI for
// "mongo"; "memory" ignores it.
func Open(ctx context.Context, backend, dsn string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(dsn)
	case BackendSQLite:
		return NewSQLiteStore(dsn)
	case BackendRedis:
		return NewRedisStore(ctx, dsn)
	case BackendMongo:
		return NewMongoStore(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
