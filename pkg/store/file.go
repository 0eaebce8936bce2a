package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/tessella/gridlock/pkg/board"
	"github.com/tessella/gridlock/pkg/errors"
	"github.com/tessella/gridlock/pkg/observability"
)

// FileStore keeps each board as a JSON file in a directory, named
// <board>.json. Board names are validated before touching the filesystem so
// a name can never escape the directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory boards are stored in.
func (s *FileStore) Dir() string { return s.dir }

// Load retrieves a board by name.
func (s *FileStore) Load(ctx context.Context, name string) (*board.Board, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		observability.Store().OnMiss(ctx, BackendFile, name)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	observability.Store().OnLoad(ctx, BackendFile, name)
	return board.Unmarshal(data)
}

// Save stores a board under its name, overwriting any previous version.
func (s *FileStore) Save(ctx context.Context, b *board.Board) error {
	path, err := s.path(b.Name)
	if err != nil {
		return err
	}
	data, err := board.Marshal(b)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	observability.Store().OnSave(ctx, BackendFile, b.Name, len(b.Widgets))
	return nil
}

// List returns the names of all stored boards.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names, nil
}

// Delete removes a board file. Deleting a missing board is a no-op.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// path converts a board name to a file path after validating it.
func (s *FileStore) path(name string) (string, error) {
	if err := errors.ValidateBoardName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name+".json"), nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
