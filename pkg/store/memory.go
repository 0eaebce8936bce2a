package store

import (
	"context"
	"sync"

	"github.com/tessella/gridlock/pkg/board"
	"github.com/tessella/gridlock/pkg/observability"
)

// MemoryStore keeps boards in process memory. Useful for tests and for the
// serve command in development; nothing survives a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	boards map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{boards: make(map[string][]byte)}
}

// Load retrieves a board by name.
func (s *MemoryStore) Load(ctx context.Context, name string) (*board.Board, error) {
	s.mu.RLock()
	data, ok := s.boards[name]
	s.mu.RUnlock()
	if !ok {
		observability.Store().OnMiss(ctx, BackendMemory, name)
		return nil, ErrNotFound
	}
	observability.Store().OnLoad(ctx, BackendMemory, name)
	return board.Unmarshal(data)
}

// Save stores a board under its name.
func (s *MemoryStore) Save(ctx context.Context, b *board.Board) error {
	data, err := board.Marshal(b)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.boards[b.Name] = data
	s.mu.Unlock()
	observability.Store().OnSave(ctx, BackendMemory, b.Name, len(b.Widgets))
	return nil
}

// List returns all stored board names in unspecified order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.boards))
	for name := range s.boards {
		names = append(names, name)
	}
	return names, nil
}

// Delete removes a board. Deleting a missing board is a no-op.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	delete(s.boards, name)
	s.mu.Unlock()
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
