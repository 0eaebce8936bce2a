package store

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/tessella/gridlock/pkg/board"
	"github.com/tessella/gridlock/pkg/grid"
)

func testBoard(name string) *board.Board {
	return &board.Board{
		Name: name,
		Widgets: []grid.Widget{
			{ID: "a", Position: grid.Position{X: 0, Y: 0, W: 4, H: 2}},
			{ID: "b", Position: grid.Position{X: 4, Y: 0, W: 4, H: 2}, Locked: true},
		},
		Config: grid.GridConfig{Columns: 12, Gap: 8},
	}
}

// storeFactories builds the backends that need no external services.
func storeFactories(t *testing.T) map[string]func() Store {
	t.Helper()
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"file": func() Store {
			s, err := NewFileStore(t.TempDir())
			if err != nil {
				t.Fatalf("NewFileStore: %v", err)
			}
			return s
		},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory()
			defer s.Close()

			want := testBoard("dashboard")
			if err := s.Save(ctx, want); err != nil {
				t.Fatalf("Save: %v", err)
			}

			got, err := s.Load(ctx, "dashboard")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Name != want.Name {
				t.Errorf("Name = %q, want %q", got.Name, want.Name)
			}
			if len(got.Widgets) != len(want.Widgets) {
				t.Fatalf("widgets = %d, want %d", len(got.Widgets), len(want.Widgets))
			}
			if got.Widgets[1].ID != "b" || !got.Widgets[1].Locked {
				t.Errorf("widget b = %+v, want locked widget b", got.Widgets[1])
			}
			if got.Config != want.Config {
				t.Errorf("Config = %+v, want %+v", got.Config, want.Config)
			}
		})
	}
}

func TestStoreLoadMissing(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory()
			defer s.Close()

			_, err := s.Load(context.Background(), "nope")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStoreOverwrite(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory()
			defer s.Close()

			b := testBoard("dashboard")
			if err := s.Save(ctx, b); err != nil {
				t.Fatalf("Save: %v", err)
			}

			b.Widgets = b.Widgets[:1]
			if err := s.Save(ctx, b); err != nil {
				t.Fatalf("Save (overwrite): %v", err)
			}

			got, err := s.Load(ctx, "dashboard")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(got.Widgets) != 1 {
				t.Errorf("widgets after overwrite = %d, want 1", len(got.Widgets))
			}
		})
	}
}

func TestStoreListAndDelete(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory()
			defer s.Close()

			for _, n := range []string{"alpha", "beta"} {
				if err := s.Save(ctx, testBoard(n)); err != nil {
					t.Fatalf("Save %s: %v", n, err)
				}
			}

			names, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			slices.Sort(names)
			if !slices.Equal(names, []string{"alpha", "beta"}) {
				t.Errorf("List = %v, want [alpha beta]", names)
			}

			if err := s.Delete(ctx, "alpha"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Load(ctx, "alpha"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Load after delete error = %v, want ErrNotFound", err)
			}

			// Deleting a missing board is a no-op.
			if err := s.Delete(ctx, "alpha"); err != nil {
				t.Errorf("Delete(missing) = %v, want nil", err)
			}
		})
	}
}

func TestFileStoreRejectsUnsafeNames(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	ctx := context.Background()
	for _, name := range []string{"", "../escape", "a/b"} {
		if err := s.Save(ctx, &board.Board{Name: name}); err == nil {
			t.Errorf("Save(%q) = nil, want error", name)
		}
		if _, err := s.Load(ctx, name); err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("Load(%q) = %v, want validation error", name, err)
		}
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), "etcd", ""); err == nil {
		t.Error("Open(etcd) = nil, want error")
	}
}
