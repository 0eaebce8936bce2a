package grid

import (
	"reflect"
	"testing"
)

// positionsByID collapses a widget slice to an id -> position map so tests
// can compare results independently of output order.
func positionsByID(widgets []Widget) map[string]Position {
	m := make(map[string]Position, len(widgets))
	for _, w := range widgets {
		m[w.ID] = w.Position
	}
	return m
}

// assertNoOverlap fails if any two widgets overlap.
func assertNoOverlap(t *testing.T, widgets []Widget) {
	t.Helper()
	for i := range widgets {
		for j := i + 1; j < len(widgets); j++ {
			if Collides(widgets[i].Position, widgets[j].Position) {
				t.Errorf("widgets %q and %q overlap: %+v vs %+v",
					widgets[i].ID, widgets[j].ID, widgets[i].Position, widgets[j].Position)
			}
		}
	}
}

func TestCollides(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want bool
	}{
		{name: "identical", a: Position{0, 0, 4, 2}, b: Position{0, 0, 4, 2}, want: true},
		{name: "partial overlap", a: Position{0, 0, 4, 2}, b: Position{2, 1, 4, 2}, want: true},
		{name: "contained", a: Position{0, 0, 6, 6}, b: Position{2, 2, 2, 2}, want: true},
		{name: "touching right edges", a: Position{0, 0, 4, 2}, b: Position{4, 0, 4, 2}, want: false},
		{name: "touching bottom edges", a: Position{0, 0, 4, 2}, b: Position{0, 2, 4, 2}, want: false},
		{name: "apart", a: Position{0, 0, 2, 2}, b: Position{6, 6, 2, 2}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Collides(tt.a, tt.b); got != tt.want {
				t.Errorf("Collides(%+v, %+v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric.
			if got := Collides(tt.b, tt.a); got != tt.want {
				t.Errorf("Collides(%+v, %+v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestOptimize(t *testing.T) {
	cfg := GridConfig{Columns: 12}

	tests := []struct {
		name    string
		widgets []Widget
		cfg     GridConfig
		want    map[string]Position
	}{
		{
			name: "single widget rises to the top",
			widgets: []Widget{
				{ID: "a", Position: Position{X: 0, Y: 5, W: 4, H: 2}},
			},
			cfg:  cfg,
			want: map[string]Position{"a": {X: 0, Y: 0, W: 4, H: 2}},
		},
		{
			name: "blocked by locked widget",
			widgets: []Widget{
				{ID: "lock", Position: Position{X: 0, Y: 0, W: 4, H: 2}, Locked: true},
				{ID: "b", Position: Position{X: 0, Y: 5, W: 4, H: 2}},
			},
			cfg: cfg,
			want: map[string]Position{
				"lock": {X: 0, Y: 0, W: 4, H: 2},
				"b":    {X: 0, Y: 2, W: 4, H: 2},
			},
		},
		{
			name: "stacked column keeps order",
			widgets: []Widget{
				{ID: "bottom", Position: Position{X: 0, Y: 8, W: 4, H: 2}},
				{ID: "top", Position: Position{X: 0, Y: 3, W: 4, H: 2}},
			},
			cfg: cfg,
			want: map[string]Position{
				"top":    {X: 0, Y: 0, W: 4, H: 2},
				"bottom": {X: 0, Y: 2, W: 4, H: 2},
			},
		},
		{
			name: "side by side widgets both rise",
			widgets: []Widget{
				{ID: "left", Position: Position{X: 0, Y: 4, W: 6, H: 2}},
				{ID: "right", Position: Position{X: 6, Y: 7, W: 6, H: 3}},
			},
			cfg: cfg,
			want: map[string]Position{
				"left":  {X: 0, Y: 0, W: 6, H: 2},
				"right": {X: 6, Y: 0, W: 6, H: 3},
			},
		},
		{
			name:    "empty list",
			widgets: nil,
			cfg:     cfg,
			want:    map[string]Position{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Optimize(tt.widgets, tt.cfg)
			if !reflect.DeepEqual(positionsByID(got), tt.want) {
				t.Errorf("Optimize() = %v, want %v", positionsByID(got), tt.want)
			}
			assertNoOverlap(t, got)
		})
	}
}

func TestOptimizeFloatMode(t *testing.T) {
	cfg := GridConfig{Columns: 6, Float: true}

	widgets := []Widget{
		{ID: "c", Position: Position{X: 5, Y: 3, W: 4, H: 2}},
		{ID: "neg", Position: Position{X: -2, Y: -1, W: 2, H: 2}},
		{ID: "ok", Position: Position{X: 1, Y: 9, W: 2, H: 2}},
		{ID: "lock", Position: Position{X: 9, Y: 9, W: 4, H: 2}, Locked: true},
	}

	got := positionsByID(Optimize(widgets, cfg))

	// x clamped to columns-w, y untouched.
	if want := (Position{X: 2, Y: 3, W: 4, H: 2}); got["c"] != want {
		t.Errorf("c = %+v, want %+v", got["c"], want)
	}
	// Negative coordinates clamped to 0.
	if want := (Position{X: 0, Y: 0, W: 2, H: 2}); got["neg"] != want {
		t.Errorf("neg = %+v, want %+v", got["neg"], want)
	}
	// In-bounds widget keeps its position: float mode never compacts.
	if want := (Position{X: 1, Y: 9, W: 2, H: 2}); got["ok"] != want {
		t.Errorf("ok = %+v, want %+v", got["ok"], want)
	}
	// Locked widgets are not even clamped.
	if want := (Position{X: 9, Y: 9, W: 4, H: 2}); got["lock"] != want {
		t.Errorf("lock = %+v, want %+v", got["lock"], want)
	}
}

func TestOptimizeIdempotent(t *testing.T) {
	cfg := GridConfig{Columns: 12}
	widgets := []Widget{
		{ID: "a", Position: Position{X: 0, Y: 7, W: 3, H: 2}},
		{ID: "b", Position: Position{X: 3, Y: 2, W: 5, H: 3}},
		{ID: "c", Position: Position{X: 8, Y: 2, W: 4, H: 1}},
		{ID: "lock", Position: Position{X: 0, Y: 1, W: 2, H: 2}, Locked: true},
		{ID: "d", Position: Position{X: 2, Y: 12, W: 10, H: 2}},
	}

	once := Optimize(widgets, cfg)
	twice := Optimize(once, cfg)

	// Compare by id: the second pass may reorder the slice (it sorts by the
	// already-compacted positions) but no position may change.
	if !reflect.DeepEqual(positionsByID(once), positionsByID(twice)) {
		t.Errorf("second pass changed layout:\nonce  = %v\ntwice = %v",
			positionsByID(once), positionsByID(twice))
	}
}

func TestOptimizeDoesNotMutateInput(t *testing.T) {
	widgets := []Widget{
		{ID: "a", Position: Position{X: 0, Y: 5, W: 4, H: 2}},
	}
	Optimize(widgets, GridConfig{Columns: 12})

	if widgets[0].Position.Y != 5 {
		t.Errorf("input mutated: y = %d, want 5", widgets[0].Position.Y)
	}
}

func TestOptimizeStableTieBreak(t *testing.T) {
	// Three 1x1 widgets share (y, x) sort keys pairwise distinct only in
	// input order; the stable sort must keep that order, so the earliest
	// widget owns the contested column.
	cfg := GridConfig{Columns: 2}
	widgets := []Widget{
		{ID: "first", Position: Position{X: 0, Y: 3, W: 2, H: 1}},
		{ID: "second", Position: Position{X: 0, Y: 3, W: 2, H: 1}},
	}

	got := positionsByID(Optimize(widgets, cfg))

	if want := (Position{X: 0, Y: 0, W: 2, H: 1}); got["first"] != want {
		t.Errorf("first = %+v, want %+v", got["first"], want)
	}
	if want := (Position{X: 0, Y: 1, W: 2, H: 1}); got["second"] != want {
		t.Errorf("second = %+v, want %+v", got["second"], want)
	}
}

func TestResolveConflicts(t *testing.T) {
	cfg := GridConfig{Columns: 12}

	t.Run("overlapping widget is pushed below the drag", func(t *testing.T) {
		widgets := []Widget{
			{ID: "d", Position: Position{X: 0, Y: 0, W: 4, H: 2}},
			{ID: "e", Position: Position{X: 0, Y: 0, W: 4, H: 2}},
		}

		got := positionsByID(ResolveConflicts(widgets, cfg, "d"))

		if want := (Position{X: 0, Y: 0, W: 4, H: 2}); got["d"] != want {
			t.Errorf("dragged widget moved: %+v, want %+v", got["d"], want)
		}
		if want := (Position{X: 0, Y: 2, W: 4, H: 2}); got["e"] != want {
			t.Errorf("e = %+v, want %+v", got["e"], want)
		}
	})

	t.Run("non-colliding widgets compact around the drag", func(t *testing.T) {
		widgets := []Widget{
			{ID: "d", Position: Position{X: 0, Y: 2, W: 4, H: 2}},
			{ID: "far", Position: Position{X: 6, Y: 9, W: 4, H: 2}},
		}

		got := positionsByID(ResolveConflicts(widgets, cfg, "d"))

		// far doesn't collide with the drag, so compaction pulls it to the top.
		if want := (Position{X: 6, Y: 0, W: 4, H: 2}); got["far"] != want {
			t.Errorf("far = %+v, want %+v", got["far"], want)
		}
		if want := (Position{X: 0, Y: 2, W: 4, H: 2}); got["d"] != want {
			t.Errorf("dragged widget moved: %+v", got["d"])
		}
	})

	t.Run("locked widgets never move", func(t *testing.T) {
		widgets := []Widget{
			{ID: "d", Position: Position{X: 0, Y: 0, W: 4, H: 4}},
			{ID: "lock", Position: Position{X: 0, Y: 1, W: 4, H: 2}, Locked: true},
		}

		got := positionsByID(ResolveConflicts(widgets, cfg, "d"))

		if want := (Position{X: 0, Y: 1, W: 4, H: 2}); got["lock"] != want {
			t.Errorf("locked widget moved: %+v, want %+v", got["lock"], want)
		}
	})

	t.Run("push is monotonic", func(t *testing.T) {
		// A widget already below the dragged one stays where compaction
		// settles it; the push phase never pulls anything up.
		widgets := []Widget{
			{ID: "d", Position: Position{X: 0, Y: 4, W: 4, H: 2}},
			{ID: "below", Position: Position{X: 0, Y: 5, W: 4, H: 2}},
		}

		got := positionsByID(ResolveConflicts(widgets, cfg, "d"))

		// below collides with d (rows 5 vs 4-5), so it is pushed to
		// y=6, then compaction pulls it to the first free row above.
		if want := (Position{X: 0, Y: 6, W: 4, H: 2}); got["below"] != want {
			t.Errorf("below = %+v, want %+v", got["below"], want)
		}
	})

	t.Run("missing drag id falls back to plain compaction", func(t *testing.T) {
		widgets := []Widget{
			{ID: "a", Position: Position{X: 0, Y: 5, W: 4, H: 2}},
			{ID: "b", Position: Position{X: 4, Y: 3, W: 4, H: 2}},
		}

		resolved := ResolveConflicts(widgets, cfg, "nonexistent")
		optimized := Optimize(widgets, cfg)

		if !reflect.DeepEqual(resolved, optimized) {
			t.Errorf("fallback differs from Optimize:\nresolved  = %+v\noptimized = %+v", resolved, optimized)
		}
	})

	t.Run("marks the dragged widget", func(t *testing.T) {
		widgets := []Widget{
			{ID: "d", Position: Position{X: 0, Y: 0, W: 2, H: 2}},
		}

		got := ResolveConflicts(widgets, cfg, "d")

		if !got[0].IsDragged {
			t.Error("dragged widget not flagged IsDragged")
		}
		if widgets[0].IsDragged {
			t.Error("input widget mutated")
		}
	})
}

func TestFindBestPosition(t *testing.T) {
	tests := []struct {
		name    string
		widgets []Widget
		size    Position
		cfg     GridConfig
		want    Position
	}{
		{
			name: "first free slot on the top row",
			widgets: []Widget{
				{ID: "a", Position: Position{X: 0, Y: 0, W: 4, H: 2}},
			},
			size: Position{W: 4, H: 2},
			cfg:  GridConfig{Columns: 8},
			want: Position{X: 4, Y: 0, W: 4, H: 2},
		},
		{
			name: "locked widgets occupy too",
			widgets: []Widget{
				{ID: "a", Position: Position{X: 0, Y: 0, W: 8, H: 1}, Locked: true},
			},
			size: Position{W: 2, H: 1},
			cfg:  GridConfig{Columns: 8},
			want: Position{X: 0, Y: 1, W: 2, H: 1},
		},
		{
			name: "fills a gap between widgets",
			widgets: []Widget{
				{ID: "a", Position: Position{X: 0, Y: 0, W: 3, H: 2}},
				{ID: "b", Position: Position{X: 6, Y: 0, W: 2, H: 2}},
			},
			size: Position{W: 3, H: 2},
			cfg:  GridConfig{Columns: 8},
			want: Position{X: 3, Y: 0, W: 3, H: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindBestPosition(tt.widgets, Widget{Position: tt.size}, tt.cfg)
			if got != tt.want {
				t.Errorf("FindBestPosition() = %+v, want %+v", got, tt.want)
			}

			// The returned position is always valid and free.
			if got.X < 0 || got.X+got.W > tt.cfg.Columns {
				t.Errorf("position out of bounds: %+v", got)
			}
			for _, w := range tt.widgets {
				if Collides(got, w.Position) {
					t.Errorf("position %+v overlaps widget %q", got, w.ID)
				}
			}
		})
	}
}

func TestFindBestPositionSearchCap(t *testing.T) {
	// A full board forces the sentinel fallback; the engine-level override
	// controls both the scan depth and the sentinel row.
	cfg := GridConfig{Columns: 2}
	widgets := []Widget{
		{ID: "tall", Position: Position{X: 0, Y: 0, W: 2, H: 100}},
	}
	size := Widget{Position: Position{W: 2, H: 1}}

	e := Engine{MaxSearchRows: 10}
	if got, want := e.FindBestPosition(widgets, size, cfg), (Position{X: 0, Y: 10, W: 2, H: 1}); got != want {
		t.Errorf("capped search = %+v, want sentinel %+v", got, want)
	}

	// Default cap searches deep enough to find the real slot.
	if got, want := FindBestPosition(widgets, size, cfg), (Position{X: 0, Y: 100, W: 2, H: 1}); got != want {
		t.Errorf("default search = %+v, want %+v", got, want)
	}
}
