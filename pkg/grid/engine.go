package grid

import "slices"

// DefaultMaxSearchRows bounds the row-major scan in [FindBestPosition].
// When no free slot exists within this many rows, the finder returns the
// sentinel position {0, maxRows, w, h} instead of failing.
const DefaultMaxSearchRows = 1000

// =============================================================================
// Engine
// =============================================================================

// Engine runs placement operations. The zero value is ready to use and
// applies [DefaultMaxSearchRows]; construct an Engine only to override the
// search bound.
type Engine struct {
	// MaxSearchRows caps the best-position scan. Zero or negative means
	// DefaultMaxSearchRows.
	MaxSearchRows int
}

func (e Engine) maxSearchRows() int {
	if e.MaxSearchRows > 0 {
		return e.MaxSearchRows
	}
	return DefaultMaxSearchRows
}

// Optimize compacts the layout.
//
// In float mode every unlocked widget is clamped into horizontal bounds and
// onto the board (Y >= 0); nothing else moves and collisions are preserved.
//
// Otherwise widgets are processed in (Y, X) ascending order - stable, so
// equal keys keep their input order - and every unlocked widget is pulled as
// far toward row 0 as locked widgets and previously placed widgets allow.
// Locked widgets never move.
//
// The input slice is not modified; the returned slice is in (Y, X) order of
// the input positions.
func (e Engine) Optimize(widgets []Widget, cfg GridConfig) []Widget {
	out := slices.Clone(widgets)

	if cfg.Float {
		for i := range out {
			if out[i].Locked {
				continue
			}
			p := &out[i].Position
			p.X = min(max(p.X, 0), cfg.Columns-p.W)
			p.Y = max(p.Y, 0)
		}
		return out
	}

	slices.SortStableFunc(out, func(a, b Widget) int {
		if a.Position.Y != b.Position.Y {
			return a.Position.Y - b.Position.Y
		}
		return a.Position.X - b.Position.X
	})

	occupied := newOccupiedGrid(cfg.Columns)
	for _, w := range out {
		if w.Locked {
			occupied.registerOccupied(w.Position)
		}
	}
	for i := range out {
		if out[i].Locked {
			continue
		}
		out[i].Position = occupied.findHighestPosition(out[i].Position)
		occupied.registerOccupied(out[i].Position)
	}

	return out
}

// ResolveConflicts reflows the layout around a widget that is being dragged.
// The dragged widget's position is caller-controlled truth and is never
// modified.
//
// The reflow runs in two phases. Push: every unlocked widget whose rectangle
// overlaps the dragged one is moved to the row just below it, but only
// downward - a widget already below keeps its row. Compact: the remaining
// widgets are pulled toward row 0 against a grid seeded with the dragged
// footprint and all locked widgets.
//
// When draggedID does not name any widget, ResolveConflicts degrades to a
// plain [Engine.Optimize] over the full list. The returned slice keeps the
// input order.
func (e Engine) ResolveConflicts(widgets []Widget, cfg GridConfig, draggedID string) []Widget {
	draggedIdx := slices.IndexFunc(widgets, func(w Widget) bool { return w.ID == draggedID })
	if draggedIdx < 0 {
		return e.Optimize(widgets, cfg)
	}

	out := slices.Clone(widgets)
	out[draggedIdx].IsDragged = true
	draggedPos := out[draggedIdx].Position

	movable := movableIndices(out, draggedIdx)

	// Push phase: make room beneath the dragged widget.
	for _, i := range movable {
		if !Collides(out[i].Position, draggedPos) {
			continue
		}
		if newY := draggedPos.Y + draggedPos.H; newY > out[i].Position.Y {
			out[i].Position.Y = newY
		}
	}

	// Compact phase: settle everything else, treating the dragged
	// footprint as immovable.
	occupied := newOccupiedGrid(cfg.Columns)
	occupied.registerOccupied(draggedPos)
	for _, w := range out {
		if w.Locked {
			occupied.registerOccupied(w.Position)
		}
	}
	for _, i := range movableIndices(out, draggedIdx) {
		out[i].Position = occupied.findHighestPosition(out[i].Position)
		occupied.registerOccupied(out[i].Position)
	}

	return out
}

// FindBestPosition returns the first free rectangle that fits a new widget
// of newWidget's size, scanning rows top to bottom and columns left to
// right. Every existing widget occupies its cells, locked or not; nothing is
// moved. The result never overlaps an existing widget and satisfies X >= 0,
// X+W <= columns, with the sentinel fallback documented on
// [DefaultMaxSearchRows].
func (e Engine) FindBestPosition(widgets []Widget, newWidget Widget, cfg GridConfig) Position {
	occupied := newOccupiedGrid(cfg.Columns)
	for _, w := range widgets {
		occupied.registerOccupied(w.Position)
	}
	return occupied.findBestPosition(newWidget.Position, e.maxSearchRows())
}

// movableIndices returns the indices of unlocked, non-dragged widgets in
// ascending Y order. The sort is stable.
func movableIndices(widgets []Widget, draggedIdx int) []int {
	idx := make([]int, 0, len(widgets))
	for i := range widgets {
		if i != draggedIdx && !widgets[i].Locked {
			idx = append(idx, i)
		}
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return widgets[a].Position.Y - widgets[b].Position.Y
	})
	return idx
}

// =============================================================================
// Package-Level Convenience
// =============================================================================

// Optimize runs [Engine.Optimize] with default settings.
func Optimize(widgets []Widget, cfg GridConfig) []Widget {
	return Engine{}.Optimize(widgets, cfg)
}

// ResolveConflicts runs [Engine.ResolveConflicts] with default settings.
func ResolveConflicts(widgets []Widget, cfg GridConfig, draggedID string) []Widget {
	return Engine{}.ResolveConflicts(widgets, cfg, draggedID)
}

// FindBestPosition runs [Engine.FindBestPosition] with default settings.
func FindBestPosition(widgets []Widget, newWidget Widget, cfg GridConfig) Position {
	return Engine{}.FindBestPosition(widgets, newWidget, cfg)
}
