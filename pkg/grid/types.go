package grid

// =============================================================================
// Position - Grid Rectangle
// =============================================================================

// Position is a rectangle on the grid, in whole cells.
// A placed widget always has W > 0 and H > 0; a position is valid in
// non-float mode when X >= 0, Y >= 0 and X+W <= columns.
type Position struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
	W int `json:"w" bson:"w"`
	H int `json:"h" bson:"h"`
}

// Collides reports whether two rectangles overlap.
// Rectangles that merely touch edges do not collide.
func Collides(a, b Position) bool {
	return !(a.X >= b.X+b.W || a.X+a.W <= b.X || a.Y >= b.Y+b.H || a.Y+a.H <= b.Y)
}

// =============================================================================
// GridConfig - Board Configuration
// =============================================================================

// GridConfig describes the board the widgets are placed on.
type GridConfig struct {
	// Columns bounds the horizontal extent of every widget.
	Columns int `json:"columns" bson:"columns"`

	// Gap is the visual spacing between cells in display units. The
	// placement math never consults it; renderers do.
	Gap int `json:"gap" bson:"gap"`

	// Float disables compaction and collision elimination. Widgets keep
	// their caller-supplied positions and are only clamped into bounds.
	Float bool `json:"float" bson:"float"`

	// StaticGrid is a frontend hint (it disables drag handles in the
	// dashboard UI). No algorithm in this package consults it; it is
	// carried through so boards round-trip unchanged.
	StaticGrid bool `json:"static_grid" bson:"static_grid"`
}

// =============================================================================
// Widget - Placed Element
// =============================================================================

// Widget is a rectangular element placed on the board.
type Widget struct {
	ID       string   `json:"id" bson:"id"`
	Position Position `json:"position" bson:"position"`

	// Locked widgets contribute to occupancy but are never moved.
	Locked bool `json:"locked" bson:"locked"`

	// Interaction state for the current drag session. Not part of the
	// wire contract and never persisted.
	IsDragged        bool      `json:"-" bson:"-"`
	OriginalPosition *Position `json:"-" bson:"-"`
}
