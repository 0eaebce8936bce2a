package grid

// cell is one occupied unit of the grid.
type cell struct{ x, y int }

// occupiedGrid tracks which cells are covered by already-placed widgets.
// It is rebuilt from scratch on every operation; no widget owns cells
// across calls.
type occupiedGrid struct {
	cells   map[cell]struct{}
	columns int
}

func newOccupiedGrid(columns int) *occupiedGrid {
	return &occupiedGrid{
		cells:   make(map[cell]struct{}),
		columns: columns,
	}
}

// canPlaceAt reports whether pos fits on the board without touching any
// occupied cell. Positions outside the horizontal bounds or above row 0
// never fit.
func (g *occupiedGrid) canPlaceAt(pos Position) bool {
	if pos.X < 0 || pos.Y < 0 || pos.X+pos.W > g.columns {
		return false
	}
	for y := pos.Y; y < pos.Y+pos.H; y++ {
		for x := pos.X; x < pos.X+pos.W; x++ {
			if _, ok := g.cells[cell{x, y}]; ok {
				return false
			}
		}
	}
	return true
}

// registerOccupied marks every cell of pos as taken. Registering a cell
// twice is harmless; the backing store is a set.
func (g *occupiedGrid) registerOccupied(pos Position) {
	for y := pos.Y; y < pos.Y+pos.H; y++ {
		for x := pos.X; x < pos.X+pos.W; x++ {
			g.cells[cell{x, y}] = struct{}{}
		}
	}
}

// findHighestPosition pulls pos toward row 0, one row at a time, keeping
// X, W and H fixed. It stops at the first blocked row or at Y == 0.
func (g *occupiedGrid) findHighestPosition(pos Position) Position {
	for pos.Y > 0 {
		test := pos
		test.Y--
		if !g.canPlaceAt(test) {
			break
		}
		pos.Y--
	}
	return pos
}

// findBestPosition scans rows top to bottom, columns left to right, and
// returns the first free rectangle of the given size. If no slot exists
// within maxRows rows it returns the sentinel position {0, maxRows, w, h};
// it never fails.
func (g *occupiedGrid) findBestPosition(size Position, maxRows int) Position {
	for y := 0; y < maxRows; y++ {
		for x := 0; x <= g.columns-size.W; x++ {
			test := Position{X: x, Y: y, W: size.W, H: size.H}
			if g.canPlaceAt(test) {
				return test
			}
		}
	}
	return Position{X: 0, Y: maxRows, W: size.W, H: size.H}
}
