package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessella/gridlock/pkg/board"
	"github.com/tessella/gridlock/pkg/grid"
)

func previewTestBoard() *board.Board {
	return &board.Board{
		Name: "preview",
		Widgets: []grid.Widget{
			{ID: "a", Position: grid.Position{X: 0, Y: 0, W: 4, H: 2}},
			{ID: "lock", Position: grid.Position{X: 4, Y: 0, W: 4, H: 2}, Locked: true},
			{ID: "b", Position: grid.Position{X: 0, Y: 2, W: 4, H: 2}},
		},
		Config: grid.GridConfig{Columns: 8},
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestPreviewSelectionSkipsLocked(t *testing.T) {
	m := newPreviewModel(previewTestBoard(), "")

	if m.cursor != 0 {
		t.Fatalf("initial cursor = %d, want 0", m.cursor)
	}

	next, _ := m.Update(keyPress("tab"))
	m = next.(previewModel)
	if m.cursor != 2 {
		t.Errorf("cursor after tab = %d, want 2 (locked widget skipped)", m.cursor)
	}

	next, _ = m.Update(keyPress("tab"))
	m = next.(previewModel)
	if m.cursor != 0 {
		t.Errorf("cursor after second tab = %d, want 0 (wrapped)", m.cursor)
	}
}

func TestPreviewDragReflows(t *testing.T) {
	m := newPreviewModel(previewTestBoard(), "")

	// Drag "a" one row down onto "b": b must yield, a holds the new spot.
	next, _ := m.Update(keyPress("down"))
	m = next.(previewModel)

	a := m.board.Widget("a")
	b := m.board.Widget("b")
	if a.Position.Y != 1 {
		t.Errorf("a.Y = %d, want 1 (dragged position held)", a.Position.Y)
	}
	if b.Position.Y != 3 {
		t.Errorf("b.Y = %d, want 3 (pushed below the drag)", b.Position.Y)
	}
	if lock := m.board.Widget("lock"); lock.Position.Y != 0 {
		t.Errorf("locked widget moved to y=%d", lock.Position.Y)
	}
}

func TestPreviewDragStopsAtEdges(t *testing.T) {
	m := newPreviewModel(previewTestBoard(), "")

	// "a" is 4 wide at x=0 on an 8-column grid; one step right is legal,
	// a second would collide with the grid edge only at x=5.
	next, _ := m.Update(keyPress("right"))
	m = next.(previewModel)
	if a := m.board.Widget("a"); a.Position.X != 1 {
		t.Errorf("a.X = %d, want 1", a.Position.X)
	}

	m.board.Widgets[m.cursor].Position.X = 4
	next, _ = m.Update(keyPress("right"))
	m = next.(previewModel)
	if a := m.board.Widget("a"); a.Position.X != 4 {
		t.Errorf("a.X = %d, drag past the right edge should be ignored", a.Position.X)
	}
}

func TestPreviewRestore(t *testing.T) {
	m := newPreviewModel(previewTestBoard(), "")

	// Drag "a" down twice, then restore to the pre-drag position.
	for i := 0; i < 2; i++ {
		next, _ := m.Update(keyPress("down"))
		m = next.(previewModel)
	}
	if a := m.board.Widget("a"); a.Position.Y != 2 {
		t.Fatalf("a.Y after drags = %d, want 2", a.Position.Y)
	}

	next, _ := m.Update(keyPress("r"))
	m = next.(previewModel)

	a := m.board.Widget("a")
	if a.Position.Y != 0 {
		t.Errorf("a.Y after restore = %d, want 0", a.Position.Y)
	}
	if a.OriginalPosition != nil {
		t.Error("restore should clear the recorded drag origin")
	}

	// Restore with no drag in progress is a no-op.
	next, _ = m.Update(keyPress("r"))
	m = next.(previewModel)
	if got := m.board.Widget("a").Position.Y; got != 0 {
		t.Errorf("a.Y after second restore = %d, want 0", got)
	}
}

func TestPreviewCompactKey(t *testing.T) {
	b := previewTestBoard()
	b.Widgets[2].Position.Y = 6 // float b down, then compact
	m := newPreviewModel(b, "")

	next, _ := m.Update(keyPress("o"))
	m = next.(previewModel)

	if got := m.board.Widget("b").Position.Y; got != 2 {
		t.Errorf("b.Y after compact = %d, want 2", got)
	}
}

func TestPreviewView(t *testing.T) {
	m := newPreviewModel(previewTestBoard(), "")

	view := m.View()
	if !strings.Contains(view, "preview") {
		t.Error("view should contain the board name")
	}
	if !strings.Contains(view, "aa") {
		t.Error("view should draw widget a's cells")
	}
	if !strings.Contains(view, "▸ a") {
		t.Error("view should show the selected widget")
	}
}
