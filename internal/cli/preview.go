package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tessella/gridlock/pkg/board"
)

// previewCommand creates the preview command for interactive board editing.
func (c *CLI) previewCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "preview [board.json]",
		Short: "Preview and drag widgets in the terminal",
		Long: `Preview a board in the terminal and drag widgets around.

Tab cycles through widgets; the arrow keys (or hjkl) drag the selected
widget, reflowing the rest of the board live the way a dashboard would
during a drag. Locked widgets cannot be selected.

Keys:
  tab / shift+tab   select next / previous widget
  arrows, hjkl      drag the selected widget
  r                 return the selected widget to where its drag began
  o                 compact the board
  w                 write the board (requires --output)
  q                 quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write the board to on 'w'")

	return cmd
}

// runPreview loads the board and runs the bubbletea program.
func (c *CLI) runPreview(ctx context.Context, input, output string) error {
	b, err := readBoardArg(input)
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}

	model := newPreviewModel(b, output)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	if m, ok := final.(previewModel); ok && m.saveErr != nil {
		return m.saveErr
	}
	return nil
}

// =============================================================================
// previewModel - Interactive board preview
// =============================================================================

// Preview styles
var (
	previewSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewWidgetStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	previewLockedStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	previewEmptyStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// previewModel is the bubbletea model for the interactive board preview.
type previewModel struct {
	board    *board.Board
	cursor   int // index into board.Widgets; -1 when the board is empty
	output   string
	status   string
	saveErr  error
	quitting bool
}

// newPreviewModel creates a preview model with the first unlocked widget
// selected.
func newPreviewModel(b *board.Board, output string) previewModel {
	m := previewModel{board: b, cursor: -1, output: output}
	m.cursor = m.nextUnlocked(-1, +1)
	return m
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

// nextUnlocked returns the index of the next unlocked widget from start in
// the given direction, or -1 when the board has none.
func (m previewModel) nextUnlocked(start, dir int) int {
	n := len(m.board.Widgets)
	for i := 1; i <= n; i++ {
		idx := ((start+dir*i)%n + n) % n
		if !m.board.Widgets[idx].Locked {
			return idx
		}
	}
	return -1
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.cursor = m.nextUnlocked(m.cursor, +1)
	case "shift+tab":
		m.cursor = m.nextUnlocked(m.cursor, -1)

	case "up", "k":
		m.drag(0, -1)
	case "down", "j":
		m.drag(0, +1)
	case "left", "h":
		m.drag(-1, 0)
	case "right", "l":
		m.drag(+1, 0)

	case "r":
		m.restore()

	case "o":
		m.board.Optimize()
		m.status = "compacted"

	case "w":
		if m.output == "" {
			m.status = "no --output set"
			break
		}
		if err := board.WriteBoardFile(m.board, m.output); err != nil {
			m.saveErr = err
			m.quitting = true
			return m, tea.Quit
		}
		m.status = "wrote " + m.output
	}

	return m, nil
}

// drag moves the selected widget by (dx, dy) and reflows the board around
// it, exactly like a pointer drag in a dashboard.
func (m *previewModel) drag(dx, dy int) {
	if m.cursor < 0 || m.cursor >= len(m.board.Widgets) {
		return
	}
	w := &m.board.Widgets[m.cursor]
	id := w.ID

	nx := w.Position.X + dx
	ny := w.Position.Y + dy
	if nx < 0 || nx+w.Position.W > m.board.Config.Columns || ny < 0 {
		return
	}
	if w.OriginalPosition == nil {
		orig := w.Position
		w.OriginalPosition = &orig
	}
	w.Position.X = nx
	w.Position.Y = ny

	m.board.Resolve(id)
	// Resolve preserves order but the selection index is re-derived by id so
	// a future reordering change cannot silently detach the cursor.
	for i := range m.board.Widgets {
		if m.board.Widgets[i].ID == id {
			m.cursor = i
			break
		}
	}
	m.status = fmt.Sprintf("%s at (%d, %d)", id, nx, ny)
}

// restore puts the selected widget back where its drag began and reflows.
func (m *previewModel) restore() {
	if m.cursor < 0 || m.cursor >= len(m.board.Widgets) {
		return
	}
	w := &m.board.Widgets[m.cursor]
	if w.OriginalPosition == nil {
		return
	}
	w.Position = *w.OriginalPosition
	w.OriginalPosition = nil

	m.board.Resolve(w.ID)
	m.status = fmt.Sprintf("%s restored to (%d, %d)", w.ID, w.Position.X, w.Position.Y)
}

func (m previewModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := m.board.Name
	if title == "" {
		title = "board"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(previewEmptyStyle.Render("tab select  arrows drag  r restore  o compact  w write  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.renderGrid())
	b.WriteString("\n")

	if m.cursor >= 0 && m.cursor < len(m.board.Widgets) {
		w := m.board.Widgets[m.cursor]
		b.WriteString(previewSelectedStyle.Render(fmt.Sprintf("▸ %s", w.ID)))
		b.WriteString(previewEmptyStyle.Render(fmt.Sprintf("  (%d, %d) %dx%d",
			w.Position.X, w.Position.Y, w.Position.W, w.Position.H)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(previewEmptyStyle.Render("  " + m.status))
		b.WriteString("\n")
	}

	return b.String()
}

// renderGrid draws the board as a character grid, two columns of text per
// grid cell, with the selected widget highlighted.
func (m previewModel) renderGrid() string {
	cols := m.board.Config.Columns
	rows := m.board.Rows()
	if rows < 4 {
		rows = 4
	}

	// Map each cell to the widget covering it.
	owner := make([]int, cols*rows)
	for i := range owner {
		owner[i] = -1
	}
	for i, w := range m.board.Widgets {
		p := w.Position
		for y := p.Y; y < p.Y+p.H && y < rows; y++ {
			for x := p.X; x < p.X+p.W && x < cols; x++ {
				if x >= 0 && y >= 0 {
					owner[y*cols+x] = i
				}
			}
		}
	}

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			idx := owner[y*cols+x]
			switch {
			case idx < 0:
				b.WriteString(previewEmptyStyle.Render("··"))
			case idx == m.cursor:
				b.WriteString(previewSelectedStyle.Render(cellGlyph(m.board.Widgets[idx].ID)))
			case m.board.Widgets[idx].Locked:
				b.WriteString(previewLockedStyle.Render(cellGlyph(m.board.Widgets[idx].ID)))
			default:
				b.WriteString(previewWidgetStyle.Render(cellGlyph(m.board.Widgets[idx].ID)))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// cellGlyph returns the two-character fill for a widget's cells.
func cellGlyph(id string) string {
	if id == "" {
		return "??"
	}
	r := []rune(id)[0]
	return string(r) + string(r)
}
