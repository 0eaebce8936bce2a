package board

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tessella/gridlock/pkg/errors"
	"github.com/tessella/gridlock/pkg/grid"
)

// Board is a named dashboard layout: the widget list and the grid
// configuration the surrounding application holds. The placement engine
// never sees boards; callers pass Widgets and Config to pkg/grid and put the
// result back.
type Board struct {
	Name    string          `json:"name,omitempty" bson:"name,omitempty"`
	Widgets []grid.Widget   `json:"widgets" bson:"widgets"`
	Config  grid.GridConfig `json:"config" bson:"config"`
}

// Optimize compacts the board's widgets in place and returns the board.
func (b *Board) Optimize() *Board {
	b.Widgets = grid.Optimize(b.Widgets, b.Config)
	return b
}

// Resolve reflows the board around the widget being dragged.
func (b *Board) Resolve(draggedID string) *Board {
	b.Widgets = grid.ResolveConflicts(b.Widgets, b.Config, draggedID)
	return b
}

// Place returns the first free position for a new w x h widget. The board
// is not modified; the caller constructs and inserts the widget.
func (b *Board) Place(w, h int) grid.Position {
	return grid.FindBestPosition(b.Widgets, grid.Widget{Position: grid.Position{W: w, H: h}}, b.Config)
}

// Widget returns the widget with the given id, or nil.
func (b *Board) Widget(id string) *grid.Widget {
	for i := range b.Widgets {
		if b.Widgets[i].ID == id {
			return &b.Widgets[i]
		}
	}
	return nil
}

// Rows returns the first row index below every widget, i.e. the board's
// current height in cells.
func (b *Board) Rows() int {
	rows := 0
	for _, w := range b.Widgets {
		if bottom := w.Position.Y + w.Position.H; bottom > rows {
			rows = bottom
		}
	}
	return rows
}

// Validate checks the board's config and widget ids.
func (b *Board) Validate() error {
	if err := errors.ValidateConfig(b.Config.Columns, b.Config.Gap); err != nil {
		return err
	}
	for _, w := range b.Widgets {
		if err := errors.ValidateWidgetID(w.ID); err != nil {
			return err
		}
		if w.Position.W <= 0 || w.Position.H <= 0 {
			return errors.New(errors.ErrCodeInvalidWidget,
				"widget %q has non-positive size %dx%d", w.ID, w.Position.W, w.Position.H)
		}
	}
	return nil
}

// ReadBoard decodes a JSON board from r.
//
// The input must be a JSON object with a "widgets" array and a "config"
// object. Absent config fields default to zero values, matching the wire
// contract. ReadBoard does not close r.
func ReadBoard(r io.Reader) (*Board, error) {
	var b Board
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "read board")
	}
	return &b, nil
}

// WriteBoard encodes b as indented JSON and writes it to w.
// The output can be re-read with [ReadBoard] for round-trip processing.
func WriteBoard(b *Board, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "write board")
	}
	return nil
}

// ReadBoardFile reads a board from a JSON file at path.
func ReadBoardFile(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open board file: %w", err)
	}
	defer f.Close()
	return ReadBoard(f)
}

// WriteBoardFile writes a board to a JSON file at path.
func WriteBoardFile(b *Board, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create board file: %w", err)
	}
	if err := WriteBoard(b, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Marshal encodes a board as compact JSON, as stored by pkg/store backends.
func Marshal(b *Board) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "marshal board")
	}
	return data, nil
}

// Unmarshal decodes a board from JSON bytes.
func Unmarshal(data []byte) (*Board, error) {
	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "unmarshal board")
	}
	return &b, nil
}
