// Package render produces raster snapshots of boards.
//
// The renderer maps grid cells to pixels, honoring the config's gap as the
// visual spacing between widgets - the one place gridlock consults it. The
// placement engine itself never deals in pixels.
package render

import (
	"image"
	"image/color"
	"io"
	"os"

	"github.com/fogleman/gg"

	"github.com/tessella/gridlock/pkg/board"
	"github.com/tessella/gridlock/pkg/errors"
)

// Options controls how a board is rasterized.
type Options struct {
	// CellSize is the pixel size of one grid cell. Defaults to 48.
	CellSize int

	// MinRows is the minimum board height in cells, so near-empty boards
	// still render with some canvas. Defaults to 4.
	MinRows int

	// Labels draws each widget's id at its center. Defaults to true via
	// DefaultOptions; zero-value Options leaves labels off.
	Labels bool
}

// DefaultOptions returns the options used by the CLI render command.
func DefaultOptions() Options {
	return Options{CellSize: 48, MinRows: 4, Labels: true}
}

func (o Options) cellSize() int {
	if o.CellSize > 0 {
		return o.CellSize
	}
	return 48
}

func (o Options) minRows() int {
	if o.MinRows > 0 {
		return o.MinRows
	}
	return 4
}

// Board palette.
var (
	colorBackground = color.RGBA{R: 0x12, G: 0x14, B: 0x18, A: 0xff}
	colorGridLine   = color.RGBA{R: 0x22, G: 0x26, B: 0x2e, A: 0xff}
	colorWidget     = color.RGBA{R: 0x2a, G: 0x6f, B: 0x97, A: 0xff}
	colorLocked     = color.RGBA{R: 0x8a, G: 0x4f, B: 0x3d, A: 0xff}
	colorLabel      = color.RGBA{R: 0xe8, G: 0xea, B: 0xed, A: 0xff}
)

// Image rasterizes a board. The board's config must have positive columns.
func Image(b *board.Board, opts Options) (image.Image, error) {
	if b.Config.Columns <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"render needs positive columns, got %d", b.Config.Columns)
	}

	cell := opts.cellSize()
	gap := b.Config.Gap
	if gap < 0 {
		gap = 0
	}
	rows := max(b.Rows(), opts.minRows())

	width := b.Config.Columns * cell
	height := rows * cell

	dc := gg.NewContext(width, height)
	dc.SetColor(colorBackground)
	dc.Clear()

	// Grid lines.
	dc.SetColor(colorGridLine)
	dc.SetLineWidth(1)
	for x := 0; x <= b.Config.Columns; x++ {
		dc.DrawLine(float64(x*cell), 0, float64(x*cell), float64(height))
		dc.Stroke()
	}
	for y := 0; y <= rows; y++ {
		dc.DrawLine(0, float64(y*cell), float64(width), float64(y*cell))
		dc.Stroke()
	}

	// Widgets, inset by half the gap on each side.
	inset := float64(gap) / 2
	for _, w := range b.Widgets {
		p := w.Position
		x := float64(p.X*cell) + inset
		y := float64(p.Y*cell) + inset
		ww := float64(p.W*cell) - 2*inset
		wh := float64(p.H*cell) - 2*inset
		if ww <= 0 || wh <= 0 {
			continue
		}

		if w.Locked {
			dc.SetColor(colorLocked)
		} else {
			dc.SetColor(colorWidget)
		}
		dc.DrawRoundedRectangle(x, y, ww, wh, 4)
		dc.Fill()

		if opts.Labels {
			dc.SetColor(colorLabel)
			dc.DrawStringAnchored(w.ID, x+ww/2, y+wh/2, 0.5, 0.5)
		}
	}

	return dc.Image(), nil
}

// WritePNG renders a board and writes it as PNG to w.
func WritePNG(b *board.Board, opts Options, w io.Writer) error {
	img, err := Image(b, opts)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	return dc.EncodePNG(w)
}

// WritePNGFile renders a board to a PNG file at path.
func WritePNGFile(b *board.Board, opts Options, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(b, opts, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
