package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tessella/gridlock/pkg/render"
)

// renderCommand creates the render command for rasterizing boards to PNG.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		cellSize int
		noLabels bool
	)

	cmd := &cobra.Command{
		Use:   "render [board.json]",
		Short: "Render a board to PNG",
		Long: `Render a board to a PNG image.

Each grid cell becomes a square of --cell-size pixels; widgets are drawn
inset by half the board's gap, with locked widgets in a distinct color.
The output path defaults to the input with a .png extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], output, cellSize, noLabels)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.png)")
	cmd.Flags().IntVar(&cellSize, "cell-size", 0, "pixel size of one grid cell (default: from config)")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "omit widget id labels")

	return cmd
}

// runRender loads the board and writes the PNG.
func (c *CLI) runRender(ctx context.Context, input, output string, cellSize int, noLabels bool) error {
	logger := loggerFromContext(ctx)

	b, err := readBoardArg(input)
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts := render.Options{
		CellSize: cfg.Render.CellSize,
		MinRows:  cfg.Render.MinRows,
		Labels:   cfg.Render.Labels && !noLabels,
	}
	if cellSize > 0 {
		opts.CellSize = cellSize
	}

	if output == "" {
		if input == "-" {
			output = "board.png"
		} else {
			output = strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
		}
	}

	prog := newProgress(logger)
	if err := render.WritePNGFile(b, opts, output); err != nil {
		return fmt.Errorf("render %s: %w", output, err)
	}
	prog.done(fmt.Sprintf("Rendered %d widgets", len(b.Widgets)))

	printSuccess("Board rendered")
	printFile(output)
	printStats(len(b.Widgets), lockedCount(b), b.Rows())
	return nil
}
