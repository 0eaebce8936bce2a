package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tessella/gridlock/pkg/grid"
)

// placeCommand creates the place command for finding a free position.
func (c *CLI) placeCommand() *cobra.Command {
	var (
		output string
		width  int
		height int
		add    bool
		id     string
	)

	cmd := &cobra.Command{
		Use:   "place [board.json]",
		Short: "Find the first free position for a new widget",
		Long: `Find the first free position for a new widget of the given size.

The board is scanned row by row, left to right, and the first anchor where
the widget fits without overlapping anything is reported. If no position
exists within the search window, the widget is parked below the board.

With --add the widget is inserted into the board and the updated board is
written out; otherwise only the position is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(cmd.Context(), args[0], width, height, add, id, output)
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 2, "widget width in cells")
	cmd.Flags().IntVar(&height, "height", 2, "widget height in cells")
	cmd.Flags().BoolVar(&add, "add", false, "insert the widget into the board")
	cmd.Flags().StringVar(&id, "id", "", "widget id (default: generated UUID)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// runPlace loads the board, finds the best position, and either reports it
// or inserts the widget.
func (c *CLI) runPlace(ctx context.Context, input string, width, height int, add bool, id, output string) error {
	logger := loggerFromContext(ctx)

	if width <= 0 || height <= 0 {
		return fmt.Errorf("widget size must be positive, got %dx%d", width, height)
	}

	b, err := readBoardArg(input)
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}

	pos := b.Place(width, height)
	logger.Debugf("Best position for %dx%d: (%d, %d)", width, height, pos.X, pos.Y)

	if !add {
		printKeyValue("x", fmt.Sprintf("%d", pos.X))
		printKeyValue("y", fmt.Sprintf("%d", pos.Y))
		printKeyValue("w", fmt.Sprintf("%d", pos.W))
		printKeyValue("h", fmt.Sprintf("%d", pos.H))
		return nil
	}

	if id == "" {
		id = uuid.NewString()
	}
	if b.Widget(id) != nil {
		return fmt.Errorf("board already has a widget %q", id)
	}
	b.Widgets = append(b.Widgets, grid.Widget{ID: id, Position: pos})

	if err := writeResult(b, output); err != nil {
		return err
	}
	if output != "" && output != "-" {
		printSuccess("Widget %s placed at (%d, %d)", id, pos.X, pos.Y)
		printStats(len(b.Widgets), lockedCount(b), b.Rows())
	}
	return nil
}
