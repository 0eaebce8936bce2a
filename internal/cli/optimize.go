package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessella/gridlock/pkg/board"
)

// optimizeCommand creates the optimize command for compacting a board.
func (c *CLI) optimizeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "optimize [board.json]",
		Short: "Compact a board's widgets toward the top",
		Long: `Compact a board's widgets toward the top of the grid.

Widgets are moved upward until they rest against the top edge or against
widgets above them. Locked widgets never move; unlocked widgets never pass
through them. When the board's config enables float mode, widgets keep their
rows and are only clamped into the column range.

Pass "-" to read the board from stdin. Without --output the result is
written to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOptimize(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// runOptimize loads the board, compacts it, and writes the result.
func (c *CLI) runOptimize(ctx context.Context, input, output string) error {
	logger := loggerFromContext(ctx)

	b, err := readBoardArg(input)
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	logger.Debugf("Loaded board: %d widgets, %d columns", len(b.Widgets), b.Config.Columns)

	prog := newProgress(logger)
	b.Optimize()
	prog.done(fmt.Sprintf("Compacted %d widgets", len(b.Widgets)))

	if err := writeResult(b, output); err != nil {
		return err
	}
	if output != "" && output != "-" {
		printSuccess("Board compacted")
		printStats(len(b.Widgets), lockedCount(b), b.Rows())
		printNextStep("Render", "gridlock render "+output)
	}
	return nil
}

// readBoardArg reads a board from a file path, or from stdin when the
// argument is "-".
func readBoardArg(arg string) (*board.Board, error) {
	if arg == "-" {
		return board.ReadBoard(os.Stdin)
	}
	return board.ReadBoardFile(arg)
}

// lockedCount counts the board's locked widgets.
func lockedCount(b *board.Board) int {
	n := 0
	for _, w := range b.Widgets {
		if w.Locked {
			n++
		}
	}
	return n
}
