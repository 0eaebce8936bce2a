package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// resolveCommand creates the resolve command for drag-time conflict resolution.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		output  string
		dragged string
	)

	cmd := &cobra.Command{
		Use:   "resolve [board.json]",
		Short: "Reflow a board around a dragged widget",
		Long: `Reflow a board around the widget currently being dragged.

The dragged widget stays exactly where the board places it; every unlocked
widget that overlaps it is pushed below, and the rest of the board is then
compacted upward around the dragged footprint. Locked widgets never move.

If the board has no widget with the given id, the command degrades to plain
compaction, the same as 'gridlock optimize'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd.Context(), args[0], dragged, output)
		},
	}

	cmd.Flags().StringVarP(&dragged, "dragged", "d", "", "id of the widget being dragged")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.MarkFlagRequired("dragged")

	return cmd
}

// runResolve loads the board, resolves conflicts around the dragged widget,
// and writes the result.
func (c *CLI) runResolve(ctx context.Context, input, dragged, output string) error {
	logger := loggerFromContext(ctx)

	b, err := readBoardArg(input)
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}

	if b.Widget(dragged) == nil {
		logger.Warnf("No widget %q on the board; compacting instead", dragged)
	}

	prog := newProgress(logger)
	b.Resolve(dragged)
	prog.done(fmt.Sprintf("Resolved %d widgets around %q", len(b.Widgets), dragged))

	if err := writeResult(b, output); err != nil {
		return err
	}
	if output != "" && output != "-" {
		printSuccess("Conflicts resolved")
		printStats(len(b.Widgets), lockedCount(b), b.Rows())
	}
	return nil
}
