package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessella/gridlock/pkg/board"
	"github.com/tessella/gridlock/pkg/store"
)

// boardCommand creates the board command group for managing stored boards.
func (c *CLI) boardCommand() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards in the configured store",
		Long: `Manage boards in the configured store.

Boards are stored under their names. The backend comes from the config file
(file by default) and can be overridden per invocation with --store.`,
	}

	cmd.PersistentFlags().StringVar(&backend, "store", "", "store backend: memory, file, sqlite, redis, mongo")

	cmd.AddCommand(c.boardNewCommand())
	cmd.AddCommand(c.boardSaveCommand(&backend))
	cmd.AddCommand(c.boardLoadCommand(&backend))
	cmd.AddCommand(c.boardListCommand(&backend))
	cmd.AddCommand(c.boardDeleteCommand(&backend))
	cmd.AddCommand(c.boardPathCommand())

	return cmd
}

// boardNewCommand writes an empty board with the configured grid defaults.
func (c *CLI) boardNewCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create an empty board with the configured grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return writeResult(emptyBoard(cfg, args[0]), output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

// boardSaveCommand saves a board file into the store under a name.
func (c *CLI) boardSaveCommand(backend *string) *cobra.Command {
	return &cobra.Command{
		Use:   "save [name] [board.json]",
		Short: "Save a board file into the store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardSave(cmd.Context(), *backend, args[0], args[1])
		},
	}
}

func (c *CLI) runBoardSave(ctx context.Context, backend, name, input string) error {
	b, err := readBoardArg(input)
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	b.Name = name

	st, err := c.openStore(ctx, backend)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Save(ctx, b); err != nil {
		return fmt.Errorf("save board %q: %w", name, err)
	}

	printSuccess("Saved board %s", StyleHighlight.Render(name))
	printStats(len(b.Widgets), lockedCount(b), b.Rows())
	return nil
}

// boardLoadCommand loads a board from the store and writes it out.
func (c *CLI) boardLoadCommand(backend *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "load [name]",
		Short: "Load a board from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardLoad(cmd.Context(), *backend, args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func (c *CLI) runBoardLoad(ctx context.Context, backend, name, output string) error {
	st, err := c.openStore(ctx, backend)
	if err != nil {
		return err
	}
	defer st.Close()

	b, err := st.Load(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no board named %q", name)
	}
	if err != nil {
		return fmt.Errorf("load board %q: %w", name, err)
	}
	return writeResult(b, output)
}

// boardListCommand lists the names of all stored boards.
func (c *CLI) boardListCommand(backend *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardList(cmd.Context(), *backend)
		},
	}
}

func (c *CLI) runBoardList(ctx context.Context, backend string) error {
	st, err := c.openStore(ctx, backend)
	if err != nil {
		return err
	}
	defer st.Close()

	names, err := st.List(ctx)
	if err != nil {
		return fmt.Errorf("list boards: %w", err)
	}
	if len(names) == 0 {
		printInfo("No boards stored")
		return nil
	}
	for _, name := range names {
		printDetail(name)
	}
	return nil
}

// boardDeleteCommand deletes a board from the store.
func (c *CLI) boardDeleteCommand(backend *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoardDelete(cmd.Context(), *backend, args[0])
		},
	}
}

func (c *CLI) runBoardDelete(ctx context.Context, backend, name string) error {
	st, err := c.openStore(ctx, backend)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete board %q: %w", name, err)
	}
	printSuccess("Deleted board %s", StyleHighlight.Render(name))
	return nil
}

// boardPathCommand prints where the file backend keeps its boards.
func (c *CLI) boardPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file store's boards directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			dsn, err := cfg.StoreDSN(store.BackendFile)
			if err != nil {
				return err
			}
			fmt.Println(dsn)
			return nil
		},
	}
}

// emptyBoard builds a fresh board from the configured grid defaults.
func emptyBoard(cfg *Config, name string) *board.Board {
	return &board.Board{
		Name:    name,
		Widgets: nil,
		Config:  cfg.GridConfig(),
	}
}
