package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tessella/gridlock/internal/server"
	"github.com/tessella/gridlock/pkg/observability"
)

// serveCommand creates the serve command exposing the placement API over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		backend string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the placement API over HTTP",
		Long: `Serve the placement API over HTTP.

Stateless placement operations are exposed under /v1/layout and stored
boards under /v1/boards, backed by the configured store. The server shuts
down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, backend)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: from config, :8080)")
	cmd.Flags().StringVar(&backend, "store", "", "store backend override")

	return cmd
}

// runServe starts the HTTP server and blocks until the context is canceled.
func (c *CLI) runServe(ctx context.Context, addr, backend string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Serve.Addr
	}

	st, err := c.openStore(ctx, backend)
	if err != nil {
		return err
	}
	defer st.Close()

	observability.SetEngineHooks(engineLogHooks{logger: c.Logger})
	observability.SetStoreHooks(storeLogHooks{logger: c.Logger})

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(st, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve on %s: %w", addr, err)
	}
}

// engineLogHooks logs placement operation timings at debug level.
type engineLogHooks struct {
	observability.NoopEngineHooks
	logger *log.Logger
}

func (h engineLogHooks) OnOptimizeComplete(ctx context.Context, widgetCount int, d time.Duration, err error) {
	h.logger.Debug("optimize", "widgets", widgetCount, "duration", d, "err", err)
}

func (h engineLogHooks) OnResolveComplete(ctx context.Context, widgetCount int, draggedID string, d time.Duration, err error) {
	h.logger.Debug("resolve", "widgets", widgetCount, "dragged", draggedID, "duration", d, "err", err)
}

func (h engineLogHooks) OnPlaceComplete(ctx context.Context, widgetCount int, d time.Duration, err error) {
	h.logger.Debug("place", "widgets", widgetCount, "duration", d, "err", err)
}

// storeLogHooks logs board store traffic at debug level.
type storeLogHooks struct {
	observability.NoopStoreHooks
	logger *log.Logger
}

func (h storeLogHooks) OnLoad(ctx context.Context, backend, name string) {
	h.logger.Debug("board loaded", "backend", backend, "name", name)
}

func (h storeLogHooks) OnMiss(ctx context.Context, backend, name string) {
	h.logger.Debug("board miss", "backend", backend, "name", name)
}

func (h storeLogHooks) OnSave(ctx context.Context, backend, name string, widgetCount int) {
	h.logger.Debug("board saved", "backend", backend, "name", name, "widgets", widgetCount)
}
