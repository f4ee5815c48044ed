package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/cliquekit/cliquekit/internal/server"
	"github.com/cliquekit/cliquekit/pkg/history"
	"github.com/cliquekit/cliquekit/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP search API",
		Long: `Run the HTTP search API.

Endpoints:
  POST /api/search        run a search on an uploaded or generated graph
  GET  /api/runs          list recorded runs
  GET  /api/runs/{id}     show one run
  GET  /healthz           liveness check

Runs are recorded to MongoDB when configured, and to an in-memory store
otherwise. The cache backend follows the CLI configuration (Redis when
configured, on-disk otherwise).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if addr == "" {
				addr = ":8080"
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	backend, err := c.newCache(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer backend.Close()

	store, err := c.newHistory(ctx)
	if err != nil {
		return fmt.Errorf("initialize history: %w", err)
	}
	if store == nil {
		store = history.NewMemoryStore()
		c.Logger.Info("No MongoDB configured, recording runs in memory")
	}
	defer store.Close(context.Background())

	runner := pipeline.NewRunner(backend, store, c.Logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, c.Logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		c.Logger.Info("Listening", "addr", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		c.Logger.Info("Server stopped")
		return nil
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
