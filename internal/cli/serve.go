package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/qsketch/qsketch/pkg/api"
	"github.com/qsketch/qsketch/pkg/cache"
	"github.com/qsketch/qsketch/pkg/pipeline"
	"github.com/qsketch/qsketch/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	redis   string // redis URL for the artifact cache (empty = in-memory)
	mongo   string // mongodb URI for circuit storage (empty = in-memory)
	mongoDB string // mongodb database name
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Serve starts the qsketch HTTP API.

Without flags the server keeps circuits and cached artifacts in memory.
Point --redis at a Redis instance to share the artifact cache between
processes, and --mongo at a MongoDB deployment to persist circuits.`,
		Example: `  qsketch serve
  qsketch serve --addr :9090
  qsketch serve --redis redis://localhost:6379/0 --mongo mongodb://localhost:27017`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis URL for the artifact cache")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "mongodb URI for circuit storage")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "qsketch", "mongodb database name")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	artifactCache, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}

	circuitStore, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = circuitStore.Close(shutdownCtx)
	}()

	runner := pipeline.NewRunner(artifactCache, nil, c.Logger)
	defer runner.Close()

	server := api.NewServer(circuitStore, runner, c.Logger)
	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	c.Logger.Info("server listening", "addr", opts.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// serveCache picks the artifact cache backend for the server.
func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.redis == "" {
		return cache.NewMemoryCache(), nil
	}
	rc, err := cache.NewRedisCache(ctx, opts.redis)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	c.Logger.Info("using redis cache", "url", opts.redis)
	return rc, nil
}

// serveStore picks the circuit store backend for the server.
func (c *CLI) serveStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	if opts.mongo == "" {
		return store.NewMemoryStore(), nil
	}
	ms, err := store.NewMongoStore(ctx, opts.mongo, opts.mongoDB)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	c.Logger.Info("using mongodb store", "database", opts.mongoDB)
	return ms, nil
}
