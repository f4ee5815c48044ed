// Package cli implements the cliquekit command-line interface.
//
// This package provides commands for running the parallel greedy clique
// search, generating random graphs, converting between graph formats,
// rendering visualizations, and managing the result cache. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - search: Run the multi-start greedy clique search on a graph file
//   - gen: Generate a G(n, p) random graph
//   - convert: Convert between DIMACS, edge-list, and JSON formats
//   - render: Generate DOT, SVG, or PNG visualizations
//   - runs: Inspect recorded search runs
//   - cache: Manage the local cache
//   - serve: Run the HTTP API server
//   - fetch: Download benchmark graph files
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cliquekit/cliquekit/pkg/buildinfo"
	"github.com/cliquekit/cliquekit/pkg/cache"
	"github.com/cliquekit/cliquekit/pkg/history"
	"github.com/cliquekit/cliquekit/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "cliquekit"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the on-disk
// configuration, when one exists.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	cfg, err := LoadConfig(DefaultConfigPath())
	if err != nil {
		c.Logger.Warn("Ignoring invalid config file", "error", err)
	} else {
		c.Config = cfg
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "cliquekit",
		Short:        "Cliquekit finds large cliques with parallel randomized greedy search",
		Long:         `Cliquekit is a CLI tool for approximating maximum cliques in undirected graphs. It runs many randomized greedy trials in parallel, each extending a clique along a different vertex ordering, and keeps the largest clique any trial finds.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.genCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.runsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. History recording is
// enabled when a MongoDB URI is configured.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	store, err := c.newHistory(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, store, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if addr := c.Config.Redis.Addr; addr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newHistory returns the configured history store, or nil when no store is
// configured.
func (c *CLI) newHistory(ctx context.Context) (history.Store, error) {
	uri := c.Config.Mongo.URI
	if env := os.Getenv("CLIQUEKIT_MONGO_URI"); env != "" {
		uri = env
	}
	if uri == "" {
		return nil, nil
	}
	return history.NewMongoStore(ctx, history.MongoConfig{
		URI:      uri,
		Database: c.Config.Mongo.Database,
	})
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/cliquekit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseArtifacts parses a comma-separated artifact list into a slice.
func parseArtifacts(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
