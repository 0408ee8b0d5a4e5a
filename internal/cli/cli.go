// Package cli implements the tilecard command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilecard/internal/config"
	"github.com/matzehuels/tilecard/pkg/buildinfo"
	"github.com/matzehuels/tilecard/pkg/cache"
	"github.com/matzehuels/tilecard/pkg/integrations"
	"github.com/matzehuels/tilecard/pkg/integrations/strands"
	"github.com/matzehuels/tilecard/pkg/observability"
	"github.com/matzehuels/tilecard/pkg/preset"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

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
	Config config.Config

	configPath string
	noCache    bool
	getenv     func(string) string
}

// New creates a new CLI instance with a default logger and built-in
// settings. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		getenv: os.Getenv,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Tilecard edits emoji share cards for daily puzzle games",
		Long: `Tilecard edits the colored-tile share cards that daily puzzle games
produce. Pick a preset, cycle tiles through their colors, grow or shrink the
grid, edit the caption and copy the finished card to the clipboard.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tilecard/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the puzzle provider cache")

	// Register all subcommands
	root.AddCommand(c.editCommand())
	root.AddCommand(c.cardCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig resolves settings and attaches the logger to the command
// context. A --verbose run stays at debug level whatever the config says.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Options{Path: c.configPath, Getenv: c.getenv})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg
	if c.Logger.GetLevel() > log.DebugLevel {
		c.SetLogLevel(cfg.LogLevel())
	}
	registerHooks(c.Logger)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// registerHooks routes loop, cache and HTTP events to logger at debug level.
func registerHooks(logger *log.Logger) {
	h := observability.NewLogHooks(logger)
	observability.SetLoopHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

// =============================================================================
// Catalog Factory
// =============================================================================

// newCatalog creates the preset catalog backed by the configured provider
// cache. The returned close function releases the cache.
func (c *CLI) newCatalog(ctx context.Context) (*preset.Catalog, func() error, error) {
	backend, err := c.newCache(ctx)
	if err != nil {
		return nil, nil, err
	}
	client := strands.NewClient(backend, c.Config.Cache.TTL).WithBaseURL(c.Config.Provider.BaseURL)
	client.SetHTTPClient(integrations.NewHTTPClient(c.Config.Provider.Timeout))
	catalog := preset.NewCatalog(client, preset.WithLocale(c.Config.LanguageTag()))
	return catalog, backend.Close, nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	opts := cache.Options{
		Backend: c.Config.Cache.Backend,
		Redis: cache.RedisConfig{
			Addr:   c.Config.Cache.RedisAddr,
			DB:     c.Config.Cache.RedisDB,
			Prefix: appName + ":",
		},
	}
	if opts.Backend == cache.BackendFile || opts.Backend == "" {
		dir, err := c.Config.CacheDir(c.getenv)
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		opts.Dir = dir
	}
	backend, err := cache.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", opts.Backend, err)
	}
	return backend, nil
}
