// Package cli implements the explaintext command-line interface.
//
// # Commands
//
//   - format: render an explanation JSON file as text
//   - tree: render the decision tree of an explanation as text, DOT or SVG
//   - view: pick sections interactively and preview the rendering
//   - serve: expose formatting over HTTP
//   - cache: manage the rendered-text cache
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Defaults for --show, --glyphs, caching and the server address are read
// from $XDG_CONFIG_HOME/explaintext/config.toml, or the file named by
// --config. Flags always win over the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports pipeline and cache events through observability hooks.
package cli

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/explaintext/pkg/buildinfo"
	"github.com/matzehuels/explaintext/pkg/cache"
	"github.com/matzehuels/explaintext/pkg/observability"
	"github.com/matzehuels/explaintext/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "explaintext"

// Log levels accepted by New.
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

	configFile string
	verbose    bool
	config     *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: &Config{},
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Explaintext renders model explanations as plain text",
		Long:          `Explaintext turns model explanations (feature weights, feature importances and decision trees) into aligned, human-readable text reports.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/explaintext/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.formatCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	if c.verbose {
		c.Logger.SetLevel(LogDebug)
		c.Logger.SetReportCaller(true)
	}

	path, explicit := c.configFile, c.configFile != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			c.Logger.Debug("no config directory", "err", err)
			p = ""
		}
		path = p
	}
	if path != "" {
		cfg, err := loadConfig(path, explicit)
		if err != nil {
			return err
		}
		for _, k := range cfg.Unknown {
			c.Logger.Warn("unknown config key", "key", k, "file", path)
		}
		c.config = cfg
	}

	if c.Logger.GetLevel() <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, keyer, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache picks the cache backend: none when disabled, Redis when a URL is
// configured and reachable, the file cache otherwise.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewScopedKeyer(nil, c.config.Cache.Prefix)
	if noCache || c.config.Cache.Disabled {
		return cache.NewNullCache(), keyer, nil
	}

	if redisURL := c.config.Cache.RedisURL; redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, redisURL)
		if err == nil {
			c.Logger.Debug("using redis cache", "url", redactURL(redisURL))
			return rc, keyer, nil
		}
		c.Logger.Warn("redis unavailable, falling back to file cache", "err", err)
	}

	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), keyer, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, keyer, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory, ~/.cache/explaintext by default.
func cacheDir() (string, error) {
	return xdgPath("XDG_CACHE_HOME", ".cache", appName)
}

// xdgPath joins elems onto the directory named by the XDG variable env,
// or onto ~/fallback when env is unset.
func xdgPath(env, fallback string, elems ...string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, fallback)
	}
	return filepath.Join(append([]string{base}, elems...)...), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions merges flag values over the configuration.
// An empty glyphs value and a nil show fall back to the config file. A
// non-nil empty show selects no sections, leaving only the error line.
func (c *CLI) pipelineOptions(show []string, glyphs string, refresh bool) pipeline.Options {
	opts := pipeline.Options{
		Show:    c.config.Show,
		Glyphs:  c.config.Glyphs,
		TTL:     c.config.Cache.TTL.Duration,
		Refresh: refresh,
		Logger:  c.Logger,
	}
	if show != nil {
		opts.Show = show
	}
	if glyphs != "" {
		opts.Glyphs = glyphs
	}
	return opts
}

// parseList splits a comma-separated flag value, dropping empty items.
// The result is never nil.
func parseList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// showFlag returns the --show list of cmd, or nil when the flag was not
// given. An explicit empty value (--show "") selects no sections.
func showFlag(cmd *cobra.Command, value string) []string {
	if !cmd.Flags().Changed("show") {
		return nil
	}
	return parseList(value)
}

// redactURL hides the password of a Redis URL for logging.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	return u.Redacted()
}
