// Package cli implements the repograph command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/repograph/pkg/buildinfo"
	"github.com/matzehuels/repograph/pkg/cache"
	"github.com/matzehuels/repograph/pkg/classify"
	"github.com/matzehuels/repograph/pkg/config"
	"github.com/matzehuels/repograph/pkg/observability"
	"github.com/matzehuels/repograph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "repograph"

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
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
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
		Short: "Repograph lays out and renders repository architecture graphs",
		Long: `Repograph turns the graph description produced by a repository analysis
into a layered architecture diagram: nodes are classified by role (entry,
frontend, backend, services, data, ...), placed in horizontal bands and side
columns, relaxed with a short force simulation and drawn as PNG, SVG, DOT or
an interactive terminal view.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./repograph.yaml if present)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads configuration, applies the log level and attaches the logger
// to the command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := parseLevel(cfg.Log.Level)
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	for _, w := range cfg.Validate() {
		c.Logger.Warn(w)
	}
	if f := cfg.File(); f != "" {
		c.Logger.Debug("loaded config", "file", f)
	}
	if level == LogDebug {
		registerDebugHooks(c.Logger)
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
func (c *CLI) newRunner(ctx context.Context, noCache bool, rulesFile string) (*pipeline.Runner, error) {
	classifier, err := c.newClassifier(rulesFile)
	if err != nil {
		return nil, err
	}
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, cache.NewPrefixKeyer(nil, c.keyPrefix()), classifier, c.Logger)
	r.TTL = c.Config.Cache.TTL
	return r, nil
}

// newCache picks the cache backend: none, Redis when an address is
// configured, else the local file cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if addr := c.Config.Cache.RedisAddr; addr != "" {
		rc, err := cache.NewRedisCache(ctx, addr, cache.RedisOptions{})
		if err != nil {
			c.Logger.Warn("redis unavailable, using file cache", "addr", addr, "error", err)
		} else {
			c.Logger.Debug("using redis cache", "addr", addr)
			return rc, nil
		}
	}
	fc, err := cache.NewFileCache(c.cacheDir())
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// keyPrefix namespaces keys in a shared Redis database.
func (c *CLI) keyPrefix() string {
	if c.Config.Cache.RedisAddr == "" {
		return ""
	}
	return appName + ":"
}

func (c *CLI) cacheDir() string {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir
	}
	return config.DefaultCacheDir()
}

// newClassifier loads extra rules from the flag value or the configured
// rules file.
func (c *CLI) newClassifier(rulesFile string) (*classify.Classifier, error) {
	if rulesFile == "" {
		rulesFile = c.Config.Classify.RulesFile
	}
	cl, err := classify.NewFromFile(rulesFile)
	if err != nil {
		return nil, err
	}
	if rulesFile != "" {
		c.Logger.Debug("loaded classification rules", "file", rulesFile, "rules", len(cl.Rules())-len(classify.DefaultRules))
	}
	return cl, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions seeds pipeline options from configuration.
func (c *CLI) pipelineOptions() pipeline.Options {
	r := c.Config.Render
	return pipeline.Options{
		Iterations: c.Config.Layout.Iterations,
		Width:      r.Width,
		Height:     r.Height,
		Scale:      r.Scale,
		HideEdges:  !r.ShowEdges,
		Logger:     c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseLevel maps a config log level name to a charm log level.
func parseLevel(s string) log.Level {
	level, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return LogInfo
	}
	return level
}

// registerDebugHooks logs pipeline, cache and frame events at debug level.
func registerDebugHooks(l *log.Logger) {
	observability.Register(&logHooks{logger: l})
}
