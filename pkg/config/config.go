package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	errs "github.com/matzehuels/repograph/pkg/errors"
)

// EnvPrefix prefixes environment overrides: REPOGRAPH_RENDER_WIDTH sets
// render.width.
const EnvPrefix = "REPOGRAPH"

// Config holds all application configuration.
type Config struct {
	Layout   LayoutConfig   `mapstructure:"layout"`
	Render   RenderConfig   `mapstructure:"render"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Classify ClassifyConfig `mapstructure:"classify"`
	Log      LogConfig      `mapstructure:"log"`

	file string
}

type LayoutConfig struct {
	Iterations int `mapstructure:"iterations"`
}

type RenderConfig struct {
	Width     int     `mapstructure:"width"`
	Height    int     `mapstructure:"height"`
	Scale     float64 `mapstructure:"scale"`
	FPS       int     `mapstructure:"fps"`
	ShowEdges bool    `mapstructure:"show_edges"`
}

// FrameInterval converts FPS into a ticker interval.
func (r RenderConfig) FrameInterval() time.Duration {
	if r.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(r.FPS)
}

type CacheConfig struct {
	Dir       string        `mapstructure:"dir"`
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type ClassifyConfig struct {
	RulesFile string `mapstructure:"rules_file"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{Iterations: 30},
		Render: RenderConfig{
			Width:     1400,
			Height:    900,
			Scale:     1,
			FPS:       60,
			ShowEdges: true,
		},
		Cache: CacheConfig{
			Dir: DefaultCacheDir(),
			TTL: 7 * 24 * time.Hour,
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultCacheDir returns the user cache directory for repograph, falling
// back to a directory under the system temp dir.
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "repograph")
	}
	return filepath.Join(os.TempDir(), "repograph-cache")
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("layout.iterations", d.Layout.Iterations)
	v.SetDefault("render.width", d.Render.Width)
	v.SetDefault("render.height", d.Render.Height)
	v.SetDefault("render.scale", d.Render.Scale)
	v.SetDefault("render.fps", d.Render.FPS)
	v.SetDefault("render.show_edges", d.Render.ShowEdges)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.redis_addr", d.Cache.RedisAddr)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("classify.rules_file", d.Classify.RulesFile)
	v.SetDefault("log.level", d.Log.Level)
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks configuration for issues and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	if c.Layout.Iterations < 0 {
		warnings = append(warnings, fmt.Sprintf("layout.iterations %d is negative; relaxation is skipped", c.Layout.Iterations))
	}
	if c.Layout.Iterations > 500 {
		warnings = append(warnings, fmt.Sprintf("layout.iterations %d is very high; layout will be slow", c.Layout.Iterations))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		warnings = append(warnings, fmt.Sprintf("render size %dx%d is not positive", c.Render.Width, c.Render.Height))
	}
	if c.Render.Scale <= 0 || c.Render.Scale > 4 {
		warnings = append(warnings, fmt.Sprintf("render.scale %.2f is outside recommended range (0, 4]", c.Render.Scale))
	}
	if c.Render.FPS < 0 || c.Render.FPS > 240 {
		warnings = append(warnings, fmt.Sprintf("render.fps %d is outside recommended range [0, 240]", c.Render.FPS))
	}
	if c.Cache.TTL < 0 {
		warnings = append(warnings, fmt.Sprintf("cache.ttl %s is negative; entries never expire", c.Cache.TTL))
	}
	if c.Log.Level != "" && !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		warnings = append(warnings, fmt.Sprintf("log.level %q is unknown; using info", c.Log.Level))
	}

	return warnings
}

// Load reads configuration from path and the environment. An empty path
// looks for repograph.{yaml,toml,json} in the working directory and the user
// config directory, and uses defaults when none exists.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("repograph")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "repograph"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		switch {
		case missing && path == "":
		case missing:
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
		default:
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "reading config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "unmarshalling config")
	}
	cfg.file = v.ConfigFileUsed()
	return &cfg, nil
}

// File returns the config file that was read, or "" when running on
// defaults and environment only.
func (c *Config) File() string { return c.file }
