package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	errs "github.com/matzehuels/repograph/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "repograph.yaml", `
layout:
  iterations: 50
render:
  width: 2800
  show_edges: false
cache:
  ttl: 1h
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.Iterations != 50 {
		t.Errorf("iterations = %d, want 50", cfg.Layout.Iterations)
	}
	if cfg.Render.Width != 2800 {
		t.Errorf("width = %d, want 2800", cfg.Render.Width)
	}
	if cfg.Render.Height != 900 {
		t.Errorf("height = %d, want default 900", cfg.Render.Height)
	}
	if cfg.Render.ShowEdges {
		t.Error("show_edges should be false")
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("ttl = %s, want 1h", cfg.Cache.TTL)
	}
	if cfg.File() != path {
		t.Errorf("File() = %q, want %q", cfg.File(), path)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "repograph.toml", `
[classify]
rules_file = "rules.toml"

[log]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Classify.RulesFile != "rules.toml" {
		t.Errorf("rules_file = %q", cfg.Classify.RulesFile)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q", cfg.Log.Level)
	}
	if cfg.Layout.Iterations != 30 {
		t.Errorf("iterations = %d, want default 30", cfg.Layout.Iterations)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeFile(t, "repograph.yaml", "render:\n  fps: 30\n")
	t.Setenv("REPOGRAPH_RENDER_FPS", "24")
	t.Setenv("REPOGRAPH_CACHE_REDIS_ADDR", "localhost:6379")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.FPS != 24 {
		t.Errorf("fps = %d, want env override 24", cfg.Render.FPS)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("redis_addr = %q", cfg.Cache.RedisAddr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := writeFile(t, "repograph.yaml", "layout: [unclosed\n")
	_, err := Load(path)
	if !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestValidate_Default(t *testing.T) {
	if warnings := Default().Validate(); len(warnings) != 0 {
		t.Errorf("default config should have no warnings, got %v", warnings)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative iterations", func(c *Config) { c.Layout.Iterations = -1 }, "layout.iterations"},
		{"huge iterations", func(c *Config) { c.Layout.Iterations = 1000 }, "layout.iterations"},
		{"zero width", func(c *Config) { c.Render.Width = 0 }, "render size"},
		{"zero scale", func(c *Config) { c.Render.Scale = 0 }, "render.scale"},
		{"fast fps", func(c *Config) { c.Render.FPS = 1000 }, "render.fps"},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }, "cache.ttl"},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			found := false
			for _, w := range cfg.Validate() {
				if strings.Contains(w, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected warning mentioning %q", tt.want)
			}
		})
	}
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / 60},
	}
	for _, tt := range tests {
		if got := (RenderConfig{FPS: tt.fps}).FrameInterval(); got != tt.want {
			t.Errorf("FrameInterval(%d) = %s, want %s", tt.fps, got, tt.want)
		}
	}
}
