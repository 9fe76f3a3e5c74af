// Package config loads repograph settings from a YAML, TOML or JSON file
// and REPOGRAPH_* environment variables.
//
// Every key has a default, so running without a config file is normal.
// Environment variables override file values; nested keys use underscores:
//
//	REPOGRAPH_LAYOUT_ITERATIONS=60
//	REPOGRAPH_CACHE_REDIS_ADDR=localhost:6379
//
// [Config.Validate] returns human-readable warnings rather than failing, so
// a questionable value never blocks a render.
package config
