// Package cache stores computed layouts and rendered artifacts.
//
// Layout is deterministic for a given graph, rule set and iteration count,
// and rendering is deterministic for a given layout and render options, so
// both results are cached under content-derived keys built by a [Keyer].
//
// Three backends implement [Cache]:
//
//   - [FileCache]: JSON entry files below a local directory (the CLI default)
//   - [RedisCache]: a shared Redis server
//   - [NullCache]: caching disabled
//
// [WithHooks] reports hits, misses and writes through the observability
// cache hooks.
package cache
