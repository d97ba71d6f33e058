// Package config loads and resolves the plume run configuration.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/plume/config.toml (default)
//  3. If the config file doesn't exist, use the built-in defaults
//  4. If the file exists but tables are missing/empty, keep the defaults
//     for those tables
//
// # Shape
//
// The TOML file carries four tables mirroring the render pipeline's needs:
//
//   - [keys]: ordered candidate lists for timestamp/level/logger/message,
//     the promoted dotted paths, and the exception key candidates
//   - placeholder: the string shown for absent canonical fields
//   - [levels.<name>]: icon, style token, and aliases per canonical level,
//     including the "unknown" fallback entry
//
// The resolved Config is immutable for the run; the render core performs no
// file I/O of its own.
package config
