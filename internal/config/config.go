package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Keys holds the ordered candidate key lists for canonical field extraction,
// plus the dotted paths promoted onto their own lines and the keys under
// which an exception payload may appear. First match wins everywhere.
type Keys struct {
	Timestamp []string `toml:"timestamp"`
	Level     []string `toml:"level"`
	Logger    []string `toml:"logger"`
	Message   []string `toml:"message"`
	Promoted  []string `toml:"promoted"`
	Exception []string `toml:"exception"`
}

// LevelStyle configures one canonical level's display.
type LevelStyle struct {
	Icon    string   `toml:"icon"`
	Style   string   `toml:"style"`
	Aliases []string `toml:"aliases"`
}

// Config is the fully resolved run configuration. It is built once at start
// and never mutated while lines are being processed.
type Config struct {
	Keys        Keys                  `toml:"keys"`
	Placeholder string                `toml:"placeholder"`
	Levels      map[string]LevelStyle `toml:"levels"`
}

const defaultConfigPath = "~/.config/plume/config.toml"

// Default returns the built-in configuration, covering the field-name
// conventions of the common structured-logging ecosystems.
func Default() Config {
	return Config{
		Keys: Keys{
			Timestamp: []string{"timestamp", "time", "@timestamp", "ts", "asctime", "record.time.repr"},
			Level:     []string{"level", "levelname", "severity", "level-no", "record.level.name"},
			Logger:    []string{"logger", "logger_name", "name", "module", "record.name"},
			Message:   []string{"message", "msg", "event", "record.message"},
			Promoted:  nil,
			Exception: []string{"exception", "exc_info", "error.stack_trace", "record.exception"},
		},
		Placeholder: "—",
		Levels: map[string]LevelStyle{
			"debug":    {Icon: "◌", Style: "debug", Aliases: []string{"trace"}},
			"info":     {Icon: "●", Style: "info", Aliases: []string{"notice"}},
			"warning":  {Icon: "▲", Style: "warning", Aliases: []string{"warn"}},
			"error":    {Icon: "✖", Style: "error", Aliases: []string{"err", "fatal", "panic"}},
			"critical": {Icon: "‼", Style: "critical", Aliases: []string{"crit", "alert", "emergency"}},
			"unknown":  {Icon: "◇", Style: "unknown"},
		},
	}
}

// Load reads the config file at path (or the default location when path is
// empty), layering file values over the defaults. A missing file is not an
// error; a present but unparseable one is.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw Config
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	merge(&cfg, raw)
	return cfg, nil
}

// merge layers user-provided values over the defaults. Empty lists and an
// empty placeholder keep the default; per-level tables replace their default
// entry wholesale.
func merge(cfg *Config, raw Config) {
	if len(raw.Keys.Timestamp) > 0 {
		cfg.Keys.Timestamp = raw.Keys.Timestamp
	}
	if len(raw.Keys.Level) > 0 {
		cfg.Keys.Level = raw.Keys.Level
	}
	if len(raw.Keys.Logger) > 0 {
		cfg.Keys.Logger = raw.Keys.Logger
	}
	if len(raw.Keys.Message) > 0 {
		cfg.Keys.Message = raw.Keys.Message
	}
	if len(raw.Keys.Promoted) > 0 {
		cfg.Keys.Promoted = raw.Keys.Promoted
	}
	if len(raw.Keys.Exception) > 0 {
		cfg.Keys.Exception = raw.Keys.Exception
	}
	if strings.TrimSpace(raw.Placeholder) != "" {
		cfg.Placeholder = raw.Placeholder
	}
	for name, style := range raw.Levels {
		cfg.Levels[strings.ToLower(name)] = style
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
