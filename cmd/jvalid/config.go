package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// config holds the settings of a run, from defaults, a config file, and flags
// in increasing order of precedence.
type config struct {
	Verbose   bool   // log the diagnostics of each input
	Relaxed   bool   // accept comments and trailing commas
	MaxSize   int64  // maximum size of an input in bytes, after decompression
	LogFormat string // "console" or "json"
}

const defaultMaxSize = 64 << 20

func defaultConfig() config {
	return config{MaxSize: defaultMaxSize, LogFormat: "console"}
}

type fileConfig struct {
	Verbose   bool   `toml:"verbose"`
	Relaxed   bool   `toml:"relaxed"`
	MaxSize   int64  `toml:"max_size"`
	LogFormat string `toml:"log_format"`
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}
	if keys := meta.Undecoded(); len(keys) != 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return config{}, fmt.Errorf("load config: unknown keys: %s", strings.Join(names, ", "))
	}

	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}
	if meta.IsDefined("relaxed") {
		cfg.Relaxed = raw.Relaxed
	}
	if meta.IsDefined("max_size") {
		cfg.MaxSize = raw.MaxSize
	}
	if meta.IsDefined("log_format") {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(raw.LogFormat))
	}
	if err := cfg.check(); err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c config) check() error {
	if c.MaxSize <= 0 {
		return errors.New("max_size must be positive")
	}
	switch c.LogFormat {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}
}
