// Package config loads pairquest settings from a TOML file.
//
// Values from the file become the defaults for command-line flags, so an
// explicit flag always wins. A missing file at the default location is not
// an error; every field then takes its built-in default.
//
// Example config.toml:
//
//	[generate]
//	count = 500
//	seed = 7
//	integer = true
//
//	[frame]
//	width = 1024
//	height = 768
//	padding = 20
//
//	[bench]
//	sizes = [100, 1000, 10000]
//	brute_limit = 20000
//
//	[server]
//	addr = ":8080"
//	redis_url = "redis://localhost:6379/0"
//	cache_ttl = "1h"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pairquest/pkg/errors"
	"github.com/matzehuels/pairquest/pkg/geom"
	"github.com/matzehuels/pairquest/pkg/points"
)

const (
	appName  = "pairquest"
	fileName = "config.toml"
)

// Config is the full settings file.
type Config struct {
	Generate Generate `toml:"generate"`
	Frame    Frame    `toml:"frame"`
	Bench    Bench    `toml:"bench"`
	Server   Server   `toml:"server"`
}

// Generate holds random point-set defaults.
type Generate struct {
	Count   int    `toml:"count"`
	Seed    uint64 `toml:"seed"`
	Integer bool   `toml:"integer"`
}

// Frame is the drawing canvas. Generated points stay Padding away from
// its edges.
type Frame struct {
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
	Padding float64 `toml:"padding"`
}

// Bench configures the size sweep.
type Bench struct {
	Sizes []int `toml:"sizes"`

	// BruteLimit is the largest size brute force is run at.
	BruteLimit int `toml:"brute_limit"`
}

// Server configures the HTTP server.
type Server struct {
	Addr      string        `toml:"addr"`
	RedisURL  string        `toml:"redis_url"`
	KeyPrefix string        `toml:"key_prefix"`
	CacheTTL  time.Duration `toml:"cache_ttl"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Generate: Generate{Count: points.DefaultCount, Seed: points.DefaultSeed},
		Frame:    Frame{Width: points.DefaultWidth, Height: points.DefaultHeight, Padding: points.DefaultPadding},
		Bench: Bench{
			Sizes:      []int{10, 100, 1_000, 10_000, 100_000},
			BruteLimit: 20_000,
		},
		Server: Server{
			Addr:      ":8080",
			KeyPrefix: "pairquest:",
			CacheTTL:  time.Hour,
		},
	}
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/pairquest/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the config at path over the defaults. An empty path means
// DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	if c.Generate.Count < 0 || c.Generate.Count > points.MaxCount {
		return errors.New(errors.ErrCodeInvalidInput, "generate.count must be between 0 and %d", points.MaxCount)
	}
	if c.Frame.Width <= 0 || c.Frame.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frame width and height must be positive")
	}
	if c.Frame.Padding < 0 || 2*c.Frame.Padding >= min(c.Frame.Width, c.Frame.Height) {
		return errors.New(errors.ErrCodeInvalidInput, "frame.padding must leave room inside the frame")
	}
	if slices.ContainsFunc(c.Bench.Sizes, func(n int) bool { return n < 2 }) {
		return errors.New(errors.ErrCodeInvalidInput, "bench.sizes must all be at least 2")
	}
	if c.Server.CacheTTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.cache_ttl must not be negative")
	}
	return nil
}

// Bounds returns the padded rectangle points are generated in.
func (f Frame) Bounds() geom.Rect {
	return points.Frame(f.Width, f.Height, f.Padding)
}
