// Package config holds the settings of the framegen command.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Bersaelor/framecad"
	"github.com/Bersaelor/framecad/frame"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the YAML configuration file.
type Config struct {
	// ColorMap maps part names to stroke colours.
	ColorMap map[string]string `yaml:"colorMap"`
	// Reference is the size the drawings are drafted at.
	Reference frame.SizeParameters `yaml:"reference"`

	Tolerance   float64 `yaml:"tolerance"`
	MergeHinge  bool    `yaml:"mergeHinge"`
	Concurrency int     `yaml:"concurrency,omitempty"`

	Log   LogConfig   `yaml:"log"`
	Cache CacheConfig `yaml:"cache"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// CacheConfig locates the part cache.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		ColorMap:  frame.DefaultColorMap(),
		Reference: frame.SizeParameters{BridgeSize: 18, GlasWidth: 50, GlasHeight: 40},
		Tolerance: framecad.DefaultTolerance,
		Log:       LogConfig{Level: "warn", Format: "text"},
		Cache:     CacheConfig{Path: defaultCachePath()},
	}
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "framegen.db"
	}
	return filepath.Join(dir, "framegen", "parts.db")
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	default:
		// A colour map in the file replaces the default one.
		cfg.ColorMap = nil
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
		if cfg.ColorMap == nil {
			cfg.ColorMap = frame.DefaultColorMap()
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("FRAMEGEN_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("FRAMEGEN_CACHE"); v != "" {
		c.Cache.Path = v
	}
	if v := os.Getenv("FRAMEGEN_TOLERANCE"); v != "" {
		tol, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: FRAMEGEN_TOLERANCE: %w", err)
		}
		c.Tolerance = tol
	}
	return nil
}

// Validate checks the tolerance, the reference size and the log settings.
func (c *Config) Validate() error {
	var errs []error
	if c.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("%w: tolerance %v must be positive", ErrInvalid, c.Tolerance))
	}
	if err := c.Reference.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: reference: %w", ErrInvalid, err))
	}
	if _, err := c.Log.level(); err != nil {
		errs = append(errs, err)
	}
	if f := c.Log.Format; f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("%w: log format %q", ErrInvalid, f))
	}
	if len(c.ColorMap) == 0 {
		errs = append(errs, fmt.Errorf("%w: empty colour map", ErrInvalid))
	}
	return errors.Join(errs...)
}

// Options returns the pipeline options the configuration selects.
func (c *Config) Options() []frame.Option {
	opts := []frame.Option{
		frame.WithTolerance(c.Tolerance),
		frame.WithMergeHinge(c.MergeHinge),
	}
	if c.Concurrency > 0 {
		opts = append(opts, frame.WithConcurrency(c.Concurrency))
	}
	return opts
}

// NewLogger builds the configured handler writing to w.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.Log.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func (l LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, l.Level)
	}
	return level, nil
}
