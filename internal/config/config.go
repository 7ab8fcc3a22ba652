// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads placesbench settings from defaults, an optional
// config file, PLACESBENCH_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gogpu/placesbench/geo"
	"github.com/gogpu/placesbench/mapview"
	"github.com/gogpu/placesbench/perf"
	"github.com/gogpu/placesbench/places"
)

// EnvPrefix prefixes every environment variable, e.g. PLACESBENCH_POINTS.
const EnvPrefix = "PLACESBENCH"

// Validation errors.
var (
	ErrInvalidPoints   = errors.New("config: points must not be negative")
	ErrInvalidWindow   = errors.New("config: window must be at least 1")
	ErrInvalidSize     = errors.New("config: width and height must be positive")
	ErrInvalidFrames   = errors.New("config: frames must be at least 1")
	ErrInvalidZoom     = errors.New("config: zoom out of range")
	ErrInvalidMode     = errors.New("config: unknown mode")
	ErrInvalidThrottle = errors.New("config: throttle must not be negative")
	ErrInvalidRadius   = errors.New("config: group radius must not be negative")
)

// Config holds the benchmark settings.
type Config struct {
	Points   int     `mapstructure:"points"`
	Seed     uint64  `mapstructure:"seed"`
	Window   int     `mapstructure:"window"`
	Width    int     `mapstructure:"width"`
	Height   int     `mapstructure:"height"`
	Zoom     float64 `mapstructure:"zoom"`
	Headless bool    `mapstructure:"headless"`
	Frames   int     `mapstructure:"frames"`
	Output   string  `mapstructure:"output"`
	Report   string  `mapstructure:"report"`
	LogLevel string  `mapstructure:"log-level"`

	// Mode is the overlay measured first ("Places" or "GroupedPlaces").
	Mode        string        `mapstructure:"mode"`
	TopBar      bool          `mapstructure:"top-bar"`
	Throttle    time.Duration `mapstructure:"throttle"`
	GroupRadius float64       `mapstructure:"group-radius"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Points:   perf.DefaultCount,
		Seed:     perf.DefaultSeed,
		Window:   perf.DefaultWindow,
		Width:    1024,
		Height:   768,
		Zoom:     mapview.DefaultZoom,
		Frames:   300,
		LogLevel: "info",

		Mode:        perf.Ungrouped.String(),
		TopBar:      true,
		Throttle:    perf.DefaultThrottle,
		GroupRadius: places.DefaultGroupRadius,
	}
}

// Flags returns the command-line flag set, with defaults from Default.
func Flags(name string) *pflag.FlagSet {
	d := Default()
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "config file (json, yaml or toml)")
	fs.Int("points", d.Points, "number of generated places")
	fs.Uint64("seed", d.Seed, "random seed for the generated places")
	fs.Int("window", d.Window, "frames in the rolling average")
	fs.Int("width", d.Width, "window or image width")
	fs.Int("height", d.Height, "window or image height")
	fs.Float64("zoom", d.Zoom, "initial map zoom level")
	fs.Bool("headless", d.Headless, "render offscreen and print the averages")
	fs.Int("frames", d.Frames, "frames per mode in headless mode")
	fs.String("output", d.Output, "headless: write the last frame of each mode to this PNG path prefix")
	fs.String("report", d.Report, "headless: write a JSON report to this path")
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn, error")
	fs.String("mode", d.Mode, "overlay measured first: Places or GroupedPlaces")
	fs.Bool("top-bar", d.TopBar, "draw the header above the map")
	fs.Duration("throttle", d.Throttle, "delay between frames when continuous repaint is off")
	fs.Float64("group-radius", d.GroupRadius, "GroupedPlaces merge radius in pixels, 0 disables grouping")
	return fs
}

// Load parses args with fs and merges them with the config file and
// environment into a validated Config.
func Load(fs *pflag.FlagSet, args []string) (Config, error) {
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: parse flags: %w", err)
	}

	v := viper.New()
	d := Default()
	v.SetDefault("points", d.Points)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("window", d.Window)
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("zoom", d.Zoom)
	v.SetDefault("headless", d.Headless)
	v.SetDefault("frames", d.Frames)
	v.SetDefault("output", d.Output)
	v.SetDefault("report", d.Report)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("mode", d.Mode)
	v.SetDefault("top-bar", d.TopBar)
	v.SetDefault("throttle", d.Throttle)
	v.SetDefault("group-radius", d.GroupRadius)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("config: bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the settings.
func (c Config) Validate() error {
	switch {
	case c.Points < 0:
		return ErrInvalidPoints
	case c.Window < 1:
		return ErrInvalidWindow
	case c.Width <= 0 || c.Height <= 0:
		return ErrInvalidSize
	case c.Headless && c.Frames < 1:
		return ErrInvalidFrames
	case c.Zoom < geo.MinZoom || c.Zoom > geo.MaxZoom:
		return ErrInvalidZoom
	case c.Throttle < 0:
		return ErrInvalidThrottle
	case c.GroupRadius < 0:
		return ErrInvalidRadius
	}
	if _, err := perf.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMode, err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// StartMode returns the overlay measured first.
func (c Config) StartMode() perf.Mode {
	m, _ := perf.ParseMode(c.Mode)
	return m
}

// DriverOptions returns the frame driver settings.
func (c Config) DriverOptions() []perf.DriverOption {
	return []perf.DriverOption{
		perf.WithTopBar(c.TopBar),
		perf.WithThrottle(c.Throttle),
		perf.WithGroupRadius(c.GroupRadius),
	}
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: invalid log level %q", s)
	}
	return l, nil
}
