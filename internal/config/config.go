// Package config loads the editor settings from a TOML file, with
// environment overrides for the values most often tweaked.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"delaunay-layers/internal/app"
	"delaunay-layers/internal/diagram"
	"delaunay-layers/internal/stitch"
	"delaunay-layers/internal/views"
	"delaunay-layers/pkg/colorutil"
)

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("invalid configuration")

// AppName names the per-user config directory.
const AppName = "delaunay-layers"

// Duration is a time.Duration written as a string ("16ms") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config holds every tunable of the editor.
type Config struct {
	Canvas CanvasConfig `toml:"canvas"`
	Points PointConfig  `toml:"points"`
	Onion  OnionConfig  `toml:"onion"`
	Scene  SceneConfig  `toml:"scene"`
	Colors ColorConfig  `toml:"colors"`
}

// CanvasConfig is the default drawing surface size in pixels.
type CanvasConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// PointConfig controls point drawing and picking.
type PointConfig struct {
	Radius    float64 `toml:"radius"`
	HitRadius float64 `toml:"hit_radius"`
	LineWidth float64 `toml:"line_width"`
}

// OnionConfig controls the onion skin.
type OnionConfig struct {
	Depth     int       `toml:"depth"`
	Opacities []float64 `toml:"opacities"`
}

// SceneConfig controls the 3D view.
type SceneConfig struct {
	PlaneScale     float64  `toml:"plane_scale"`
	ElevationScale float64  `toml:"elevation_scale"`
	MarkerRadius   float64  `toml:"marker_radius"`
	FrameInterval  Duration `toml:"frame_interval"`
}

// ColorConfig holds "#rrggbb[aa]" or SVG color names.
type ColorConfig struct {
	Text     string `toml:"text"`
	Delaunay string `toml:"delaunay"`
	Voronoi  string `toml:"voronoi"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{Width: 1024, Height: 768},
		Points: PointConfig{Radius: 5, HitRadius: diagram.HitRadius, LineWidth: 1},
		Onion: OnionConfig{
			Depth:     app.DefaultOnionDepth,
			Opacities: append([]float64(nil), views.DefaultOnionOpacities...),
		},
		Scene: SceneConfig{
			PlaneScale:     stitch.DefaultPlaneScale,
			ElevationScale: stitch.DefaultElevationScale,
			MarkerRadius:   0.1,
			FrameInterval:  Duration{app.DefaultFrameInterval},
		},
		Colors: ColorConfig{
			Text:     colorutil.Hex(colorutil.Text),
			Delaunay: colorutil.Hex(colorutil.DelaunayLines),
			Voronoi:  colorutil.Hex(colorutil.VoronoiLines),
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// Load reads path over the defaults, then applies environment overrides
// and validates. An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case errors.Is(err, os.ErrNotExist):
			app.Logger().Debug("config file not found, using defaults", "path", path)
		case err != nil:
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		default:
			for _, key := range md.Undecoded() {
				app.Logger().Warn("unknown config key", "path", path, "key", key.String())
			}
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating the directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("save config %s: %w", path, err)
	}
	return nil
}

// Environment overrides.
const (
	EnvOnionDepth    = "DELAUNAY_LAYERS_ONION_DEPTH"
	EnvFrameInterval = "DELAUNAY_LAYERS_FRAME_INTERVAL"
	EnvCanvasWidth   = "DELAUNAY_LAYERS_WIDTH"
	EnvCanvasHeight  = "DELAUNAY_LAYERS_HEIGHT"
)

func (c *Config) applyEnv() {
	c.Onion.Depth = getEnvAsInt(EnvOnionDepth, c.Onion.Depth)
	c.Canvas.Width = getEnvAsInt(EnvCanvasWidth, c.Canvas.Width)
	c.Canvas.Height = getEnvAsInt(EnvCanvasHeight, c.Canvas.Height)
	if v := os.Getenv(EnvFrameInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Scene.FrameInterval = Duration{d}
		}
	}
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// Validate checks every value.
func (c Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	case c.Points.Radius <= 0:
		return fmt.Errorf("%w: point radius %v", ErrInvalid, c.Points.Radius)
	case c.Points.HitRadius <= 0:
		return fmt.Errorf("%w: hit radius %v", ErrInvalid, c.Points.HitRadius)
	case c.Points.LineWidth <= 0:
		return fmt.Errorf("%w: line width %v", ErrInvalid, c.Points.LineWidth)
	case c.Onion.Depth < 0:
		return fmt.Errorf("%w: onion depth %d", ErrInvalid, c.Onion.Depth)
	case len(c.Onion.Opacities) == 0:
		return fmt.Errorf("%w: empty onion opacity table", ErrInvalid)
	case c.Scene.PlaneScale <= 0 || c.Scene.ElevationScale <= 0:
		return fmt.Errorf("%w: scene scales %v/%v", ErrInvalid, c.Scene.PlaneScale, c.Scene.ElevationScale)
	case c.Scene.MarkerRadius <= 0:
		return fmt.Errorf("%w: marker radius %v", ErrInvalid, c.Scene.MarkerRadius)
	case c.Scene.FrameInterval.Duration <= 0:
		return fmt.Errorf("%w: frame interval %v", ErrInvalid, c.Scene.FrameInterval)
	}
	for i, o := range c.Onion.Opacities {
		if o <= 0 || o > 1 {
			return fmt.Errorf("%w: onion opacity %d = %v", ErrInvalid, i, o)
		}
		if i > 0 && o >= c.Onion.Opacities[i-1] {
			return fmt.Errorf("%w: onion opacities must fall with distance, %v after %v",
				ErrInvalid, o, c.Onion.Opacities[i-1])
		}
	}
	for name, v := range map[string]string{"text": c.Colors.Text, "delaunay": c.Colors.Delaunay, "voronoi": c.Colors.Voronoi} {
		if _, err := colorutil.ParseHex(v); err != nil {
			return fmt.Errorf("%w: color %s: %v", ErrInvalid, name, err)
		}
	}
	return nil
}

// ViewOptions converts the configuration for the views. Colors are
// assumed valid (see Validate).
func (c Config) ViewOptions() views.Options {
	opts := views.DefaultOptions()
	opts.Style.PointRadius = c.Points.Radius
	opts.Style.LineWidth = c.Points.LineWidth
	opts.Style.PointColor = mustColor(c.Colors.Text, opts.Style.PointColor)
	opts.Style.DelaunayColor = mustColor(c.Colors.Delaunay, opts.Style.DelaunayColor)
	opts.Style.VoronoiColor = mustColor(c.Colors.Voronoi, opts.Style.VoronoiColor)
	opts.HitRadius = c.Points.HitRadius
	opts.OnionOpacities = append([]float64(nil), c.Onion.Opacities...)
	opts.Lifter = stitch.Lifter{PlaneScale: c.Scene.PlaneScale, ElevationScale: c.Scene.ElevationScale}
	opts.MarkerRadius = c.Scene.MarkerRadius
	return opts
}

func mustColor(s string, fallback color.Color) color.Color {
	c, err := colorutil.ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}
