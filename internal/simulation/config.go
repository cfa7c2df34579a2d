// Package simulation provides the run configuration: screen, level
// generation, sight cone, viewer motion, overlays, audio, rendering and
// logging. Values are loaded from YAML on top of the reference defaults.
package simulation

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/raysight/internal/audio"
	"chosenoffset.com/raysight/internal/core/shadows"
	"chosenoffset.com/raysight/internal/game"
	"chosenoffset.com/raysight/internal/logger"
	"chosenoffset.com/raysight/internal/render"
	"chosenoffset.com/raysight/internal/world/room"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all settings for a run
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Generator GeneratorConfig `yaml:"generator"`
	Sight     SightConfig     `yaml:"sight"`
	Player    PlayerConfig    `yaml:"player"`
	Overlay   OverlayConfig   `yaml:"overlay"`
	Audio     AudioConfig     `yaml:"audio"`
	Render    RenderConfig    `yaml:"render"`
	Logging   logger.Config   `yaml:"logging"`
}

// ScreenConfig defines the logical screen, which is also the map size
type ScreenConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"` // Ticks per second
	Title  string `yaml:"title"`
}

// GeneratorConfig defines level generation
type GeneratorConfig struct {
	WallDistance  int   `yaml:"wall_distance"`  // Spans at or below this are never split
	WallWidth     int   `yaml:"wall_width"`     // Wall thickness
	DoorGap       int   `yaml:"door_gap"`       // Door opening width
	VerticalFirst bool  `yaml:"vertical_first"` // Orientation of the first split
	MaxWalls      int   `yaml:"max_walls"`      // 0 = unbounded
	Seed          int64 `yaml:"seed"`           // 0 = time-based
}

// SightConfig defines the visibility cone
type SightConfig struct {
	FOV   float32 `yaml:"fov"`   // Half-angle in radians
	Reach float32 `yaml:"reach"` // 0 = screen diagonal
	Nudge float32 `yaml:"nudge"` // Apex offset ahead of the viewer
}

// PlayerConfig defines the viewer box and its motion
type PlayerConfig struct {
	Width    float32 `yaml:"width"`
	Height   float32 `yaml:"height"`
	Run      float32 `yaml:"run"`
	Friction float32 `yaml:"friction"`
}

// OverlayConfig defines the map and diagnostics overlays
type OverlayConfig struct {
	ShowMap    bool `yaml:"show_map"`
	ShowStats  bool `yaml:"show_stats"`
	NodeRadius int  `yaml:"node_radius"`
	DoorRadius int  `yaml:"door_radius"`
}

// AudioConfig defines the door chime
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Frequency  float64 `yaml:"frequency"`
	DurationMS int     `yaml:"duration_ms"`
	Volume     float64 `yaml:"volume"`
}

// RenderConfig selects the backend and headless snapshot settings
type RenderConfig struct {
	Backend  render.Backend `yaml:"backend"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// SnapshotConfig drives the headless backend
type SnapshotConfig struct {
	Path     string   `yaml:"path"`
	Frames   int      `yaml:"frames"`
	FontPath string   `yaml:"font_path"`
	FontSize float64  `yaml:"font_size"`
	AimX     int      `yaml:"aim_x"` // Cursor position during the run
	AimY     int      `yaml:"aim_y"`
	Keys     []string `yaml:"keys"` // Held for the whole run, e.g. [w, d]
}

// DefaultConfig returns the reference values
func DefaultConfig() *Config {
	return &Config{
		Screen: ScreenConfig{
			Width:  1536,
			Height: 768,
			TPS:    60,
			Title:  "raysight",
		},
		Generator: GeneratorConfig{
			WallDistance:  500,
			WallWidth:     10,
			DoorGap:       150,
			VerticalFirst: true,
		},
		Sight: SightConfig{
			FOV:   0.5,
			Nudge: 20 * 0.75,
		},
		Player: PlayerConfig{
			Width:    20,
			Height:   30,
			Run:      4,
			Friction: 0.75,
		},
		Overlay: OverlayConfig{
			ShowMap:    true,
			ShowStats:  true,
			NodeRadius: 10,
			DoorRadius: 10,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Frequency:  880,
			DurationMS: 50,
			Volume:     0.5,
		},
		Render: RenderConfig{
			Backend: render.BackendEbiten,
			Snapshot: SnapshotConfig{
				Path:     "raysight.png",
				Frames:   1,
				FontSize: 12,
				AimX:     1536,
				AimY:     384,
			},
		},
		Logging: logger.DefaultConfig(),
	}
}

// LoadConfig loads config from a YAML file over the defaults, applies
// environment overrides and validates the result. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Defaults
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides the config from RAYSIGHT_SEED, RAYSIGHT_FOV,
// RAYSIGHT_BACKEND and the LOG_* variables.
func (c *Config) ApplyEnv() error {
	if seed := os.Getenv("RAYSIGHT_SEED"); seed != "" {
		v, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: RAYSIGHT_SEED %q: %v", ErrInvalidConfig, seed, err)
		}
		c.Generator.Seed = v
	}

	if fov := os.Getenv("RAYSIGHT_FOV"); fov != "" {
		v, err := strconv.ParseFloat(fov, 32)
		if err != nil {
			return fmt.Errorf("%w: RAYSIGHT_FOV %q: %v", ErrInvalidConfig, fov, err)
		}
		c.Sight.FOV = float32(v)
	}

	if backend := os.Getenv("RAYSIGHT_BACKEND"); backend != "" {
		c.Render.Backend = render.Backend(backend)
	}

	c.Logging = c.Logging.ApplyEnv()
	return nil
}

// Validate checks every value the run depends on
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Screen.Width > 1 && c.Screen.Height > 1, "screen must be at least 2x2, got %dx%d", c.Screen.Width, c.Screen.Height)
	check(c.Screen.TPS > 0, "tps must be positive, got %d", c.Screen.TPS)

	check(c.Generator.WallDistance >= 2, "wall_distance must be at least 2, got %d", c.Generator.WallDistance)
	check(c.Generator.WallWidth > 0, "wall_width must be positive, got %d", c.Generator.WallWidth)
	check(c.Generator.DoorGap >= 2, "door_gap must be at least 2, got %d", c.Generator.DoorGap)
	check(c.Generator.MaxWalls >= 0, "max_walls must not be negative, got %d", c.Generator.MaxWalls)

	check(0 < c.Sight.FOV && c.Sight.FOV < math.Pi/2, "fov must be in (0, pi/2), got %f", c.Sight.FOV)
	diagonal := math.Hypot(float64(c.Screen.Width), float64(c.Screen.Height))
	check(c.Sight.Reach == 0 || float64(c.Sight.Reach) >= diagonal,
		"reach must be 0 or at least the screen diagonal %.0f, got %f", diagonal, c.Sight.Reach)

	check(c.Player.Width > 0 && c.Player.Height > 0, "player size must be positive")
	check(c.Player.Run >= 0, "run must not be negative, got %f", c.Player.Run)
	check(0 <= c.Player.Friction && c.Player.Friction < 1, "friction must be in [0, 1), got %f", c.Player.Friction)

	check(c.Overlay.NodeRadius >= 0 && c.Overlay.DoorRadius >= 0, "overlay radii must not be negative")

	if c.Audio.Enabled {
		check(c.Audio.SampleRate > 0, "sample_rate must be positive, got %d", c.Audio.SampleRate)
		check(0 < c.Audio.Frequency && c.Audio.Frequency < float64(c.Audio.SampleRate)/2,
			"frequency must be in (0, sample_rate/2), got %f", c.Audio.Frequency)
		check(c.Audio.DurationMS > 0, "duration_ms must be positive, got %d", c.Audio.DurationMS)
		check(0 <= c.Audio.Volume && c.Audio.Volume <= 1, "volume must be in [0, 1], got %f", c.Audio.Volume)
	}

	check(c.Render.Backend.Valid(), "unknown backend %q", c.Render.Backend)
	check(c.Render.Snapshot.Frames >= 0, "snapshot frames must not be negative, got %d", c.Render.Snapshot.Frames)
	for _, name := range c.Render.Snapshot.Keys {
		_, ok := render.ParseKey(name)
		check(ok, "unknown snapshot key %q", name)
	}

	return errors.Join(errs...)
}

// GeneratorConfig converts to the level generator's configuration
func (c *Config) GeneratorConfig() room.GeneratorConfig {
	return room.GeneratorConfig{
		Width:         c.Screen.Width,
		Height:        c.Screen.Height,
		WallDistance:  c.Generator.WallDistance,
		WallWidth:     c.Generator.WallWidth,
		DoorGap:       c.Generator.DoorGap,
		VerticalFirst: c.Generator.VerticalFirst,
		MaxWalls:      c.Generator.MaxWalls,
		Seed:          c.Generator.Seed,
	}
}

// SnapshotKeys returns the keys the headless run holds down. Unknown names
// are rejected by Validate and skipped here.
func (c *Config) SnapshotKeys() []render.Key {
	var keys []render.Key
	for _, name := range c.Render.Snapshot.Keys {
		if k, ok := render.ParseKey(name); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// CasterConfig converts to the visibility caster's configuration
func (c *Config) CasterConfig() shadows.CasterConfig {
	cfg := shadows.DefaultCasterConfig(c.Screen.Width, c.Screen.Height)
	cfg.FOV = c.Sight.FOV
	cfg.Nudge = c.Sight.Nudge
	if c.Sight.Reach > 0 {
		cfg.Reach = c.Sight.Reach
	}
	return cfg
}

// MotionConfig converts to the motion integrator's configuration
func (c *Config) MotionConfig() game.MotionConfig {
	cfg := game.DefaultMotionConfig(c.Screen.Width)
	cfg.Run = c.Player.Run
	cfg.Friction = c.Player.Friction
	return cfg
}

// GameConfig converts to the frame loop's configuration
func (c *Config) GameConfig() game.Config {
	return game.Config{
		Width:        c.Screen.Width,
		Height:       c.Screen.Height,
		Motion:       c.MotionConfig(),
		Caster:       c.CasterConfig(),
		PlayerWidth:  c.Player.Width,
		PlayerHeight: c.Player.Height,
		NodeRadius:   c.Overlay.NodeRadius,
		DoorRadius:   c.Overlay.DoorRadius,
		ShowMap:      c.Overlay.ShowMap,
		ShowStats:    c.Overlay.ShowStats,
	}
}

// AudioConfig converts to the chime player's configuration
func (c *Config) AudioConfig() audio.Config {
	return audio.Config{
		Enabled:    c.Audio.Enabled,
		SampleRate: c.Audio.SampleRate,
		Frequency:  c.Audio.Frequency,
		Duration:   time.Duration(c.Audio.DurationMS) * time.Millisecond,
		Volume:     c.Audio.Volume,
	}
}
