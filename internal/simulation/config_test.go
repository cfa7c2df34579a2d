package simulation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"chosenoffset.com/raysight/internal/render"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "raysight.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if config.Screen.Width != 1536 || config.Generator.WallDistance != 500 {
		t.Errorf("expected defaults, got screen %d, wall distance %d", config.Screen.Width, config.Generator.WallDistance)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
screen:
  width: 2048
  height: 1024
generator:
  seed: 42
  vertical_first: false
sight:
  fov: 0.8
audio:
  enabled: false
render:
  backend: terminal
logging:
  level: debug
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Screen.Width != 2048 || config.Screen.Height != 1024 {
		t.Errorf("screen = %dx%d, want 2048x1024", config.Screen.Width, config.Screen.Height)
	}
	if config.Screen.TPS != 60 {
		t.Errorf("TPS = %d, want the default 60", config.Screen.TPS)
	}
	if config.Generator.Seed != 42 || config.Generator.VerticalFirst {
		t.Errorf("generator = %+v", config.Generator)
	}
	if config.Generator.DoorGap != 150 {
		t.Errorf("DoorGap = %d, want the default 150", config.Generator.DoorGap)
	}
	if config.Sight.FOV != 0.8 {
		t.Errorf("FOV = %f, want 0.8", config.Sight.FOV)
	}
	if config.Audio.Enabled {
		t.Error("audio should be disabled")
	}
	if config.Render.Backend != render.BackendTerminal {
		t.Errorf("backend = %q, want terminal", config.Render.Backend)
	}
	if config.Logging.Level != "debug" || !config.Logging.ConsoleEnabled {
		t.Errorf("logging = %+v", config.Logging)
	}
}

func TestLoadConfigParseError(t *testing.T) {
	path := writeConfig(t, "screen: [not, a, map]\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("RAYSIGHT_SEED", "7")
	t.Setenv("RAYSIGHT_FOV", "0.25")
	t.Setenv("RAYSIGHT_BACKEND", "snapshot")
	t.Setenv("LOG_LEVEL", "WARN")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if config.Generator.Seed != 7 {
		t.Errorf("Seed = %d, want 7", config.Generator.Seed)
	}
	if config.Sight.FOV != 0.25 {
		t.Errorf("FOV = %f, want 0.25", config.Sight.FOV)
	}
	if config.Render.Backend != render.BackendSnapshot {
		t.Errorf("backend = %q, want snapshot", config.Render.Backend)
	}
	if config.Logging.Level != "WARN" {
		t.Errorf("log level = %q, want WARN", config.Logging.Level)
	}
}

func TestLoadConfigBadEnv(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"seed", "RAYSIGHT_SEED", "many"},
		{"fov", "RAYSIGHT_FOV", "wide"},
		{"backend", "RAYSIGHT_BACKEND", "opengl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig("")
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny screen", func(c *Config) { c.Screen.Width = 1 }},
		{"zero tps", func(c *Config) { c.Screen.TPS = 0 }},
		{"wall distance", func(c *Config) { c.Generator.WallDistance = 1 }},
		{"wall width", func(c *Config) { c.Generator.WallWidth = 0 }},
		{"door gap", func(c *Config) { c.Generator.DoorGap = -5 }},
		{"door gap without a center", func(c *Config) { c.Generator.DoorGap = 1 }},
		{"max walls", func(c *Config) { c.Generator.MaxWalls = -1 }},
		{"zero fov", func(c *Config) { c.Sight.FOV = 0 }},
		{"right angle fov", func(c *Config) { c.Sight.FOV = 1.6 }},
		{"negative reach", func(c *Config) { c.Sight.Reach = -1 }},
		{"reach inside the map", func(c *Config) { c.Sight.Reach = 900 }},
		{"player size", func(c *Config) { c.Player.Height = 0 }},
		{"friction", func(c *Config) { c.Player.Friction = 1 }},
		{"run", func(c *Config) { c.Player.Run = -1 }},
		{"node radius", func(c *Config) { c.Overlay.NodeRadius = -1 }},
		{"nyquist", func(c *Config) { c.Audio.Frequency = 30000 }},
		{"volume", func(c *Config) { c.Audio.Volume = 2 }},
		{"backend", func(c *Config) { c.Render.Backend = "vulkan" }},
		{"frames", func(c *Config) { c.Render.Snapshot.Frames = -1 }},
		{"snapshot key", func(c *Config) { c.Render.Snapshot.Keys = []string{"w", "jump"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidateIgnoresDisabledAudio(t *testing.T) {
	config := DefaultConfig()
	config.Audio.Enabled = false
	config.Audio.SampleRate = 0
	if err := config.Validate(); err != nil {
		t.Errorf("disabled audio should not be validated, got %v", err)
	}
}

func TestConverters(t *testing.T) {
	config := DefaultConfig()
	config.Generator.Seed = 99
	config.Sight.FOV = 0.4
	config.Player.Run = 6
	config.Overlay.ShowMap = false

	gen := config.GeneratorConfig()
	if gen.Width != 1536 || gen.Height != 768 || gen.Seed != 99 || gen.WallDistance != 500 || !gen.VerticalFirst {
		t.Errorf("GeneratorConfig() = %+v", gen)
	}

	g := config.GameConfig()
	if g.Caster.FOV != 0.4 {
		t.Errorf("caster FOV = %f, want 0.4", g.Caster.FOV)
	}
	if g.Caster.Reach < 1717 || g.Caster.Reach > 1718 {
		t.Errorf("caster reach = %f, want the screen diagonal", g.Caster.Reach)
	}
	if g.Motion.Run != 6 || g.Motion.Friction != 0.75 || g.Motion.Reach != 3072 {
		t.Errorf("motion = %+v", g.Motion)
	}
	if g.ShowMap || !g.ShowStats || g.PlayerWidth != 20 || g.PlayerHeight != 30 {
		t.Errorf("GameConfig() = %+v", g)
	}

	a := config.AudioConfig()
	if a.Duration != 50*time.Millisecond || a.SampleRate != 44100 || !a.Enabled {
		t.Errorf("AudioConfig() = %+v", a)
	}
}

func TestCasterConfigExplicitReach(t *testing.T) {
	config := DefaultConfig()
	config.Sight.Reach = 5000
	if got := config.CasterConfig().Reach; got != 5000 {
		t.Errorf("Reach = %f, want 5000", got)
	}
}

func TestValidateAcceptsSmallestDoorGap(t *testing.T) {
	config := DefaultConfig()
	config.Generator.DoorGap = 2
	if err := config.Validate(); err != nil {
		t.Errorf("door_gap 2 should validate, got %v", err)
	}
}

func TestSnapshotKeys(t *testing.T) {
	path := writeConfig(t, `
render:
  backend: snapshot
  snapshot:
    frames: 30
    keys: [w, D, f1]
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := []render.Key{render.KeyW, render.KeyD, render.KeyF1}
	got := config.SnapshotKeys()
	if len(got) != len(want) {
		t.Fatalf("SnapshotKeys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SnapshotKeys()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if config.Render.Snapshot.Frames != 30 || config.Render.Snapshot.AimX != 1536 {
		t.Errorf("snapshot = %+v", config.Render.Snapshot)
	}
}
