package main

import (
	"flag"
	"fmt"

	"chosenoffset.com/raysight/internal/audio"
	"chosenoffset.com/raysight/internal/game"
	"chosenoffset.com/raysight/internal/logger"
	"chosenoffset.com/raysight/internal/render"
	ebitenrender "chosenoffset.com/raysight/internal/render/ebiten"
	"chosenoffset.com/raysight/internal/render/snapshot"
	"chosenoffset.com/raysight/internal/render/terminal"
	"chosenoffset.com/raysight/internal/simulation"
)

func main() {
	configPath := flag.String("config", "raysight.yaml", "Path to config YAML file (missing file uses defaults)")
	backend := flag.String("backend", "", "Rendering backend: ebiten, terminal or snapshot")
	seed := flag.Int64("seed", 0, "Level seed (default: random based on current time)")
	snapshotPath := flag.String("snapshot", "", "Render headless and write the final frame to this PNG")
	frames := flag.Int("frames", 1, "Frames simulated before the snapshot is written")
	logLevel := flag.String("log-level", "", "Log level: DEBUG, INFO, WARN or ERROR")
	flag.Parse()

	config, err := simulation.LoadConfig(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Flags win over the file and the environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			config.Render.Backend = render.Backend(*backend)
		case "seed":
			config.Generator.Seed = *seed
		case "snapshot":
			config.Render.Backend = render.BackendSnapshot
			config.Render.Snapshot.Path = *snapshotPath
		case "frames":
			config.Render.Snapshot.Frames = *frames
		case "log-level":
			config.Logging.Level = *logLevel
		}
	})
	if err := config.Validate(); err != nil {
		logger.Fatalf("Invalid flags: %v", err)
	}

	// The terminal backend owns the screen; log to the file instead
	if config.Render.Backend == render.BackendTerminal && config.Logging.ConsoleEnabled {
		config.Logging.ConsoleEnabled = false
		config.Logging.FileEnabled = true
	}

	if err := logger.Initialize(config.Logging); err != nil {
		logger.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Info("Starting raysight",
		"backend", config.Render.Backend,
		"width", config.Screen.Width,
		"height", config.Screen.Height)

	if err := run(config); err != nil {
		logger.Fatalf("%v", err)
	}
	logger.Info("Stopped")
}

func run(config *simulation.Config) error {
	sounds := audio.NewPlayer(config.AudioConfig())
	if config.Render.Backend != render.BackendSnapshot {
		if err := sounds.Init(); err != nil {
			logger.Warning("Audio disabled", "error", err)
		}
	}
	defer sounds.Close()

	var (
		renderer render.Renderer
		input    render.InputManager
		engine   render.Engine
	)

	switch config.Render.Backend {
	case render.BackendTerminal:
		screen, err := terminal.NewScreen()
		if err != nil {
			return err
		}
		// RunGame starts the screen and restores it on return
		term := terminal.New(screen, config.Screen.Width, config.Screen.Height)
		renderer, input, engine = term, term, term

	case render.BackendSnapshot:
		shot := snapshot.New(snapshot.Options{
			Path:     config.Render.Snapshot.Path,
			Frames:   config.Render.Snapshot.Frames,
			FontPath: config.Render.Snapshot.FontPath,
			FontSize: config.Render.Snapshot.FontSize,
			Logger:   logger.Logger(),
		})
		shot.Aim(config.Render.Snapshot.AimX, config.Render.Snapshot.AimY)
		shot.Press(config.SnapshotKeys()...)
		renderer, input, engine = shot, shot, shot

	default:
		renderer = ebitenrender.NewRenderer()
		input = ebitenrender.NewInputManager()
		engine = ebitenrender.NewEngine()
	}

	manager := game.NewManager(config.GeneratorConfig(), config.GameConfig(), renderer, input, sounds)
	if err := manager.Start(); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	engine.SetWindowSize(config.Screen.Width, config.Screen.Height)
	engine.SetWindowTitle(fmt.Sprintf("%s - seed %d", config.Screen.Title, manager.Game.Level.Seed))
	engine.SetWindowResizable(true)
	engine.SetTPS(config.Screen.TPS)

	if err := engine.RunGame(manager); err != nil {
		return fmt.Errorf("game loop failed: %w", err)
	}

	if config.Render.Backend == render.BackendSnapshot {
		logger.Info("Snapshot written", "path", config.Render.Snapshot.Path, "frames", config.Render.Snapshot.Frames)
	}
	return nil
}
