package game

import (
	"fmt"
	"math/rand"

	"chosenoffset.com/raysight/internal/logger"
	"chosenoffset.com/raysight/internal/render"
	"chosenoffset.com/raysight/internal/world/room"
)

// Manager owns level generation and the running Game. It handles the keys
// that outlive a level (quit and regenerate) and delegates the rest.
type Manager struct {
	GenConfig  room.GeneratorConfig
	GameConfig Config
	Renderer   render.Renderer
	InputMgr   render.InputManager
	Sounds     Sounds
	Game       *Game

	// Seeds for regenerated levels are drawn from here so a run started with
	// a fixed seed replays the same sequence of levels.
	seeds       *rand.Rand
	Generations int
}

// NewManager creates a new game manager.
func NewManager(genCfg room.GeneratorConfig, gameCfg Config, r render.Renderer, input render.InputManager, sounds Sounds) *Manager {
	return &Manager{
		GenConfig:  genCfg,
		GameConfig: gameCfg,
		Renderer:   r,
		InputMgr:   input,
		Sounds:     sounds,
	}
}

// Start generates the first level and creates the game on it.
func (m *Manager) Start() error {
	gen := room.NewGenerator(m.GenConfig)
	m.seeds = rand.New(rand.NewSource(gen.Seed()))

	level, err := m.generate(gen)
	if err != nil {
		return err
	}

	m.Game = New(m.GameConfig, level, m.Renderer, m.InputMgr, m.Sounds)
	return nil
}

func (m *Manager) generate(gen *room.Generator) (*room.Level, error) {
	level, err := gen.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate level with seed %d: %w", gen.Seed(), err)
	}
	m.Generations++

	logger.Info("level generated",
		"seed", level.Seed,
		"rooms", len(level.Rooms),
		"doors", len(level.Doors),
		"walls", len(level.Walls),
		"depth", level.Depth)
	return level, nil
}

// Regenerate replaces the level with a fresh one. On failure the current
// level stays in place.
func (m *Manager) Regenerate() error {
	if m.Game == nil {
		return m.Start()
	}

	cfg := m.GenConfig
	cfg.Seed = m.seeds.Int63()
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}

	level, err := m.generate(room.NewGenerator(cfg))
	if err != nil {
		return err
	}
	m.Game.SetLevel(level)
	return nil
}

// Update updates the game state.
func (m *Manager) Update() error {
	if m.InputMgr.IsKeyPressed(render.KeyEscape) {
		return render.ErrQuit
	}

	if m.InputMgr.IsKeyJustPressed(render.KeyR) {
		if err := m.Regenerate(); err != nil {
			logger.Warningf("Regeneration failed, keeping the current level: %v", err)
		}
	}

	if m.Game == nil {
		return nil
	}
	return m.Game.Update()
}

// Draw renders the current game.
func (m *Manager) Draw(screen render.Image) {
	if m.Game == nil {
		screen.Fill(colorBackground)
		return
	}
	m.Game.Draw(screen)
}

// Layout returns the logical screen size.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.GameConfig.Width, m.GameConfig.Height
}
