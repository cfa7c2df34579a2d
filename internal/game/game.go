package game

import (
	"chosenoffset.com/raysight/internal/core/shadows"
	"chosenoffset.com/raysight/internal/logger"
	"chosenoffset.com/raysight/internal/render"
	"chosenoffset.com/raysight/internal/world/room"
)

// Game holds the per-level state of the frame loop.
type Game struct {
	cfg      Config
	Renderer render.Renderer
	InputMgr render.InputManager
	Sounds   Sounds

	Level  *room.Level
	links  []room.Link
	Pose   Pose
	caster *shadows.Caster
	fan    []shadows.Point

	ShowMap   bool
	ShowStats bool

	// Room the viewer currently stands in, or -1
	Room int

	// Door the viewer currently stands in, or -1
	inDoor       int
	DoorsCrossed int
	Ticks        int
}

// New creates a game on level with the viewer at the center of the map
// facing east.
func New(cfg Config, level *room.Level, r render.Renderer, input render.InputManager, sounds Sounds) *Game {
	if sounds == nil {
		sounds = silence{}
	}
	g := &Game{
		cfg:       cfg,
		Renderer:  r,
		InputMgr:  input,
		Sounds:    sounds,
		caster:    shadows.NewCaster(cfg.Caster),
		ShowMap:   cfg.ShowMap,
		ShowStats: cfg.ShowStats,
	}
	g.SetLevel(level)
	return g
}

// SetLevel swaps in a new level and resets the viewer
func (g *Game) SetLevel(level *room.Level) {
	g.Level = level
	g.links = level.Links(g.cfg.NodeRadius)
	g.Pose = Pose{Position: level.Center()}
	g.inDoor = -1
	g.Room = level.RoomAt(g.Pose.Position)
	g.fan = g.caster.Cast(level.Walls, g.Pose.Position, g.Pose.Direction)
}

// Config returns the frame loop configuration
func (g *Game) Config() Config {
	return g.cfg
}

// Fan returns the visibility polygon of the last tick. It is only valid
// until the next Update.
func (g *Game) Fan() []shadows.Point {
	return g.fan
}

// Stats returns the caster diagnostics of the last tick
func (g *Game) Stats() shadows.Stats {
	return g.caster.Stats()
}

// Update advances the viewer one tick and recomputes its visibility fan.
func (g *Game) Update() error {
	g.Ticks++

	if g.InputMgr.IsKeyJustPressed(render.KeyM) {
		g.ShowMap = !g.ShowMap
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyF1) {
		g.ShowStats = !g.ShowStats
	}

	x, y := g.InputMgr.GetCursorPosition()
	mouse := shadows.Point{X: float32(x), Y: float32(y)}

	g.Pose = Step(IntentFrom(g.InputMgr), mouse, g.Pose, g.cfg.Motion)
	g.fan = g.caster.Cast(g.Level.Walls, g.Pose.Position, g.Pose.Direction)
	g.Room = g.Level.RoomAt(g.Pose.Position)

	g.updateDoor()
	return nil
}

// updateDoor plays the door cue once per entry into a door gap
func (g *Game) updateDoor() {
	door := g.Level.DoorAt(g.Pose.Position, float32(g.Level.DoorGap)/2)
	if door >= 0 && door != g.inDoor {
		g.DoorsCrossed++
		g.Sounds.PlayDoor()
		logger.Debug("entered door", "door", door, "x", g.Pose.Position.X, "y", g.Pose.Position.Y)
	}
	g.inDoor = door
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
