package game

import (
	"fmt"

	"chosenoffset.com/raysight/internal/core/shadows"
	"chosenoffset.com/raysight/internal/render"
)

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(colorBackground)

	g.drawPlayer(screen)
	g.drawWalls(screen)
	if g.ShowMap {
		g.drawMap(screen)
	}
	g.Renderer.FillPolygon(screen, g.fan, colorFan)
	if g.ShowStats {
		g.drawStats(screen)
	}
}

// PlayerOutline returns the corners of the viewer box, centered on the
// position and turned with the facing direction.
func (g *Game) PlayerOutline() [4]shadows.Point {
	p := g.Pose.Position
	w, h := g.cfg.PlayerWidth/2, g.cfg.PlayerHeight/2

	var corners [4]shadows.Point
	for i, offset := range [4]shadows.Point{{X: -w, Y: -h}, {X: w, Y: -h}, {X: w, Y: h}, {X: -w, Y: h}} {
		corners[i] = shadows.Rotate(p, shadows.Point{X: p.X + offset.X, Y: p.Y + offset.Y}, g.Pose.Direction)
	}
	return corners
}

func (g *Game) drawPlayer(screen render.Image) {
	corners := g.PlayerOutline()
	g.Renderer.FillPolygon(screen, corners[:], colorPlayer)
}

func (g *Game) drawWalls(screen render.Image) {
	for _, wall := range g.Level.Walls {
		g.Renderer.FillRect(screen, wall.X, wall.Y, wall.Width, wall.Height, colorWall)
	}
}

func (g *Game) drawMap(screen render.Image) {
	nodeRadius := float32(g.cfg.NodeRadius)
	for i, r := range g.Level.Rooms {
		node := r.Node(g.cfg.NodeRadius)
		g.Renderer.FillCircle(screen, node.X, node.Y, nodeRadius, colorNode)
		if i == g.Room {
			g.Renderer.StrokeCircle(screen, node.X, node.Y, nodeRadius+4, 2, colorCurrent)
		}
	}

	for _, link := range g.links {
		g.Renderer.StrokeLine(screen, link.From.X, link.From.Y, link.To.X, link.To.Y, 1, colorLink)
	}

	doorRadius := float32(g.cfg.DoorRadius)
	for _, door := range g.Level.Doors {
		g.Renderer.FillCircle(screen, float32(door.X), float32(door.Y), doorRadius, colorDoor)
	}
}

// StatsText returns the diagnostics overlay
func (g *Game) StatsText() string {
	stats := g.caster.Stats()
	return fmt.Sprintf("%d walls\n%d rays\n%d steps\n%.2f direction\nseed %d",
		stats.Walls, stats.Rays, stats.Steps, g.Pose.Direction, g.Level.Seed)
}

// FPSText returns the measured frame rate, or "" when the renderer does not
// measure one.
func (g *Game) FPSText() string {
	counter, ok := g.Renderer.(render.FrameCounter)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.0f fps", counter.ActualFPS())
}

func (g *Game) drawStats(screen render.Image) {
	const scale = 2
	if fps := g.FPSText(); fps != "" {
		g.Renderer.DrawText(screen, fps, 10, 10, colorStats, scale)
	}

	text := g.StatsText()
	w, h := g.Renderer.MeasureText(text, scale)
	g.Renderer.FillRect(screen, 6, 36, float32(w+8), float32(h+8), colorPanel)
	g.Renderer.DrawText(screen, text, 10, 40, colorStats, scale)
}
