// Package snapshot runs the game headless for a fixed number of ticks and
// writes the final frame to a PNG file using gogpu/gg's software rasterizer.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"

	"github.com/gogpu/gg"

	"chosenoffset.com/raysight/internal/core/shadows"
	"chosenoffset.com/raysight/internal/render"
)

// Options configures a snapshot run
type Options struct {
	Path     string // PNG output path
	Frames   int    // Updates simulated before the frame is drawn
	FontPath string // TrueType font for text; text is skipped when empty
	FontSize float64
	Logger   *slog.Logger // Receives gg's diagnostics
}

// Snapshot is a render.Engine, render.Renderer and render.Image backed by a
// gg context. Input comes from a fixed script set before RunGame.
type Snapshot struct {
	opts   Options
	dc     *gg.Context
	width  int
	height int
	title  string
	err    error

	*Script
}

// New creates a snapshot engine
func New(opts Options) *Snapshot {
	if opts.Frames < 0 {
		opts.Frames = 0
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 12
	}
	if opts.Logger != nil {
		gg.SetLogger(opts.Logger)
	}
	return &Snapshot{
		opts:   opts,
		width:  1,
		height: 1,
		Script: NewScript(),
	}
}

// SetWindowSize sets the canvas size used until the game's Layout overrides it.
func (s *Snapshot) SetWindowSize(width, height int) {
	s.width, s.height = width, height
}

// SetWindowTitle is recorded but unused.
func (s *Snapshot) SetWindowTitle(title string) {
	s.title = title
}

// SetWindowResizable is a no-op.
func (s *Snapshot) SetWindowResizable(resizable bool) {}

// SetTPS is a no-op; snapshot ticks are not paced.
func (s *Snapshot) SetTPS(tps int) {}

// RunGame simulates the configured number of ticks, draws one frame and
// saves it. A quit request during the ticks still produces the frame.
func (s *Snapshot) RunGame(game render.Game) error {
	s.width, s.height = game.Layout(s.width, s.height)
	if s.width <= 0 || s.height <= 0 {
		return fmt.Errorf("invalid snapshot size %dx%d", s.width, s.height)
	}

	for i := 0; i < s.opts.Frames; i++ {
		err := game.Update()
		s.Script.advance()
		if errors.Is(err, render.ErrQuit) {
			break
		}
		if err != nil {
			return err
		}
	}

	s.dc = gg.NewContext(s.width, s.height)
	defer s.dc.Close()

	if s.opts.FontPath != "" {
		if err := s.dc.LoadFontFace(s.opts.FontPath, s.opts.FontSize); err != nil {
			return fmt.Errorf("failed to load font %s: %w", s.opts.FontPath, err)
		}
	}

	game.Draw(s)
	if s.err != nil {
		return fmt.Errorf("failed to draw snapshot: %w", s.err)
	}

	if s.opts.Path == "" {
		return nil
	}
	if err := s.dc.SavePNG(s.opts.Path); err != nil {
		return fmt.Errorf("failed to save snapshot to %s: %w", s.opts.Path, err)
	}
	return nil
}

// Image returns the last drawn frame, or nil before RunGame.
func (s *Snapshot) Image() image.Image {
	if s.dc == nil {
		return nil
	}
	return s.dc.Image()
}

func (s *Snapshot) record(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

// Bounds returns the canvas rectangle.
func (s *Snapshot) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// Size returns the canvas size.
func (s *Snapshot) Size() (width, height int) {
	return s.width, s.height
}

// Fill paints the whole canvas.
func (s *Snapshot) Fill(clr color.Color) {
	s.dc.ClearWithColor(gg.FromColor(clr))
}

// Clear makes the canvas transparent.
func (s *Snapshot) Clear() {
	s.dc.Clear()
}

// FillRect draws a filled axis-aligned rectangle.
func (s *Snapshot) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	s.dc.DrawRectangle(float64(x), float64(y), float64(width), float64(height))
	s.dc.SetColor(clr)
	s.record(s.dc.Fill())
}

// FillCircle draws a filled circle.
func (s *Snapshot) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	s.dc.DrawCircle(float64(x), float64(y), float64(radius))
	s.dc.SetColor(clr)
	s.record(s.dc.Fill())
}

// StrokeCircle draws a circle outline.
func (s *Snapshot) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	s.dc.DrawCircle(float64(x), float64(y), float64(radius))
	s.dc.SetColor(clr)
	s.dc.SetLineWidth(float64(strokeWidth))
	s.record(s.dc.Stroke())
}

// StrokeLine draws a line segment.
func (s *Snapshot) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	s.dc.DrawLine(float64(x0), float64(y0), float64(x1), float64(y1))
	s.dc.SetColor(clr)
	s.dc.SetLineWidth(float64(strokeWidth))
	s.record(s.dc.Stroke())
}

// FillPolygon fills the closed path through points. A fan that is
// star-shaped around points[0] is a simple polygon, so the outline fill
// equals the triangle fan.
func (s *Snapshot) FillPolygon(dst render.Image, points []shadows.Point, clr color.Color) {
	if len(points) < 3 {
		return
	}
	s.dc.MoveTo(float64(points[0].X), float64(points[0].Y))
	for _, p := range points[1:] {
		s.dc.LineTo(float64(p.X), float64(p.Y))
	}
	s.dc.ClosePath()
	s.dc.SetColor(clr)
	s.record(s.dc.Fill())
}

// DrawText draws text with its top-left corner at (x, y), one line per row.
// Nothing is drawn without a font.
func (s *Snapshot) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	s.dc.SetColor(clr)
	top := float64(y)
	for _, line := range strings.Split(text, "\n") {
		_, h := s.dc.MeasureString(line)
		top += h
		s.dc.DrawString(line, float64(x), top)
	}
}

// MeasureText measures text with the loaded font, falling back to a 6x13
// cell per rune without one.
func (s *Snapshot) MeasureText(text string, scale float64) (width, height int) {
	if s.dc != nil {
		var w, h float64
		for _, line := range strings.Split(text, "\n") {
			lw, lh := s.dc.MeasureString(line)
			w, h = max(w, lw), h+lh
		}
		if w > 0 {
			return int(w * scale), int(h * scale)
		}
	}
	columns, lines := render.TextExtent(text)
	return int(float64(columns) * 6 * scale), int(float64(lines) * 13 * scale)
}
