package render

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"chosenoffset.com/raysight/internal/core/shadows"
)

// ErrQuit is returned from Game.Update to end the loop cleanly. Engines
// translate it into a nil return from RunGame.
var ErrQuit = errors.New("render: quit requested")

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. This allows swapping rendering backends without changing
// game logic. All coordinates are in logical screen pixels.
type Renderer interface {
	// Shape operations
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)
	StrokeLine(dst Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color)

	// FillPolygon fills the triangle fan rooted at points[0]. Any polygon
	// that is star-shaped around its first vertex renders correctly.
	FillPolygon(dst Image, points []shadows.Point, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y int, clr color.Color, scale float64)
	MeasureText(text string, scale float64) (width, height int)
}

// FrameCounter is implemented by renderers that measure their own frame rate.
type FrameCounter interface {
	ActualFPS() float64
}

// TextExtent returns the widest line of text in runes and its number of lines.
func TextExtent(text string) (columns, lines int) {
	if text == "" {
		return 0, 0
	}
	for _, line := range strings.Split(text, "\n") {
		columns = max(columns, utf8.RuneCountInString(line))
		lines++
	}
	return columns, lines
}

// Image represents a renderable surface. It abstracts the underlying image
// implementation.
type Image interface {
	Bounds() image.Rectangle
	Size() (width, height int)

	Fill(clr color.Color)
	Clear()
}

// InputManager handles input from the user (keyboard, mouse, etc).
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	GetCursorPosition() (x, y int)
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game reads
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyR  // Regenerate the level
	KeyM  // Map overlay toggle
	KeyF1 // Diagnostics toggle
	KeyEscape
)

var keyNames = map[string]Key{
	"w":      KeyW,
	"a":      KeyA,
	"s":      KeyS,
	"d":      KeyD,
	"r":      KeyR,
	"m":      KeyM,
	"f1":     KeyF1,
	"escape": KeyEscape,
}

// ParseKey looks up a key by its case-insensitive name ("w", "f1", "escape").
func ParseKey(name string) (Key, bool) {
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// Game represents the game interface that the engine will call.
type Game interface {
	// Update updates the game logic. It is called every tick.
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// SetTPS sets the number of Update calls per second.
	SetTPS(tps int)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}

// Backend names an Engine implementation
type Backend string

const (
	BackendEbiten   Backend = "ebiten"
	BackendTerminal Backend = "terminal"
	BackendSnapshot Backend = "snapshot"
)

// Valid reports whether b names a known backend
func (b Backend) Valid() bool {
	switch b {
	case BackendEbiten, BackendTerminal, BackendSnapshot:
		return true
	}
	return false
}

// Blend mixes src over dst by src's alpha and returns an opaque color. It is
// used by backends without native alpha compositing.
func Blend(dst, src color.Color) color.RGBA {
	sr, sg, sb, sa := src.RGBA()
	dr, dg, db, _ := dst.RGBA()
	inv := 0xffff - sa

	mix := func(s, d uint32) uint8 {
		return uint8((s + d*inv/0xffff) >> 8)
	}
	return color.RGBA{R: mix(sr, dr), G: mix(sg, dg), B: mix(sb, db), A: 0xff}
}
