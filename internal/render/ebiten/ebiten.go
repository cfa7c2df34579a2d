package ebiten

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/raysight/internal/core/shadows"
	"chosenoffset.com/raysight/internal/render"
)

// EbitenRenderer implements the Renderer interface using Ebiten.
type EbitenRenderer struct {
	whiteImg *ebiten.Image
	textImg  *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewRenderer creates a new Ebiten-based renderer.
func NewRenderer() render.Renderer {
	return &EbitenRenderer{}
}

func target(dst render.Image) *ebiten.Image {
	return dst.(*EbitenImage).img
}

// FillRect draws a filled axis-aligned rectangle.
func (r *EbitenRenderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	vector.DrawFilledRect(target(dst), x, y, width, height, clr, false)
}

// FillCircle draws a filled circle on the destination image.
func (r *EbitenRenderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	vector.DrawFilledCircle(target(dst), x, y, radius, clr, true)
}

// StrokeCircle draws a circle outline on the destination image.
func (r *EbitenRenderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	vector.StrokeCircle(target(dst), x, y, radius, strokeWidth, clr, true)
}

// StrokeLine draws a line segment.
func (r *EbitenRenderer) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	vector.StrokeLine(target(dst), x0, y0, x1, y1, strokeWidth, clr, true)
}

// FillPolygon fills the triangle fan rooted at points[0]. Anti-aliasing is
// disabled to avoid seams between adjacent triangles.
func (r *EbitenRenderer) FillPolygon(dst render.Image, points []shadows.Point, clr color.Color) {
	if len(points) < 3 {
		return
	}

	if r.whiteImg == nil {
		r.whiteImg = ebiten.NewImage(1, 1)
		r.whiteImg.Fill(color.White)
	}

	c := color.NRGBAModel.Convert(clr).(color.NRGBA)
	cr, cg, cb, ca := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255

	r.vertices = r.vertices[:0]
	for _, p := range points {
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX:   p.X,
			DstY:   p.Y,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}

	r.indices = r.indices[:0]
	for i := 1; i+1 < len(points); i++ {
		r.indices = append(r.indices, 0, uint16(i), uint16(i+1))
	}

	target(dst).DrawTriangles(r.vertices, r.indices, r.whiteImg, &ebiten.DrawTrianglesOptions{AntiAlias: false})
}

// DrawText draws text with the debug font. The glyphs are printed white
// into a scratch image, then scaled and tinted onto the destination.
func (r *EbitenRenderer) DrawText(dst render.Image, str string, x, y int, clr color.Color, scale float64) {
	w, h := r.MeasureText(str, 1)
	if w == 0 || h == 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}

	if r.textImg == nil || r.textImg.Bounds().Dx() < w || r.textImg.Bounds().Dy() < h {
		if r.textImg != nil {
			r.textImg.Deallocate()
		}
		r.textImg = ebiten.NewImage(w, h)
	}
	r.textImg.Clear()
	ebitenutil.DebugPrintAt(r.textImg, str, 0, 0)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	target(dst).DrawImage(r.textImg, op)
}

// MeasureText measures text in debug font cells of 6x16 pixels.
func (r *EbitenRenderer) MeasureText(str string, scale float64) (width, height int) {
	const charWidth, charHeight = 6.0, 16.0
	columns, lines := render.TextExtent(str)
	return int(float64(columns) * charWidth * scale), int(float64(lines) * charHeight * scale)
}

// ActualFPS reports the measured frame rate of the running loop.
func (r *EbitenRenderer) ActualFPS() float64 {
	return ebiten.ActualFPS()
}

// EbitenImage wraps an ebiten.Image to implement the render.Image interface.
type EbitenImage struct {
	img *ebiten.Image
}

// WrapEbitenImage wraps an existing ebiten.Image as a render.Image.
func WrapEbitenImage(img *ebiten.Image) render.Image {
	return &EbitenImage{img: img}
}

// Bounds returns the bounds of the image.
func (i *EbitenImage) Bounds() image.Rectangle {
	return i.img.Bounds()
}

// Size returns the width and height of the image.
func (i *EbitenImage) Size() (width, height int) {
	return i.img.Bounds().Dx(), i.img.Bounds().Dy()
}

// Fill fills the entire image with the given color.
func (i *EbitenImage) Fill(clr color.Color) {
	i.img.Fill(clr)
}

// Clear clears the image to transparent.
func (i *EbitenImage) Clear() {
	i.img.Clear()
}

// EbitenInputManager implements the InputManager interface using Ebiten.
type EbitenInputManager struct{}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &EbitenInputManager{}
}

// IsKeyPressed returns whether the specified key is currently pressed.
func (m *EbitenInputManager) IsKeyPressed(key render.Key) bool {
	k, ok := keyToEbitenKey(key)
	return ok && ebiten.IsKeyPressed(k)
}

// IsKeyJustPressed returns whether the specified key was just pressed this frame.
func (m *EbitenInputManager) IsKeyJustPressed(key render.Key) bool {
	k, ok := keyToEbitenKey(key)
	return ok && inpututil.IsKeyJustPressed(k)
}

// GetCursorPosition returns the current cursor position.
func (m *EbitenInputManager) GetCursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

// keyToEbitenKey converts a render.Key to an ebiten.Key.
func keyToEbitenKey(key render.Key) (ebiten.Key, bool) {
	switch key {
	case render.KeyW:
		return ebiten.KeyW, true
	case render.KeyA:
		return ebiten.KeyA, true
	case render.KeyS:
		return ebiten.KeyS, true
	case render.KeyD:
		return ebiten.KeyD, true
	case render.KeyR:
		return ebiten.KeyR, true
	case render.KeyM:
		return ebiten.KeyM, true
	case render.KeyF1:
		return ebiten.KeyF1, true
	case render.KeyEscape:
		return ebiten.KeyEscape, true
	default:
		return 0, false
	}
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct{}

// NewEngine creates a new Ebiten-based game engine.
func NewEngine() render.Engine {
	return &EbitenEngine{}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (e *EbitenEngine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// SetTPS sets the number of Update calls per second.
func (e *EbitenEngine) SetTPS(tps int) {
	ebiten.SetTPS(tps)
}

// RunGame runs the game loop with the provided game.
func (e *EbitenEngine) RunGame(game render.Game) error {
	return ebiten.RunGame(&gameAdapter{game: game})
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game render.Game
}

// Update implements ebiten.Game. A quit request ends the loop through
// ebiten.Termination, which RunGame reports as a nil error.
func (a *gameAdapter) Update() error {
	err := a.game.Update()
	if errors.Is(err, render.ErrQuit) {
		return ebiten.Termination
	}
	return err
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&EbitenImage{img: screen})
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
