// Package terminal renders the game into a terminal through tcell. The
// logical screen is sampled onto character cells, each cell painted as a
// background color.
package terminal

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/raysight/internal/render"
)

// Terminal is a render.Engine, render.Renderer, render.InputManager and
// render.Image over a single tcell screen. It is driven from one goroutine.
type Terminal struct {
	screen tcell.Screen
	title  string
	tps    int

	// Logical size reported by the game's Layout
	width, height int

	// Cell grid
	cols, rows int
	cells      []color.RGBA
	text       []rune
	textColor  []color.RGBA

	input *input

	started   bool
	lastFrame time.Time
	fps       float64
}

// NewScreen opens the controlling terminal
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal screen: %w", err)
	}
	return screen, nil
}

// New wraps screen. The logical size is updated from the game's Layout on
// every frame.
func New(screen tcell.Screen, width, height int) *Terminal {
	return &Terminal{
		screen: screen,
		tps:    60,
		width:  width,
		height: height,
		input:  newInput(),
	}
}

// Start initializes the screen and mouse reporting. Calling it on a started
// terminal does nothing.
func (t *Terminal) Start() error {
	if t.started {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.started = true
	t.screen.EnableMouse()
	t.screen.HideCursor()
	t.resize()
	return nil
}

// Stop restores the terminal. A tcell screen cannot be initialized again
// after Stop.
func (t *Terminal) Stop() {
	if !t.started {
		return
	}
	t.screen.Fini()
	t.started = false
}

func (t *Terminal) resize() {
	cols, rows := t.screen.Size()
	if cols == t.cols && rows == t.rows && t.cells != nil {
		return
	}
	t.cols, t.rows = max(cols, 1), max(rows, 1)
	n := t.cols * t.rows
	t.cells = make([]color.RGBA, n)
	t.text = make([]rune, n)
	t.textColor = make([]color.RGBA, n)
}

// cellSize returns the logical pixels covered by one cell
func (t *Terminal) cellSize() (float32, float32) {
	return float32(t.width) / float32(t.cols), float32(t.height) / float32(t.rows)
}

// SetWindowSize sets the logical size until the game's Layout overrides it.
func (t *Terminal) SetWindowSize(width, height int) {
	t.width, t.height = width, height
}

// SetWindowTitle sets the terminal title where supported.
func (t *Terminal) SetWindowTitle(title string) {
	t.title = title
}

// SetWindowResizable is a no-op; terminals always resize.
func (t *Terminal) SetWindowResizable(resizable bool) {}

// SetTPS sets the number of Update calls per second.
func (t *Terminal) SetTPS(tps int) {
	if tps > 0 {
		t.tps = tps
	}
}

// RunGame runs the game loop until the game returns an error or a quit
// request. The terminal is started if needed and restored on return.
func (t *Terminal) RunGame(game render.Game) error {
	if err := t.Start(); err != nil {
		return err
	}
	defer t.Stop()

	if t.title != "" {
		t.screen.SetTitle(t.title)
	}

	ticker := time.NewTicker(time.Second / time.Duration(t.tps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case ev := <-events:
			t.handleEvent(ev)

		case <-ticker.C:
			err := t.Frame(game)
			if errors.Is(err, render.ErrQuit) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

// Frame runs one Update and Draw and presents the result.
func (t *Terminal) Frame(game render.Game) error {
	t.tick(time.Now())
	t.resize()
	t.width, t.height = game.Layout(t.cols, t.rows)

	t.input.advance()
	if err := game.Update(); err != nil {
		return err
	}

	game.Draw(t)
	t.Present()
	return nil
}

// tick folds the time since the previous frame into the frame rate average
func (t *Terminal) tick(now time.Time) {
	if !t.lastFrame.IsZero() {
		if dt := now.Sub(t.lastFrame).Seconds(); dt > 0 {
			if t.fps == 0 {
				t.fps = 1 / dt
			} else {
				t.fps = 0.9*t.fps + 0.1/dt
			}
		}
	}
	t.lastFrame = now
}

// ActualFPS returns the smoothed rate of Frame calls.
func (t *Terminal) ActualFPS() float64 {
	return t.fps
}

func (t *Terminal) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		t.input.key(ev)
	case *tcell.EventMouse:
		col, row := ev.Position()
		cw, ch := t.cellSize()
		t.input.cursor(int((float32(col)+0.5)*cw), int((float32(row)+0.5)*ch))
	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	}
}

// Present copies the cell buffer to the terminal
func (t *Terminal) Present() {
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			i := row*t.cols + col
			bg := t.cells[i]
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))

			r := ' '
			if t.text[i] != 0 {
				r = t.text[i]
				fg := t.textColor[i]
				style = style.Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B)))
			}
			t.screen.SetContent(col, row, r, nil, style)
		}
	}
	t.screen.Show()
}

// Bounds returns the logical screen rectangle.
func (t *Terminal) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.width, t.height)
}

// Size returns the logical screen size.
func (t *Terminal) Size() (width, height int) {
	return t.width, t.height
}

// Fill paints every cell and drops any text.
func (t *Terminal) Fill(clr color.Color) {
	c := render.Blend(color.Black, clr)
	for i := range t.cells {
		t.cells[i] = c
		t.text[i] = 0
	}
}

// Clear paints every cell black.
func (t *Terminal) Clear() {
	t.Fill(color.Black)
}
