package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/raysight/internal/render"
)

// holdTicks is how long a key counts as held after its last press or
// auto-repeat event. Terminals report no key release.
const holdTicks = 8

type input struct {
	held    map[render.Key]int
	pressed map[render.Key]bool
	fresh   map[render.Key]bool
	cursorX int
	cursorY int
}

func newInput() *input {
	return &input{
		held:    make(map[render.Key]int),
		pressed: make(map[render.Key]bool),
		fresh:   make(map[render.Key]bool),
	}
}

func keyFor(ev *tcell.EventKey) (render.Key, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return render.KeyEscape, true
	case tcell.KeyF1:
		return render.KeyF1, true
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case 'w':
			return render.KeyW, true
		case 'a':
			return render.KeyA, true
		case 's':
			return render.KeyS, true
		case 'd':
			return render.KeyD, true
		case 'r':
			return render.KeyR, true
		case 'm':
			return render.KeyM, true
		case 'q':
			return render.KeyEscape, true
		}
	}
	return 0, false
}

func (in *input) key(ev *tcell.EventKey) {
	k, ok := keyFor(ev)
	if !ok {
		return
	}
	if in.held[k] == 0 {
		in.fresh[k] = true
	}
	in.held[k] = holdTicks
}

func (in *input) cursor(x, y int) {
	in.cursorX, in.cursorY = x, y
}

// advance starts a tick: presses since the previous tick become visible to
// IsKeyJustPressed for this tick only, and held keys decay.
func (in *input) advance() {
	clear(in.pressed)
	for k := range in.fresh {
		in.pressed[k] = true
	}
	clear(in.fresh)

	for k, n := range in.held {
		if n <= 1 {
			delete(in.held, k)
			continue
		}
		in.held[k] = n - 1
	}
}

// IsKeyPressed reports whether key was pressed within the hold window.
func (t *Terminal) IsKeyPressed(key render.Key) bool {
	return t.input.held[key] > 0
}

// IsKeyJustPressed reports whether key went down since the previous tick.
func (t *Terminal) IsKeyJustPressed(key render.Key) bool {
	return t.input.pressed[key]
}

// GetCursorPosition returns the last mouse position in logical pixels.
func (t *Terminal) GetCursorPosition() (x, y int) {
	return t.input.cursorX, t.input.cursorY
}
