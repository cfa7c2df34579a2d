package snapshot

import "chosenoffset.com/raysight/internal/render"

// Script is a render.InputManager replaying a fixed cursor and a set of held
// keys. Keys added with Press are just pressed on the first tick only.
type Script struct {
	held    map[render.Key]bool
	tick    int
	cursorX int
	cursorY int
}

// NewScript returns a script with no keys held and the cursor at the origin
func NewScript() *Script {
	return &Script{held: make(map[render.Key]bool)}
}

// Press holds key for the whole run
func (s *Script) Press(keys ...render.Key) {
	for _, k := range keys {
		s.held[k] = true
	}
}

// Aim places the cursor in logical pixels
func (s *Script) Aim(x, y int) {
	s.cursorX, s.cursorY = x, y
}

func (s *Script) advance() {
	s.tick++
}

// IsKeyPressed reports whether key is held by the script
func (s *Script) IsKeyPressed(key render.Key) bool {
	return s.held[key]
}

// IsKeyJustPressed reports held keys on the first tick only
func (s *Script) IsKeyJustPressed(key render.Key) bool {
	return s.tick == 0 && s.held[key]
}

// GetCursorPosition returns the scripted cursor
func (s *Script) GetCursorPosition() (x, y int) {
	return s.cursorX, s.cursorY
}
