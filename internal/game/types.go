package game

import (
	"image/color"

	"chosenoffset.com/raysight/internal/core/shadows"
)

// Config holds everything the frame loop needs besides the level
type Config struct {
	Width, Height int // Logical screen size

	Motion MotionConfig
	Caster shadows.CasterConfig

	PlayerWidth  float32
	PlayerHeight float32
	NodeRadius   int
	DoorRadius   int

	ShowMap   bool
	ShowStats bool
}

// DefaultConfig returns the reference screen, motion and cone
func DefaultConfig() Config {
	return Config{
		Width:        1536,
		Height:       768,
		Motion:       DefaultMotionConfig(1536),
		Caster:       shadows.DefaultCasterConfig(1536, 768),
		PlayerWidth:  20,
		PlayerHeight: 30,
		NodeRadius:   10,
		DoorRadius:   10,
		ShowMap:      true,
		ShowStats:    true,
	}
}

// Sounds receives gameplay cues
type Sounds interface {
	PlayDoor()
}

type silence struct{}

func (silence) PlayDoor() {}

var (
	colorBackground = color.RGBA{0x40, 0x40, 0xB0, 0xFF}
	colorPlayer     = color.RGBA{255, 161, 0, 255}
	colorWall       = color.NRGBA{200, 200, 200, 0x80}
	colorNode       = color.RGBA{102, 191, 255, 255}
	colorCurrent    = color.RGBA{255, 255, 255, 255}
	colorLink       = color.NRGBA{0xFF, 0xFF, 0xFF, 0x40}
	colorDoor       = color.RGBA{255, 109, 194, 255}
	colorFan        = color.NRGBA{0xFF, 0xFF, 0xFF, 0x40}
	colorStats      = color.RGBA{0, 228, 48, 255}
	colorPanel      = color.NRGBA{0, 0, 0, 0x60}
)
