// Package audio plays the short chime heard when the viewer walks through a
// door gap.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Config describes the door chime
type Config struct {
	Enabled    bool
	SampleRate int           // Hz
	Frequency  float64       // Tone pitch in Hz
	Duration   time.Duration // Length of one chime
	Volume     float64       // Linear gain in (0, 1]
}

// DefaultConfig returns a quiet 50ms chime at 880Hz
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		SampleRate: 44100,
		Frequency:  880,
		Duration:   50 * time.Millisecond,
		Volume:     0.5,
	}
}

// Chime builds a finite streamer for one chime
func Chime(cfg Config) (beep.Streamer, error) {
	sr := beep.SampleRate(cfg.SampleRate)
	sine, err := generators.SineTone(sr, cfg.Frequency)
	if err != nil {
		return nil, fmt.Errorf("failed to create %.0fHz tone: %w", cfg.Frequency, err)
	}

	tone := beep.Take(sr.N(cfg.Duration), sine)
	if cfg.Volume <= 0 {
		return &effects.Volume{Streamer: tone, Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: tone, Base: 2, Volume: math.Log2(min(cfg.Volume, 1))}, nil
}

// Player owns the speaker. A player that is disabled or failed to initialize
// silently ignores every call.
type Player struct {
	mu          sync.Mutex
	cfg         Config
	initialized bool
}

// NewPlayer creates a player; call Init before playing
func NewPlayer(cfg Config) *Player {
	return &Player{cfg: cfg}
}

// Init opens the speaker. Failure leaves the player silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled || p.initialized {
		return nil
	}

	sr := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to open speaker: %w", err)
	}

	p.initialized = true
	return nil
}

// PlayDoor plays one chime without blocking
func (p *Player) PlayDoor() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	chime, err := Chime(p.cfg)
	if err != nil {
		return
	}
	speaker.Play(chime)
}

// Close stops playback and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
