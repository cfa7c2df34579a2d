package room

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"chosenoffset.com/raysight/internal/core/shadows"
)

var (
	// ErrInvalidRegion is returned for inverted or empty partition bounds
	ErrInvalidRegion = errors.New("room: invalid region")
	// ErrInvalidWallDistance is returned when the split threshold cannot keep both children usable
	ErrInvalidWallDistance = errors.New("room: wall distance must be at least 2")
	// ErrCapacityExceeded is returned when generation would produce more walls than allowed
	ErrCapacityExceeded = errors.New("room: wall capacity exceeded")
	// ErrInvalidWallSpec is returned for a non-positive wall width or a door
	// gap too narrow to keep doors off the junctions
	ErrInvalidWallSpec = errors.New("room: wall width must be positive and door gap at least 2")
)

// RandomSource picks integers uniformly from an inclusive range
type RandomSource interface {
	Between(lo, hi int) int
}

type randSource struct {
	rng *rand.Rand
}

// NewRandomSource returns a RandomSource backed by math/rand
func NewRandomSource(seed int64) RandomSource {
	return &randSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *randSource) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// GeneratorConfig holds configuration for level generation
type GeneratorConfig struct {
	Width         int   // Map width in pixels, bounds are (0,0)-(Width-1,Height-1)
	Height        int   // Map height in pixels
	WallDistance  int   // Spans at or below this are never split
	WallWidth     int   // Thickness of materialized walls
	DoorGap       int   // Width of a door opening
	VerticalFirst bool  // Orientation of the first split
	MaxWalls      int   // Upper bound on partition lines (0 = unbounded)
	Seed          int64 // Random seed (0 = use current time)
}

// DefaultGeneratorConfig returns the reference layout parameters
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Width:         1536,
		Height:        768,
		WallDistance:  500,
		WallWidth:     10,
		DoorGap:       150,
		VerticalFirst: true,
	}
}

// Bounds returns the region covered by the generated map
func (c GeneratorConfig) Bounds() Region {
	return Region{
		Min: shadows.IntPoint{X: 0, Y: 0},
		Max: shadows.IntPoint{X: c.Width - 1, Y: c.Height - 1},
	}
}

// Generator handles procedural level generation
type Generator struct {
	config GeneratorConfig
	seed   int64
	src    RandomSource
}

// NewGenerator creates a new level generator
func NewGenerator(config GeneratorConfig) *Generator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		config: config,
		seed:   seed,
		src:    NewRandomSource(seed),
	}
}

// NewGeneratorWithSource creates a generator drawing from an explicit source
func NewGeneratorWithSource(config GeneratorConfig, src RandomSource) *Generator {
	return &Generator{
		config: config,
		seed:   config.Seed,
		src:    src,
	}
}

// Seed returns the seed in use, resolved from the clock when none was configured
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate partitions the map bounds and materializes the walls and doors
func (g *Generator) Generate() (*Level, error) {
	if g.config.WallWidth <= 0 || g.config.DoorGap < 2 {
		return nil, fmt.Errorf("%w: width %d, door gap %d", ErrInvalidWallSpec, g.config.WallWidth, g.config.DoorGap)
	}

	first := SplitHorizontal
	if g.config.VerticalFirst {
		first = SplitVertical
	}

	bounds := g.config.Bounds()
	parts, err := PartitionWithLimit(bounds, g.config.WallDistance, first, g.config.MaxWalls, g.src)
	if err != nil {
		return nil, fmt.Errorf("failed to partition %dx%d map: %w", g.config.Width, g.config.Height, err)
	}

	spec := WallSpec{Width: g.config.WallWidth, DoorGap: g.config.DoorGap}
	walls, doors := Materialize(parts.Verticals, parts.Horizontals, spec, g.src)

	level := &Level{
		Seed:        g.seed,
		Bounds:      bounds,
		Verticals:   parts.Verticals,
		Horizontals: parts.Horizontals,
		Rooms:       parts.Leaves,
		Doors:       doors,
		Walls:       walls,
		Depth:       parts.Depth,
		DoorGap:     g.config.DoorGap,
	}

	return level, nil
}
