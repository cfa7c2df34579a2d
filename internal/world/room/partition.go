package room

import (
	"fmt"

	"chosenoffset.com/raysight/internal/core/shadows"
)

// Orientation is the axis a partition call splits across
type Orientation int

const (
	// SplitVertical places a vertical line, dividing the x span
	SplitVertical Orientation = iota
	// SplitHorizontal places a horizontal line, dividing the y span
	SplitHorizontal
)

func (o Orientation) flip() Orientation {
	if o == SplitVertical {
		return SplitHorizontal
	}
	return SplitVertical
}

// Vertical is a partition line at X spanning Y[0] < Y[1]
type Vertical struct {
	X int
	Y [2]int
}

// Horizontal is a partition line at Y spanning X[0] < X[1]
type Horizontal struct {
	X [2]int
	Y int
}

// Region is a rectangle of the map, and a room once it is a partition leaf
type Region struct {
	Min, Max shadows.IntPoint
}

// Width returns the x span
func (r Region) Width() int { return r.Max.X - r.Min.X }

// Height returns the y span
func (r Region) Height() int { return r.Max.Y - r.Min.Y }

// Valid reports whether the region is non-inverted with a positive area
func (r Region) Valid() bool {
	return r.Min.X < r.Max.X && r.Min.Y < r.Max.Y
}

// Contains reports whether p lies inside or on the boundary of r
func (r Region) Contains(p shadows.IntPoint) bool {
	return r.Min.X <= p.X && p.X <= r.Max.X && r.Min.Y <= p.Y && p.Y <= r.Max.Y
}

// Partitioning is the output of a recursive partition
type Partitioning struct {
	Verticals   []Vertical
	Horizontals []Horizontal
	Leaves      []Region
	Depth       int    // Deepest nesting of partition calls, the root call counts as 1
	AxisSplits  [2]int // Most vertical (x) and horizontal (y) splits on any root-to-leaf path
}

// Lines returns the number of partition lines
func (p *Partitioning) Lines() int {
	return len(p.Verticals) + len(p.Horizontals)
}

// Partition recursively splits bounds into rooms, alternating the orientation
// on every level starting with first.
func Partition(bounds Region, wallDistance int, first Orientation, src RandomSource) (*Partitioning, error) {
	return PartitionWithLimit(bounds, wallDistance, first, 0, src)
}

// PartitionWithLimit is Partition with an upper bound on the number of lines
// (0 = unbounded).
func PartitionWithLimit(bounds Region, wallDistance int, first Orientation, maxLines int, src RandomSource) (*Partitioning, error) {
	if !bounds.Valid() {
		return nil, fmt.Errorf("%w: %v-%v", ErrInvalidRegion, bounds.Min, bounds.Max)
	}
	if wallDistance < 2 {
		return nil, ErrInvalidWallDistance
	}

	p := &partitioner{
		wallDistance: wallDistance,
		maxLines:     maxLines,
		src:          src,
		out:          &Partitioning{},
	}
	if err := p.split(bounds, first, 1, [2]int{}); err != nil {
		return nil, err
	}
	return p.out, nil
}

type partitioner struct {
	wallDistance int
	maxLines     int
	src          RandomSource
	out          *Partitioning
}

func (p *partitioner) leaf(region Region, splits [2]int) {
	p.out.Leaves = append(p.out.Leaves, region)
	p.out.AxisSplits[0] = max(p.out.AxisSplits[0], splits[0])
	p.out.AxisSplits[1] = max(p.out.AxisSplits[1], splits[1])
}

func (p *partitioner) reserve() error {
	if p.maxLines > 0 && p.out.Lines() >= p.maxLines {
		return fmt.Errorf("%w: limit %d", ErrCapacityExceeded, p.maxLines)
	}
	return nil
}

func (p *partitioner) split(region Region, orientation Orientation, depth int, splits [2]int) error {
	p.out.Depth = max(p.out.Depth, depth)
	half := p.wallDistance / 2

	if orientation == SplitVertical {
		if region.Width() <= p.wallDistance {
			p.leaf(region, splits)
			return nil
		}
		if err := p.reserve(); err != nil {
			return err
		}

		x := p.src.Between(region.Min.X+half, region.Max.X-half)
		p.out.Verticals = append(p.out.Verticals, Vertical{X: x, Y: [2]int{region.Min.Y, region.Max.Y}})

		splits[0]++
		west := Region{Min: region.Min, Max: shadows.IntPoint{X: x, Y: region.Max.Y}}
		east := Region{Min: shadows.IntPoint{X: x, Y: region.Min.Y}, Max: region.Max}
		if err := p.split(west, orientation.flip(), depth+1, splits); err != nil {
			return err
		}
		return p.split(east, orientation.flip(), depth+1, splits)
	}

	if region.Height() <= p.wallDistance {
		p.leaf(region, splits)
		return nil
	}
	if err := p.reserve(); err != nil {
		return err
	}

	y := p.src.Between(region.Min.Y+half, region.Max.Y-half)
	p.out.Horizontals = append(p.out.Horizontals, Horizontal{X: [2]int{region.Min.X, region.Max.X}, Y: y})

	splits[1]++
	north := Region{Min: region.Min, Max: shadows.IntPoint{X: region.Max.X, Y: y}}
	south := Region{Min: shadows.IntPoint{X: region.Min.X, Y: y}, Max: region.Max}
	if err := p.split(north, orientation.flip(), depth+1, splits); err != nil {
		return err
	}
	return p.split(south, orientation.flip(), depth+1, splits)
}

// DepthBound is the deepest nesting Partition can reach for any random
// source: every split leaves each child at least half a wall distance
// shorter, and a chain of calls ends at the first axis that runs out of splits.
func DepthBound(bounds Region, wallDistance int, first Orientation) int {
	splitsFor := func(span int) int {
		if span <= wallDistance {
			return 0
		}
		half := wallDistance / 2
		return (span - wallDistance + half - 1) / half
	}

	a, b := splitsFor(bounds.Width()), splitsFor(bounds.Height())
	if first == SplitHorizontal {
		a, b = b, a
	}
	if a <= b {
		return 2*a + 1
	}
	return 2*b + 2
}
