package room

import (
	"slices"

	"chosenoffset.com/raysight/internal/core/shadows"
)

// WallSpec describes how partition lines become wall rectangles
type WallSpec struct {
	Width   int // Thickness of every wall rectangle
	DoorGap int // Opening cut into sub-segments longer than this
}

// VerticalSplits returns the sorted break points along v: its endpoints plus
// every horizontal line that ends on v.
func VerticalSplits(v Vertical, horizontals []Horizontal) []int {
	splits := []int{v.Y[0]}
	for _, h := range horizontals {
		if h.Y < v.Y[0] || v.Y[1] < h.Y {
			continue
		}
		if v.X != h.X[0] && v.X != h.X[1] {
			continue
		}
		splits = append(splits, h.Y)
	}
	splits = append(splits, v.Y[1])

	slices.Sort(splits)
	return splits
}

// HorizontalSplits returns the sorted break points along h: its endpoints plus
// every vertical line that ends on h.
func HorizontalSplits(h Horizontal, verticals []Vertical) []int {
	splits := []int{h.X[0]}
	for _, v := range verticals {
		if v.X < h.X[0] || h.X[1] < v.X {
			continue
		}
		if h.Y != v.Y[0] && h.Y != v.Y[1] {
			continue
		}
		splits = append(splits, v.X)
	}
	splits = append(splits, h.X[1])

	slices.Sort(splits)
	return splits
}

// Materialize turns partition lines into wall rectangles, cutting a door into
// every sub-segment between junctions that is longer than the door gap.
// Verticals are processed before horizontals.
func Materialize(verticals []Vertical, horizontals []Horizontal, spec WallSpec, src RandomSource) ([]shadows.Rect, []shadows.IntPoint) {
	var walls []shadows.Rect
	var doors []shadows.IntPoint

	ww := float32(spec.Width)
	half := spec.DoorGap / 2

	for _, v := range verticals {
		splits := VerticalSplits(v, horizontals)
		x := float32(v.X)

		for j := 1; j < len(splits); j++ {
			lo, hi := splits[j-1], splits[j]
			length := hi - lo

			if length <= spec.DoorGap {
				walls = append(walls, shadows.Rect{X: x, Y: float32(lo), Width: ww, Height: float32(length) + ww})
				continue
			}

			y := src.Between(lo+half, hi-half)
			doors = append(doors, shadows.IntPoint{X: v.X, Y: y})

			walls = append(walls,
				shadows.Rect{X: x, Y: float32(lo), Width: ww, Height: float32((y-half)-lo) + ww},
				shadows.Rect{X: x, Y: float32(y + half), Width: ww, Height: float32(hi-(y+half)) + ww},
			)
		}
	}

	for _, h := range horizontals {
		splits := HorizontalSplits(h, verticals)
		y := float32(h.Y)

		for j := 1; j < len(splits); j++ {
			lo, hi := splits[j-1], splits[j]
			length := hi - lo

			if length <= spec.DoorGap {
				walls = append(walls, shadows.Rect{X: float32(lo), Y: y, Width: float32(length) + ww, Height: ww})
				continue
			}

			x := src.Between(lo+half, hi-half)
			doors = append(doors, shadows.IntPoint{X: x, Y: h.Y})

			walls = append(walls,
				shadows.Rect{X: float32(lo), Y: y, Width: float32((x-half)-lo) + ww, Height: ww},
				shadows.Rect{X: float32(x + half), Y: y, Width: float32(hi-(x+half)) + ww, Height: ww},
			)
		}
	}

	return walls, doors
}
