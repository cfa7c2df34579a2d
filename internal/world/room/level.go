package room

import "chosenoffset.com/raysight/internal/core/shadows"

// Level is a generated floor plan. It is built once and only read afterwards,
// so it can be shared freely.
type Level struct {
	Seed        int64
	Bounds      Region
	Verticals   []Vertical
	Horizontals []Horizontal
	Rooms       []Region           // Partition leaves
	Doors       []shadows.IntPoint // Door centers, always inside a wall line
	Walls       []shadows.Rect     // Occluders handed to the caster
	Depth       int                // Partition nesting depth
	DoorGap     int
}

// Link joins a room's map node to a door on the room's boundary
type Link struct {
	Room, Door int
	From, To   shadows.Point
}

// Node returns the map marker position of a room: its center shifted by half
// a marker radius.
func (r Region) Node(radius int) shadows.Point {
	x := r.Min.X + ((r.Max.X - r.Min.X) / 2) + (radius / 2)
	y := r.Min.Y + ((r.Max.Y - r.Min.Y) / 2) + (radius / 2)
	return shadows.Point{X: float32(x), Y: float32(y)}
}

// OnBoundary reports whether p lies on one of the four edges of r
func (r Region) OnBoundary(p shadows.IntPoint) bool {
	onVertical := (p.X == r.Min.X || p.X == r.Max.X) && r.Min.Y <= p.Y && p.Y <= r.Max.Y
	onHorizontal := (p.Y == r.Min.Y || p.Y == r.Max.Y) && r.Min.X <= p.X && p.X <= r.Max.X
	return onVertical || onHorizontal
}

// Links returns the room-to-door adjacency used by the map overlay
func (l *Level) Links(nodeRadius int) []Link {
	var links []Link
	for i, r := range l.Rooms {
		node := r.Node(nodeRadius)
		for j, door := range l.Doors {
			if !r.OnBoundary(door) {
				continue
			}
			links = append(links, Link{Room: i, Door: j, From: node, To: door.ToPoint()})
		}
	}
	return links
}

// DoorAt returns the index of the first door within radius of p, or -1
func (l *Level) DoorAt(p shadows.Point, radius float32) int {
	for i, door := range l.Doors {
		if shadows.Distance(p, door.ToPoint()) <= radius {
			return i
		}
	}
	return -1
}

// RoomAt returns the index of the first room containing p, or -1
func (l *Level) RoomAt(p shadows.Point) int {
	q := shadows.IntPoint{X: int(p.X), Y: int(p.Y)}
	for i, r := range l.Rooms {
		if r.Contains(q) {
			return i
		}
	}
	return -1
}

// Center returns the middle of the map bounds
func (l *Level) Center() shadows.Point {
	return shadows.Point{
		X: float32(l.Bounds.Min.X+l.Bounds.Max.X+1) / 2,
		Y: float32(l.Bounds.Min.Y+l.Bounds.Max.Y+1) / 2,
	}
}
