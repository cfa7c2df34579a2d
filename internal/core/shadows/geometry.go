package shadows

import "math"

// Epsilon guards divisions by vector lengths and is the angular nudge used
// for the disambiguation rays around wall corners.
const Epsilon float32 = 0.00001

const pi = float32(math.Pi)

// Trigonometry is evaluated in double precision and rounded back so every
// caller sees the same single-precision result for the same input.
func sinf(x float32) float32      { return float32(math.Sin(float64(x))) }
func cosf(x float32) float32      { return float32(math.Cos(float64(x))) }
func sqrtf(x float32) float32     { return float32(math.Sqrt(float64(x))) }
func atan2f(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }

// Rotate turns `to` around `from` by the given radians. Positive radians turn
// counter-clockwise on screen (y grows downward).
func Rotate(from, to Point, radians float32) Point {
	dx := to.X - from.X
	dy := to.Y - from.Y
	s := sinf(radians)
	c := cosf(radians)
	return Point{
		X: from.X + (dx * c) + (dy * s),
		Y: from.Y + (-dx * s) + (dy * c),
	}
}

// Normalize returns v scaled to (just under) unit length. A zero vector stays zero.
func Normalize(v Point) Point {
	l := sqrtf((v.X*v.X)+(v.Y*v.Y)) + Epsilon
	return Point{X: v.X / l, Y: v.Y / l}
}

// Extend returns the point at distance length from a in the direction of b
func Extend(a, b Point, length float32) Point {
	v := Normalize(Point{X: b.X - a.X, Y: b.Y - a.Y})
	return Point{X: a.X + (v.X * length), Y: a.Y + (v.Y * length)}
}

// PolarAngle is the angle at a between the rays a->b and a->c, measured as
// angle(c) - angle(b). The result is not wrapped; see Center.
func PolarAngle(a, b, c Point) float32 {
	return atan2f(c.Y-a.Y, c.X-a.X) - atan2f(b.Y-a.Y, b.X-a.X)
}

// Center wraps the difference of two atan2 results back into [-pi, pi]
func Center(radians float32) float32 {
	if radians < -pi {
		radians += 2.0 * pi
	}
	if pi < radians {
		radians -= 2.0 * pi
	}
	return radians
}

// SignedAngle is the wrapped angle of target as seen from origin relative to
// the origin->forward axis. It is the sort and clip key of the caster.
func SignedAngle(origin, forward, target Point) float32 {
	return Center(PolarAngle(origin, target, forward))
}

// IntersectsAt overwrites point with the crossing of segments a0-a1 and b0-b1.
// Parallel segments and crossings outside either segment leave point untouched.
func IntersectsAt(a0, a1, b0, b1 Point, point *Point) bool {
	d0 := Point{X: a0.X - a1.X, Y: a0.Y - a1.Y}
	d1 := Point{X: a0.X - b0.X, Y: a0.Y - b0.Y}
	d2 := Point{X: b0.X - b1.X, Y: b0.Y - b1.Y}

	denominator := (d0.X * d2.Y) - (d0.Y * d2.X)
	if denominator == 0 {
		return false
	}

	t := ((d1.X * d2.Y) - (d1.Y * d2.X)) / denominator
	u := -((d0.X * d1.Y) - (d0.Y * d1.X)) / denominator

	if t < 0 || 1 < t || u < 0 || 1 < u {
		return false
	}

	point.X = a0.X + (t * (a1.X - a0.X))
	point.Y = a0.Y + (t * (a1.Y - a0.Y))
	return true
}

// TriangleBounds returns the smallest rectangle containing all three points
func TriangleBounds(points [3]Point) Rect {
	lo := points[0]
	hi := points[0]

	for _, p := range points[1:] {
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}

	return Rect{X: lo.X, Y: lo.Y, Width: hi.X - lo.X, Height: hi.Y - lo.Y}
}

// NoOverlap reports whether a separating axis exists between a and b.
// Rectangles that only touch are considered overlapping.
func NoOverlap(a, b Rect) bool {
	return (a.X+a.Width) < b.X ||
		(b.X+b.Width) < a.X ||
		(a.Y+a.Height) < b.Y ||
		(b.Y+b.Height) < a.Y
}

// PointInPolygon tests if a point is inside a polygon using ray casting algorithm
func PointInPolygon(point Point, polygon []Point) bool {
	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y

		if ((yi > point.Y) != (yj > point.Y)) &&
			(point.X < (xj-xi)*(point.Y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float32 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return sqrtf(dx*dx + dy*dy)
}
