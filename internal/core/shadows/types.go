package shadows

// Point represents a 2D point in pixel space
type Point struct {
	X, Y float32
}

// IntPoint is an integer coordinate used before walls are rasterized
// (door centers and room corners)
type IntPoint struct {
	X, Y int
}

// ToPoint converts an integer coordinate to pixel space
func (p IntPoint) ToPoint() Point {
	return Point{X: float32(p.X), Y: float32(p.Y)}
}

// Rect is an axis-aligned wall rectangle that occludes sight
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Corners returns the four corners in winding order starting at the top-left
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X + r.Width, r.Y + r.Height},
		{r.X, r.Y + r.Height},
	}
}

// Valid reports whether the rectangle has a positive area
func (r Rect) Valid() bool {
	return 0 < r.Width && 0 < r.Height
}
