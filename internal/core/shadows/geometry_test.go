package shadows

import (
	"math"
	"testing"
)

func near(a, b, tol float32) bool {
	return float32(math.Abs(float64(a-b))) <= tol
}

func TestRotate(t *testing.T) {
	got := Rotate(Point{0, 0}, Point{10, 0}, pi/2)
	if !near(got.X, 0, 1e-4) || !near(got.Y, -10, 1e-4) {
		t.Errorf("Rotate by +pi/2 = %v, want (0, -10)", got)
	}

	got = Rotate(Point{5, 5}, Point{15, 5}, -pi/2)
	if !near(got.X, 5, 1e-4) || !near(got.Y, 15, 1e-4) {
		t.Errorf("Rotate by -pi/2 = %v, want (5, 15)", got)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(Point{3, 4})
	if !near(got.X, 0.6, 1e-5) || !near(got.Y, 0.8, 1e-5) {
		t.Errorf("Normalize(3,4) = %v", got)
	}

	zero := Normalize(Point{})
	if zero.X != 0 || zero.Y != 0 {
		t.Errorf("Normalize of zero vector = %v, want zero", zero)
	}
}

func TestExtend(t *testing.T) {
	got := Extend(Point{1, 1}, Point{1, 3}, 100)
	if !near(got.X, 1, 1e-3) || !near(got.Y, 101, 1e-2) {
		t.Errorf("Extend = %v, want (1, 101)", got)
	}
}

func TestSignedAngle(t *testing.T) {
	origin := Point{0, 0}
	forward := Point{100, 0}

	tests := []struct {
		name   string
		target Point
		want   float32
	}{
		{"ahead", Point{50, 0}, 0},
		{"screen up is positive", Point{0, -50}, pi / 2},
		{"screen down is negative", Point{0, 50}, -pi / 2},
		{"behind", Point{-50, 0}, pi},
	}

	for _, tc := range tests {
		got := SignedAngle(origin, forward, tc.target)
		if !near(float32(math.Abs(float64(got))), float32(math.Abs(float64(tc.want))), 1e-5) {
			t.Errorf("%s: SignedAngle = %f, want %f", tc.name, got, tc.want)
		}
		if tc.want != pi && !near(got, tc.want, 1e-5) {
			t.Errorf("%s: SignedAngle = %f, want %f", tc.name, got, tc.want)
		}
	}
}

func TestCenterWraps(t *testing.T) {
	if got := Center(1.5 * pi); !near(got, -0.5*pi, 1e-5) {
		t.Errorf("Center(1.5pi) = %f", got)
	}
	if got := Center(-1.5 * pi); !near(got, 0.5*pi, 1e-5) {
		t.Errorf("Center(-1.5pi) = %f", got)
	}
	if got := Center(0.25); got != 0.25 {
		t.Errorf("Center(0.25) = %f", got)
	}
}

func TestIntersectsAtCrossing(t *testing.T) {
	sentinel := Point{-1, -1}
	p := sentinel

	ok := IntersectsAt(Point{0, 0}, Point{10, 10}, Point{0, 10}, Point{10, 0}, &p)
	if !ok {
		t.Fatal("Expected crossing segments to intersect")
	}
	if !near(p.X, 5, 1e-4) || !near(p.Y, 5, 1e-4) {
		t.Errorf("Intersection = %v, want (5, 5)", p)
	}

	p = sentinel
	IntersectsAt(Point{2, 0}, Point{2, 8}, Point{0, 6}, Point{4, 6}, &p)
	if !near(p.X, 2, 1e-4) || !near(p.Y, 6, 1e-4) {
		t.Errorf("Intersection = %v, want (2, 6)", p)
	}
}

func TestIntersectsAtLeavesPointUnchanged(t *testing.T) {
	sentinel := Point{-123, 456}

	tests := []struct {
		name           string
		a0, a1, b0, b1 Point
	}{
		{"parallel", Point{0, 0}, Point{10, 0}, Point{0, 5}, Point{10, 5}},
		{"collinear", Point{0, 0}, Point{10, 0}, Point{5, 0}, Point{15, 0}},
		{"short of the other segment", Point{0, 0}, Point{1, 1}, Point{0, 10}, Point{10, 0}},
		{"past the other segment end", Point{0, 5}, Point{10, 5}, Point{20, 0}, Point{20, 10}},
	}

	for _, tc := range tests {
		p := sentinel
		if IntersectsAt(tc.a0, tc.a1, tc.b0, tc.b1, &p) {
			t.Errorf("%s: reported an intersection at %v", tc.name, p)
		}
		if p != sentinel {
			t.Errorf("%s: point modified to %v", tc.name, p)
		}
	}
}

func TestTriangleBounds(t *testing.T) {
	got := TriangleBounds([3]Point{{5, 1}, {-2, 7}, {3, -4}})
	want := Rect{X: -2, Y: -4, Width: 7, Height: 11}
	if got != want {
		t.Errorf("TriangleBounds = %v, want %v", got, want)
	}
}

func TestNoOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"inside", Rect{2, 2, 2, 2}, false},
		{"touching edge", Rect{10, 0, 5, 5}, false},
		{"right of", Rect{11, 0, 5, 5}, true},
		{"left of", Rect{-6, 0, 5, 5}, true},
		{"below", Rect{0, 10.5, 5, 5}, true},
		{"above", Rect{0, -6, 5, 5}, true},
		{"straddling", Rect{-5, -5, 30, 30}, false},
	}

	for _, tc := range tests {
		if got := NoOverlap(a, tc.b); got != tc.want {
			t.Errorf("%s: NoOverlap = %v, want %v", tc.name, got, tc.want)
		}
		if got := NoOverlap(tc.b, a); got != tc.want {
			t.Errorf("%s (swapped): NoOverlap = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	if !PointInPolygon(Point{5, 5}, square) {
		t.Error("Expected center to be inside square")
	}
	if PointInPolygon(Point{15, 5}, square) {
		t.Error("Expected point to the right to be outside square")
	}
	if PointInPolygon(Point{5, 5}, nil) {
		t.Error("Expected empty polygon to contain nothing")
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(Point{1, 1}, Point{4, 5}); !near(got, 5, 1e-5) {
		t.Errorf("Distance = %f, want 5", got)
	}
}
