package geom

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestFromPoints(t *testing.T) {
	v := FromPoints(Point{0, 0}, Point{3, 4}, 10)
	if !approx(v.X, 6) || !approx(v.Y, 8) {
		t.Errorf("FromPoints = %+v, want (6,8)", v)
	}
	if z := FromPoints(Point{1, 1}, Point{1, 1}, 5); z != (Vector{}) {
		t.Errorf("coincident points = %+v, want zero vector", z)
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		deg  float64
		want Vector
	}{
		{0, Vector{1, 0}},
		{90, Vector{0, 1}},
		{-90, Vector{0, -1}},
		{180, Vector{-1, 0}},
	}
	for _, tc := range tests {
		got := Vector{1, 0}.Rotate(tc.deg)
		if !approx(got.X, tc.want.X) || !approx(got.Y, tc.want.Y) {
			t.Errorf("Rotate(%v) = %+v, want %+v", tc.deg, got, tc.want)
		}
	}
}

func TestAngleAt(t *testing.T) {
	apex := Point{0, 0}
	if a := AngleAt(Point{10, 0}, Point{0, 10}, apex); !approx(a, 90) {
		t.Errorf("right angle = %v", a)
	}
	if a := AngleAt(Point{10, 0}, Point{20, 0}, apex); a > 1e-3 {
		t.Errorf("collinear angle = %v, want ~0", a)
	}
	// A point on the apex must not produce NaN.
	if a := AngleAt(apex, Point{5, 5}, apex); math.IsNaN(a) {
		t.Error("AngleAt returned NaN for a point on the apex")
	}
}

func TestDistanceToLine(t *testing.T) {
	a, b := Point{0, 0}, Point{100, 0}
	if d := DistanceToLine(Point{50, 19}, a, b); !approx(d, 19) {
		t.Errorf("distance = %v, want 19", d)
	}
	// The line is infinite, so points beyond the segment still measure perpendicular.
	if d := DistanceToLine(Point{500, -7}, a, b); !approx(d, 7) {
		t.Errorf("distance beyond segment = %v, want 7", d)
	}
	if d := DistanceToLine(Point{3, 4}, a, a); !approx(d, 5) {
		t.Errorf("degenerate line = %v, want 5", d)
	}
}

func TestNear(t *testing.T) {
	p := Point{0, 0}
	if !p.Near(Point{3, 4}, 5) {
		t.Error("distance 5 should be near with radius 5")
	}
	if p.Near(Point{3, 4.1}, 5) {
		t.Error("distance > 5 should not be near")
	}
}
