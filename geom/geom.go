// Package geom holds the small amount of 2D math the pilot needs:
// points, scaled direction vectors, rotation and line distances.
package geom

import "math"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Near reports whether q lies within radius of p (inclusive).
func (p Point) Near(q Point, radius float64) bool {
	return Distance(p, q) <= radius
}

func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

type Vector struct {
	X float64
	Y float64
}

// FromPoints returns the direction from → to scaled to magnitude.
// Coincident points yield the zero vector.
func FromPoints(from, to Point, magnitude float64) Vector {
	dx, dy := to.X-from.X, to.Y-from.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return Vector{}
	}
	return Vector{X: dx / l * magnitude, Y: dy / l * magnitude}
}

func (v Vector) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vector) Dot(o Vector) float64 { return v.X*o.X + v.Y*o.Y }

// Rotate turns v counter-clockwise by deg degrees.
func (v Vector) Rotate(deg float64) Vector {
	r := deg * math.Pi / 180
	sin, cos := math.Sincos(r)
	return Vector{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// angleEpsilon keeps the cosine denominator away from zero when a
// point coincides with the apex.
const angleEpsilon = 1e-8

// AngleAt returns the angle in degrees at apex between apex→a and apex→b.
func AngleAt(a, b, apex Point) float64 {
	va := Vector{X: a.X - apex.X, Y: a.Y - apex.Y}
	vb := Vector{X: b.X - apex.X, Y: b.Y - apex.Y}
	cos := va.Dot(vb) / (va.Len()*vb.Len() + angleEpsilon)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// DistanceToLine is the perpendicular distance from p to the infinite
// line through a and b. A degenerate line collapses to Distance(p, a).
func DistanceToLine(p, a, b Point) float64 {
	den := math.Hypot(b.Y-a.Y, b.X-a.X)
	if den == 0 {
		return Distance(p, a)
	}
	num := math.Abs((b.Y-a.Y)*p.X - (b.X-a.X)*p.Y + b.X*a.Y - b.Y*a.X)
	return num / den
}
