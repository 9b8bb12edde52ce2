package game

import "math"

// Point is a position on the continuous world plane.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. W and H may be negative for rectangles
// built from a drag that moved up or left; use Normalize before reading them.
type Rect struct {
	X, Y float64
	W, H float64
}

// Normalize returns the same rectangle with non-negative extents.
func (r Rect) Normalize() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	n := r.Normalize()
	return Point{X: n.X + n.W/2, Y: n.Y + n.H/2}
}

// Inset grows (positive d) or shrinks (negative d) the rectangle on every side.
func (r Rect) Inset(d float64) Rect {
	n := r.Normalize()
	return Rect{X: n.X - d, Y: n.Y - d, W: n.W + 2*d, H: n.H + 2*d}
}

// PointInRect reports whether p lies inside r. Edges are inclusive so a
// zero-size rectangle still contains its own origin.
func PointInRect(r Rect, p Point) bool {
	n := r.Normalize()
	return p.X >= n.X && p.X <= n.X+n.W && p.Y >= n.Y && p.Y <= n.Y+n.H
}

// RectsOverlap reports whether a and b share at least one point.
func RectsOverlap(a, b Rect) bool {
	a = a.Normalize()
	b = b.Normalize()
	return a.X <= b.X+b.W && b.X <= a.X+a.W && a.Y <= b.Y+b.H && b.Y <= a.Y+a.H
}

// distToRect returns the distance from p to the nearest point of r (0 inside).
func distToRect(p Point, r Rect) float64 {
	n := r.Normalize()
	dx := max(n.X-p.X, 0, p.X-(n.X+n.W))
	dy := max(n.Y-p.Y, 0, p.Y-(n.Y+n.H))
	return math.Hypot(dx, dy)
}
