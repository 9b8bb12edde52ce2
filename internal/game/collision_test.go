package game

import (
	"math"
	"testing"
)

func TestPointInRect_EdgesInclusive(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 20}
	for _, p := range []Point{{10, 10}, {30, 30}, {20, 10}, {15, 25}} {
		if !PointInRect(r, p) {
			t.Fatalf("point %v should be inside %v", p, r)
		}
	}
	if PointInRect(r, Point{X: 30.1, Y: 20}) {
		t.Fatal("point past the right edge should be outside")
	}
}

func TestPointInRect_ZeroSize(t *testing.T) {
	r := Rect{X: 5, Y: 5}
	if !PointInRect(r, Point{X: 5, Y: 5}) {
		t.Fatal("zero-size rect should contain its origin")
	}
	if PointInRect(r, Point{X: 5, Y: 6}) {
		t.Fatal("zero-size rect should contain only its origin")
	}
}

func TestRectsOverlap_NegativeDrag(t *testing.T) {
	// Drag from (100,100) back to (50,50).
	drag := Rect{X: 100, Y: 100, W: -50, H: -50}
	if !RectsOverlap(drag, Rect{X: 60, Y: 60, W: 10, H: 10}) {
		t.Fatal("reverse drag should overlap a box inside it")
	}
	if RectsOverlap(drag, Rect{X: 110, Y: 110, W: 10, H: 10}) {
		t.Fatal("reverse drag should not overlap a box past its start corner")
	}
}

func TestRectsOverlap_ZeroSizeClick(t *testing.T) {
	click := Rect{X: 25, Y: 25}
	if !RectsOverlap(Rect{X: 10, Y: 10, W: 20, H: 20}, click) {
		t.Fatal("zero-size box inside a hitbox should overlap")
	}
}

func TestRectsOverlap_Symmetric(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 10, Y: 5, W: 10, H: 10}
	if RectsOverlap(a, b) != RectsOverlap(b, a) {
		t.Fatal("overlap should be symmetric")
	}
	if !RectsOverlap(a, b) {
		t.Fatal("rects sharing an edge should overlap")
	}
}

func TestRect_NormalizeAndCenter(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: -10, H: -4}.Normalize()
	if r.X != 0 || r.Y != 6 || r.W != 10 || r.H != 4 {
		t.Fatalf("normalize gave %+v", r)
	}
	c := Rect{X: 0, Y: 0, W: 10, H: 20}.Center()
	if c.X != 5 || c.Y != 10 {
		t.Fatalf("center gave %+v", c)
	}
}

func TestDistToRect(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	if d := distToRect(Point{X: 5, Y: 5}, r); d != 0 {
		t.Fatalf("inside distance = %v, want 0", d)
	}
	if d := distToRect(Point{X: 13, Y: 14}, r); math.Abs(d-5) > 1e-9 {
		t.Fatalf("corner distance = %v, want 5", d)
	}
}
