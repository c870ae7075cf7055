package svgpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func flattenAll(t *testing.T, p Path, tol float64) [][]Point {
	t.Helper()
	var out [][]Point
	for _, sp := range p {
		pts, err := Flatten(sp.Segments, tol)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, pts)
	}
	return out
}

func TestRect(t *testing.T) {
	got := flattenAll(t, Rect(0, 0, 10, 5), 0.1)
	exp := [][]Point{{{0, 0}, {10, 0}, {10, 5}, {0, 5}, {0, 0}}}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRectDegenerate(t *testing.T) {
	p := Rect(3, 4, 0, 0)
	if len(p) != 1 {
		t.Fatalf("degenerate rectangles are still lowered, got %v", p)
	}
}

func TestLine(t *testing.T) {
	got := flattenAll(t, Line(1, 2, 3, 4), 0.1)
	exp := [][]Point{{{1, 2}, {3, 4}}}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestPoly(t *testing.T) {
	for _, test := range []struct {
		p   Path
		exp [][]Point
	}{
		{Polyline(nil), nil},
		{Polyline([]float64{1, 2}), nil},
		{Polyline([]float64{0, 0, 10, 0, 10, 10, 7}), [][]Point{{{0, 0}, {10, 0}, {10, 10}}}},
		{Polygon([]float64{0, 0, 10, 0, 10, 10}), [][]Point{{{0, 0}, {10, 0}, {10, 10}, {0, 0}}}},
	} {
		if diff := cmp.Diff(test.exp, flattenAll(t, test.p, 0.1)); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	}
	if p := Polygon([]float64{0, 0, 1, 1}); !p[0].Closed {
		t.Error("polygons must be closed")
	}
}

func TestEllipseZeroRadius(t *testing.T) {
	if p := Ellipse(10, 10, 0, 5); len(p) != 0 {
		t.Errorf("expected no geometry, got %v", p)
	}
	if p := Ellipse(10, 10, 5, 0); len(p) != 0 {
		t.Errorf("expected no geometry, got %v", p)
	}
}

func TestEllipse(t *testing.T) {
	p := Ellipse(10, 10, 5, 3)
	if len(p) != 1 || !p[0].Closed {
		t.Fatalf("expected one closed subpath, got %v", p)
	}
	pts := flattenAll(t, p, 0.001)[0]
	if pts[0] != (Point{5, 10}) || pts[len(pts)-1] != (Point{5, 10}) {
		t.Errorf("the outline should start and end at (cx-rx, cy), got %v and %v", pts[0], pts[len(pts)-1])
	}
	var above, below bool
	for _, pt := range pts {
		dx, dy := (pt.X-10)/5, (pt.Y-10)/3
		if r := math.Hypot(dx, dy); math.Abs(r-1) > 0.01 {
			t.Errorf("point %v is off the ellipse (%g)", pt, r)
		}
		above = above || pt.Y < 8
		below = below || pt.Y > 12
	}
	if !above || !below {
		t.Errorf("the outline should cover the full ellipse")
	}
}
