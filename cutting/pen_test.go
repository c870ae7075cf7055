package cutting

import (
	"testing"

	"github.com/benoitkugler/svgcut/svgpath"
	"github.com/google/go-cmp/cmp"
)

func TestPen(t *testing.T) {
	var stopped bool
	p := pen{stopped: &stopped}
	p.advance(svgpath.Point{X: 1}) // pen up: ignored
	p.penDown(svgpath.Point{X: 2})
	p.advance(svgpath.Point{X: 3})
	p.penUp()
	p.advance(svgpath.Point{X: 4})
	p.penDown(svgpath.Point{X: 5}) // single point polylines are kept
	p.penUp()
	p.penDown(svgpath.Point{X: 6})
	stopped = true
	p.advance(svgpath.Point{X: 7})
	p.penDown(svgpath.Point{X: 8})

	exp := CutSet{{{X: 2}, {X: 3}}, {{X: 5}}, {{X: 6}}}
	if diff := cmp.Diff(exp, p.cuts); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
