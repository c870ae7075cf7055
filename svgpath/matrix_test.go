package svgpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestComposeAssociative(t *testing.T) {
	m1 := Identity.Translate(3, -2).Rotate(0.3)
	m2 := Identity.Scale(2, 0.5).SkewX(0.1)
	m3 := Matrix2D{A: 1.5, B: 0.2, C: -0.7, D: 0.9, E: 11, F: 4}

	left := Compose(Compose(m1, m2), m3)
	right := Compose(m1, Compose(m2, m3))
	if diff := cmp.Diff(left, right, approx); diff != "" {
		t.Errorf("composition is not associative (-left +right):\n%s", diff)
	}

	p := Point{7, -3}
	got := TransformPoint(left, p)
	exp := TransformPoint(m1, TransformPoint(m2, TransformPoint(m3, p)))
	if diff := cmp.Diff(exp, got, approx); diff != "" {
		t.Errorf("unexpected point (-want +got):\n%s", diff)
	}
}

func TestComposeOrder(t *testing.T) {
	// the local transform is applied first
	m := Compose(Identity.Translate(10, 0), Identity.Scale(2, 2))
	if got := TransformPoint(m, Point{1, 1}); got != (Point{12, 2}) {
		t.Errorf("expected (12, 2), got %v", got)
	}
}

func TestParseTransform(t *testing.T) {
	for _, test := range []struct {
		in  string
		exp Matrix2D
	}{
		{"", Identity},
		{"translate(10,20)", Matrix2D{A: 1, B: 0, C: 0, D: 1, E: 10, F: 20}},
		{"translate(10)", Matrix2D{A: 1, B: 0, C: 0, D: 1, E: 10, F: 0}},
		{"scale(2)", Matrix2D{A: 2, B: 0, C: 0, D: 2, E: 0, F: 0}},
		{"scale(2, 1)", Matrix2D{A: 2, B: 0, C: 0, D: 1, E: 0, F: 0}},
		{"matrix(1 2 3 4 5 6)", Matrix2D{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}},
		{"translate(10, 0) scale(2)", Matrix2D{A: 2, B: 0, C: 0, D: 2, E: 10, F: 0}},
		{"translate(10, 0),scale(2)", Matrix2D{A: 2, B: 0, C: 0, D: 2, E: 10, F: 0}},
		{"rotate(90)", Matrix2D{A: 0, B: 1, C: -1, D: 0, E: 0, F: 0}},
		{"rotate(180 5 5)", Matrix2D{A: -1, B: 0, C: 0, D: -1, E: 10, F: 10}},
		{"skewX(45)", Matrix2D{A: 1, B: 0, C: 1, D: 1, E: 0, F: 0}},
	} {
		got, err := ParseTransform(test.in)
		if err != nil {
			t.Fatalf("parsing %q: %s", test.in, err)
		}
		if diff := cmp.Diff(test.exp, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("transform %q (-want +got):\n%s", test.in, diff)
		}
	}
}

func TestParseTransformInvalid(t *testing.T) {
	for _, in := range []string{
		"translate(1,2,3)",
		"rotate()",
		"foo(1)",
		"scale(a)",
		"matrix(1 2 3)",
	} {
		m, err := ParseTransform(in)
		if err == nil {
			t.Errorf("expected error for %q", in)
			continue
		}
		var perr *ParseError
		if !errorsAs(err, &perr) {
			t.Errorf("expected a *ParseError for %q, got %T", in, err)
		}
		if m != Identity {
			t.Errorf("expected Identity on error, got %v", m)
		}
	}
}

func TestRotateKeepsDistance(t *testing.T) {
	m := Identity.Rotate(1.234)
	p := TransformPoint(m, Point{3, 4})
	if d := math.Hypot(p.X, p.Y); math.Abs(d-5) > 1e-12 {
		t.Errorf("rotation changed the norm: %g", d)
	}
}
