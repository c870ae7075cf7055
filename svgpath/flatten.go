package svgpath

import (
	"errors"
	"math"
)

// ErrInvalidTolerance is returned when the flattening tolerance
// is not a finite, strictly positive number.
var ErrInvalidTolerance = errors.New("flattening tolerance must be finite and positive")

// maxSubdivision bounds the number of halvings of one input segment.
const maxSubdivision = 16

// Split cuts the segment at parameter t, using de Casteljau construction.
func (c Cubic) Split(t float64) (Cubic, Cubic) {
	p01, p12, p23 := lerp(c[0], c[1], t), lerp(c[1], c[2], t), lerp(c[2], c[3], t)
	p012, p123 := lerp(p01, p12, t), lerp(p12, p23, t)
	m := lerp(p012, p123, t)
	return Cubic{c[0], p01, p012, m}, Cubic{m, p123, p23, c[3]}
}

// Flatness returns the maximum distance of the control points
// from the infinite line through the end points, or from the start
// point when the end points coincide.
func (c Cubic) Flatness() float64 {
	return math.Max(distToLine(c[1], c[0], c[3]), distToLine(c[2], c[0], c[3]))
}

func distToLine(p, a, b Point) float64 {
	d := b.sub(a)
	l := math.Hypot(d.X, d.Y)
	if l == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	return math.Abs(d.X*(a.Y-p.Y)-d.Y*(a.X-p.X)) / l
}

type pendingCubic struct {
	c     Cubic
	depth int
}

// Flatten approximates the chain with a polyline whose segments
// stay within tolerance of the curve. The result starts with the
// first point of the chain, followed by one point per final sub-segment.
func Flatten(chain []Cubic, tolerance float64) ([]Point, error) {
	out, _, err := FlattenCapped(chain, tolerance)
	return out, err
}

// FlattenCapped is as Flatten, and also returns the number of final
// sub-segments which reached the subdivision limit while still
// farther than tolerance from their chord.
func FlattenCapped(chain []Cubic, tolerance float64) (out []Point, capped int, err error) {
	if !(tolerance > 0) || math.IsInf(tolerance, 1) {
		return nil, 0, ErrInvalidTolerance
	}
	if len(chain) == 0 {
		return nil, 0, nil
	}
	out = make([]Point, 1, len(chain)+1)
	out[0] = chain[0][0]
	var stack []pendingCubic
	for _, seg := range chain {
		stack = append(stack[:0], pendingCubic{c: seg})
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			// a NaN flatness is accepted as flat
			if !(top.c.Flatness() > tolerance) {
				out = append(out, top.c[3])
				continue
			}
			if top.depth >= maxSubdivision {
				capped++
				out = append(out, top.c[3])
				continue
			}
			one, two := top.c.Split(0.5)
			stack = append(stack, pendingCubic{two, top.depth + 1}, pendingCubic{one, top.depth + 1})
		}
	}
	return out, capped, nil
}
