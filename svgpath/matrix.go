package svgpath

import "github.com/srwiley/rasterx"

// Matrix2D represents the affine transform
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
//
// mapping (x, y) to (A*x + C*y + E, B*x + D*y + F).
// Mult, Translate, Scale, Rotate, SkewX and SkewY each
// return a.Mult(other), so that other is applied first.
type Matrix2D = rasterx.Matrix2D

// Identity is the transform leaving points unchanged.
var Identity = rasterx.Identity

// Compose returns the transform of a child node whose own
// transform is local, inside a parent whose accumulated transform is parent.
func Compose(parent, local Matrix2D) Matrix2D { return parent.Mult(local) }

// TransformPoint applies the matrix to p.
func TransformPoint(m Matrix2D, p Point) Point {
	x, y := m.Transform(p.X, p.Y)
	return Point{x, y}
}
