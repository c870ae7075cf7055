// Implements an abstract representation of
// svg geometry as chains of cubic bezier segments,
// which can then be flattened into polylines.
package svgpath

import (
	"fmt"
	"strings"
)

// Point is a position in user units.
type Point struct{ X, Y float64 }

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) scale(f float64) Point { return Point{p.X * f, p.Y * f} }
func lerp(a, b Point, t float64) Point { return a.add(b.sub(a).scale(t)) }
func (p Point) reflect(c Point) Point { return p.scale(2).sub(c) } // reflection of c through p
func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Cubic is a cubic bezier segment: start, two control points, end.
// Straight lines are stored with their control points on the end points.
type Cubic [4]Point

// Subpath is an ordered chain of cubic segments,
// each one starting where the previous ends.
type Subpath struct {
	Segments []Cubic
	Closed   bool
}

// Start returns the first point of the chain.
func (s Subpath) Start() Point { return s.Segments[0][0] }

// Path describes the geometry of one element.
// Every higher-level shape is reduced to a Path.
type Path []Subpath

// Transform returns a copy of the path with every point mapped by m.
func (p Path) Transform(m Matrix2D) Path {
	out := make(Path, len(p))
	for i, sp := range p {
		segs := make([]Cubic, len(sp.Segments))
		for j, c := range sp.Segments {
			segs[j] = Cubic{TransformPoint(m, c[0]), TransformPoint(m, c[1]), TransformPoint(m, c[2]), TransformPoint(m, c[3])}
		}
		out[i] = Subpath{Segments: segs, Closed: sp.Closed}
	}
	return out
}

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	var chunks []string
	for _, sp := range p {
		if len(sp.Segments) == 0 {
			continue
		}
		s := sp.Start()
		chunks = append(chunks, fmt.Sprintf("M%4.3f,%4.3f", s.X, s.Y))
		for _, c := range sp.Segments {
			chunks = append(chunks, fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f",
				c[1].X, c[1].Y, c[2].X, c[2].Y, c[3].X, c[3].Y))
		}
		if sp.Closed {
			chunks = append(chunks, "Z")
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Builder accumulates drawing commands into a Path.
// Subpaths made of a single moveto are dropped.
type Builder struct {
	path       Path
	start, cur Point
	open       bool // a subpath is in progress
}

// Current returns the current point.
func (b *Builder) Current() Point { return b.cur }

// Start starts a new subpath at the given point.
func (b *Builder) Start(a Point) {
	b.Stop(false) // implicit end if currently in path
	if n := len(b.path); n > 0 && len(b.path[n-1].Segments) == 0 {
		b.path = b.path[:n-1]
	}
	b.path = append(b.path, Subpath{})
	b.start, b.cur = a, a
	b.open = true
}

// a drawing command after a close starts from the closed subpath start
func (b *Builder) ensureOpen() {
	if !b.open {
		b.Start(b.cur)
	}
}

func (b *Builder) add(c Cubic) {
	last := &b.path[len(b.path)-1]
	last.Segments = append(last.Segments, c)
	b.cur = c[3]
}

// Line adds a linear segment to the current subpath.
func (b *Builder) Line(p Point) {
	b.ensureOpen()
	b.add(Cubic{b.cur, b.cur, p, p})
}

// QuadBezier adds a quadratic segment, elevated to a cubic one.
func (b *Builder) QuadBezier(ctrl, p Point) {
	b.ensureOpen()
	c1 := lerp(b.cur, ctrl, 2./3)
	c2 := lerp(p, ctrl, 2./3)
	b.add(Cubic{b.cur, c1, c2, p})
}

// CubeBezier adds a cubic segment to the current subpath.
func (b *Builder) CubeBezier(c1, c2, p Point) {
	b.ensureOpen()
	b.add(Cubic{b.cur, c1, c2, p})
}

// Stop ends the current subpath. If closeLoop is true, a line
// back to the subpath start is added when needed.
func (b *Builder) Stop(closeLoop bool) {
	if !b.open {
		return
	}
	if closeLoop {
		if b.cur != b.start {
			b.add(Cubic{b.cur, b.cur, b.start, b.start})
		}
		b.path[len(b.path)-1].Closed = true
		b.cur = b.start
	}
	b.open = false
}

// Path ends the current subpath and returns the accumulated geometry.
func (b *Builder) Path() Path {
	b.Stop(false)
	out := make(Path, 0, len(b.path))
	for _, sp := range b.path {
		if len(sp.Segments) != 0 {
			out = append(out, sp)
		}
	}
	return out
}
