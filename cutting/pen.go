package cutting

import "github.com/benoitkugler/svgcut/svgpath"

// pen accumulates the emitted points into polylines.
// A polyline begins with each pen down.
type pen struct {
	cuts    CutSet
	down    bool
	stopped *bool
}

func (p *pen) penUp() { p.down = false }

// penDown starts a new polyline at pt.
func (p *pen) penDown(pt svgpath.Point) {
	if *p.stopped {
		return
	}
	p.cuts = append(p.cuts, Polyline{pt})
	p.down = true
}

// advance extends the current polyline; it is a no-op
// when the pen is up or the run is stopped.
func (p *pen) advance(pt svgpath.Point) {
	if !p.down || *p.stopped {
		return
	}
	last := &p.cuts[len(p.cuts)-1]
	*last = append(*last, pt)
}
