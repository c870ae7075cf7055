package svgpath

import (
	"math"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// maxDx is the maximum radians a cubic splice is allowed to span
// in ellipse parametric when approximating an off-axis ellipse.
const maxDx float64 = math.Pi / 8

// Rect returns the closed outline (x,y) -> (x+w,y) -> (x+w,y+h) -> (x,y+h).
// Degenerate sizes are not filtered.
func Rect(x, y, w, h float64) Path {
	var b Builder
	b.Start(Point{x, y})
	b.Line(Point{x + w, y})
	b.Line(Point{x + w, y + h})
	b.Line(Point{x, y + h})
	b.Stop(true)
	return b.Path()
}

// Line returns the open path (x1,y1) -> (x2,y2).
func Line(x1, y1, x2, y2 float64) Path {
	var b Builder
	b.Start(Point{x1, y1})
	b.Line(Point{x2, y2})
	return b.Path()
}

// Polyline returns the open path through the given
// coordinate pairs. A trailing odd coordinate is ignored.
func Polyline(coords []float64) Path {
	return polyPath(coords, false)
}

// Polygon is as Polyline, with a closing segment back to the first point.
func Polygon(coords []float64) Path {
	return polyPath(coords, true)
}

func polyPath(coords []float64, closeLoop bool) Path {
	var b Builder
	for i := 0; i+1 < len(coords); i += 2 {
		p := Point{coords[i], coords[i+1]}
		if i == 0 {
			b.Start(p)
		} else {
			b.Line(p)
		}
	}
	b.Stop(closeLoop)
	return b.Path()
}

// Ellipse returns the outline of the axis aligned ellipse, as two
// half arcs (cx-rx,cy) -> (cx+rx,cy) -> (cx-rx,cy).
// A zero radius gives an empty path.
func Ellipse(cx, cy, rx, ry float64) Path {
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil
	}
	var b Builder
	left, right := Point{cx - rx, cy}, Point{cx + rx, cy}
	b.Start(left)
	b.ArcTo(rx, ry, 0, true, false, right)
	b.ArcTo(rx, ry, 0, true, false, left)
	b.Stop(true)
	return b.Path()
}

// ArcTo adds an elliptical arc from the current point to end,
// following the SVG 'A' command semantics : rx, ry are the radii,
// rot is the x axis rotation in degrees.
func (b *Builder) ArcTo(rx, ry, rot float64, largeArc, sweep bool, end Point) {
	b.ensureOpen()
	if b.cur == end {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		b.Line(end)
		return
	}
	rotX := rot * math.Pi / 180 // Convert degress to radians
	cx, cy := findEllipseCenter(&rx, &ry, rotX, b.cur.X, b.cur.Y, end.X, end.Y, !sweep, !largeArc)
	b.addArc(rx, ry, rotX, largeArc, sweep, cx, cy, end)
}

// addArc approximates the arc of center (cx, cy) with cubic segments
func (b *Builder) addArc(rx, ry, rotX float64, largeArc, sweep bool, cx, cy float64, end Point) {
	px, py := b.cur.X, b.cur.Y
	startAngle := math.Atan2(py-cy, px-cx) - rotX
	endAngle := math.Atan2(end.Y-cy, end.X-cx) - rotX
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	// Approximate ellipse using cubic bezeir splines
	etaStart := math.Atan2(math.Sin(startAngle)/ry, math.Cos(startAngle)/rx)
	etaEnd := math.Atan2(math.Sin(endAngle)/ry, math.Cos(endAngle)/rx)
	deltaEta := etaEnd - etaStart
	if arcBig != largeArc {
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	// This check might be needed if the center point of the elipse is
	// at the midpoint of the start and end lines.
	if deltaEta < 0 && sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !sweep {
		deltaEta -= math.Pi * 2
	}

	// Round up to determine number of cubic splines to approximate bezier curve
	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs) // span of each segment
	// Approximate the ellipse using a set of cubic bezier curves by the method of
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly := px, py
	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)
	ldx, ldy := ellipsePrime(rx, ry, sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var px, py float64
		if i == segs {
			px, py = end.X, end.Y // Just makes the end point exact; no roundoff error
		} else {
			px, py = ellipsePointAt(rx, ry, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(rx, ry, sinTheta, cosTheta, eta)
		b.CubeBezier(Point{lx + alpha*ldx, ly + alpha*ldy},
			Point{px - alpha*dx, py - alpha*dy}, Point{px, py})
		lx, ly, ldx, ldy = px, py, dx, dy
	}
}

// ellipsePrime gives tangent vectors for parameterized elipse; a, b, radii, eta parameter
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for parameterized elipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the center of the Ellipse if it exists. If it does not exist,
// the radius values will be increased minimally for a solution to be possible
// while preserving the ra to rb ratio.  ra and rb arguments are pointers that can be
// checked after the call to see if the values changed. This method uses coordinate transformations
// to reduce the problem to finding the center of a circle that includes the origin
// and an arbitrary point. The center of the circle is then transformed
// back to the original coordinates and returned.
func findEllipseCenter(ra, rb *float64, rotX, startX, startY, endX, endY float64, sweep, smallArc bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	// Move origin to start point
	nx, ny := endX-startX, endY-startY

	// Rotate ellipse x-axis to coordinate x-axis
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	// Scale X dimension so that ra = rb
	nx *= *rb / *ra // Now the ellipse is a circle radius rb; therefore foci and center coincide

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *rb**rb < midlenSq {
		// Requested ellipse does not exist; scale ra, rb to fit. Length of
		// span is greater than max width of ellipse, must scale *ra, *rb
		nrb := math.Sqrt(midlenSq)
		if *ra == *rb {
			*ra = nrb // prevents roundoff
		} else {
			*ra = *ra * nrb / *rb
		}
		*rb = nrb
	} else {
		hr = math.Sqrt(*rb**rb-midlenSq) / math.Sqrt(midlenSq)
	}
	// Notice that if hr is zero, both answers are the same.
	if sweep == smallArc {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	// reverse scale
	cx *= *ra / *rb
	//Reverse rotate and translate back to original coordinates
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}
