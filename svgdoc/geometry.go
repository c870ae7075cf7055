package svgdoc

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/benoitkugler/svgcut/svgpath"
	"github.com/tdewolff/parse/v2/strconv"
)

// UserUnitsPerInch is the resolution of the user unit.
const UserUnitsPerInch = 90

// Page size used when the document does not specify it.
const (
	PageWidth  = 3200
	PageHeight = 800
)

var unitFactors = map[string]float64{
	"":   1,
	"px": 1,
	"pt": UserUnitsPerInch / 72.,
	"pc": UserUnitsPerInch / 6.,
	"mm": UserUnitsPerInch / 25.4,
	"cm": UserUnitsPerInch / 2.54,
	"in": UserUnitsPerInch,
}

var errEmptyLength = errors.New("empty length")

// ParseLength converts an SVG length to user units.
// Percentages are relative to ref.
func ParseLength(s string, ref float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmptyLength
	}
	v, n := strconv.ParseFloat([]byte(s))
	if n == 0 {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &svgpath.ParseError{Input: s, Err: svgpath.ErrNonFinite}
	}
	unit := strings.ToLower(strings.TrimSpace(s[n:]))
	if unit == "%" {
		return v * ref / 100, nil
	}
	f, ok := unitFactors[unit]
	if !ok {
		return 0, fmt.Errorf("unsupported unit in length %q", s)
	}
	return v * f, nil
}

// Bounds defines a bounding box, such as a viewport
type Bounds struct{ X, Y, W, H float64 }

// length returns the root attribute as user units, or def if
// it is missing or invalid
func (d *Document) length(name string, def float64) (float64, bool) {
	v, err := ParseLength(d.Root.Attr(name), def)
	if err != nil {
		return def, false
	}
	return v, true
}

// Size returns the page size in user units, using PageWidth
// and PageHeight for missing values.
func (d *Document) Size() (w, h float64) {
	w, _ = d.length("width", PageWidth)
	h, _ = d.length("height", PageHeight)
	return w, h
}

// ViewBox returns the viewBox of the root element, if any
// valid one is present.
func (d *Document) ViewBox() (Bounds, bool) {
	v, ok := d.Root.LookupAttr("viewBox")
	if !ok {
		return Bounds{}, false
	}
	points, err := svgpath.ParseNumbers(v)
	if err != nil || len(points) != 4 || points[2] <= 0 || points[3] <= 0 {
		return Bounds{}, false
	}
	return Bounds{points[0], points[1], points[2], points[3]}, true
}

// ViewTransform returns the transform from the root user space to
// the page: the viewBox is scaled to fit the width and height of the root.
// When width or height is missing, the viewBox is only translated.
func (d *Document) ViewTransform() svgpath.Matrix2D {
	vb, ok := d.ViewBox()
	if !ok {
		return svgpath.Identity
	}
	sx, sy := 1., 1.
	w, okW := d.length("width", PageWidth)
	h, okH := d.length("height", PageHeight)
	if okW && okH {
		sx, sy = w/vb.W, h/vb.H
	}
	return svgpath.Identity.Scale(sx, sy).Translate(-vb.X, -vb.Y)
}
