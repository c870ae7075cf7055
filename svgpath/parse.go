package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

var (
	errParamMismatch = errors.New("param mismatch")
	errBadNumber     = errors.New("expected number")
	errBadFlag       = errors.New("expected arc flag 0 or 1")
	errNoCommand     = errors.New("expected path command")
)

// ErrNonFinite is returned for numbers overflowing float64.
var ErrNonFinite = errors.New("number out of range")

func isFinite(f float64) bool { return !math.IsInf(f, 0) && !math.IsNaN(f) }

// ParseError reports malformed path data, transform or number list.
type ParseError struct {
	Input string
	Pos   int // byte offset in Input
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid svg data %q at offset %d: %s", e.Input, e.Pos, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// skipCommaWhitespace returns the number of leading separator bytes
func skipCommaWhitespace(b []byte) int {
	i := 0
	for i < len(b) && (isSpace(b[i]) || b[i] == ',') {
		i++
	}
	return i
}

// ParseNumbers reads a list of numbers separated by commas and/or spaces,
// as found in points, viewBox or transform arguments.
func ParseNumbers(s string) ([]float64, error) {
	var out []float64
	b := []byte(s)
	i := skipCommaWhitespace(b)
	for i < len(b) {
		f, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return out, &ParseError{Input: s, Pos: i, Err: errBadNumber}
		}
		if !isFinite(f) {
			return out, &ParseError{Input: s, Pos: i, Err: ErrNonFinite}
		}
		out = append(out, f)
		i += n
		i += skipCommaWhitespace(b[i:])
	}
	return out, nil
}

func readTransformAttr(m1 Matrix2D, k string, points []float64) (Matrix2D, error) {
	ln := len(points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(points[1], points[2]).
				Rotate(points[0]*math.Pi/180).
				Translate(-points[1], -points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(points[0], points[0])
		} else if ln == 2 {
			m1 = m1.Scale(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(Matrix2D{
				A: points[0],
				B: points[1],
				C: points[2],
				D: points[3],
				E: points[4],
				F: points[5]})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, fmt.Errorf("unknown transform %q", k)
	}
	return m1, nil
}

// ParseTransform parses a transform attribute, such as
// "translate(10,20) scale(2)". The list is applied left to right,
// the rightmost transform being the closest to the element.
// An empty string gives Identity.
func ParseTransform(v string) (Matrix2D, error) {
	m1 := Identity
	offset := 0
	for _, t := range strings.Split(v, ")") {
		pos := offset
		offset += len(t) + 1
		t = strings.Trim(t, ", \t\n\r")
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return Identity, &ParseError{Input: v, Pos: pos, Err: errParamMismatch} // badly formed transformation
		}
		points, err := ParseNumbers(d[1])
		if err != nil {
			return Identity, &ParseError{Input: v, Pos: pos, Err: err}
		}
		m1, err = readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])), points)
		if err != nil {
			return Identity, &ParseError{Input: v, Pos: pos, Err: err}
		}
	}
	return m1, nil
}

// number of arguments of each path command
var pathArgs = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2,
	'A': 7, 'Z': 0,
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// pathCursor is used while parsing path data
type pathCursor struct {
	Builder
	points  []float64
	lastKey byte  // upper case version of the previous command
	ctrl    Point // previous control point, for smooth curves
}

// ParsePath parses SVG path data into cubic chains.
// Relative, shorthand, quadratic and arc commands are all supported.
func ParsePath(d string) (Path, error) {
	var c pathCursor
	if err := c.compilePath(d); err != nil {
		return nil, err
	}
	return c.Path(), nil
}

func (c *pathCursor) compilePath(d string) error {
	b := []byte(d)
	i := skipCommaWhitespace(b)
	var cmd byte
	for i < len(b) {
		if _, ok := pathArgs[upper(b[i])]; ok {
			cmd = b[i]
			i++
		} else if cmd == 0 || upper(cmd) == 'Z' {
			return &ParseError{Input: d, Pos: i, Err: errNoCommand}
		} // else: implicit repetition of the previous command
		key := upper(cmd)
		i += skipCommaWhitespace(b[i:])
		c.points = c.points[:0]
		for j := 0; j < pathArgs[key]; j++ {
			if i >= len(b) {
				return &ParseError{Input: d, Pos: i, Err: errParamMismatch}
			}
			if key == 'A' && (j == 3 || j == 4) {
				if b[i] != '0' && b[i] != '1' {
					return &ParseError{Input: d, Pos: i, Err: errBadFlag}
				}
				c.points = append(c.points, float64(b[i]-'0'))
				i++
			} else {
				f, n := strconv.ParseFloat(b[i:])
				if n == 0 {
					return &ParseError{Input: d, Pos: i, Err: errBadNumber}
				}
				if !isFinite(f) {
					return &ParseError{Input: d, Pos: i, Err: ErrNonFinite}
				}
				c.points = append(c.points, f)
				i += n
			}
			i += skipCommaWhitespace(b[i:])
		}
		c.addSeg(cmd)
		// coordinates following a moveto are implicit linetos
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		}
	}
	return nil
}

func (c *pathCursor) addSeg(cmd byte) {
	rel := 'a' <= cmd && cmd <= 'z'
	key := upper(cmd)
	cur := c.cur
	at := func(k int) Point {
		p := Point{c.points[k], c.points[k+1]}
		if rel {
			p = p.add(cur)
		}
		return p
	}
	switch key {
	case 'M':
		c.Start(at(0))
	case 'L':
		c.Line(at(0))
	case 'H':
		x := c.points[0]
		if rel {
			x += cur.X
		}
		c.Line(Point{x, cur.Y})
	case 'V':
		y := c.points[0]
		if rel {
			y += cur.Y
		}
		c.Line(Point{cur.X, y})
	case 'C':
		c2 := at(2)
		c.CubeBezier(at(0), c2, at(4))
		c.ctrl = c2
	case 'S':
		c1 := cur
		if c.lastKey == 'C' || c.lastKey == 'S' {
			c1 = cur.reflect(c.ctrl)
		}
		c2 := at(0)
		c.CubeBezier(c1, c2, at(2))
		c.ctrl = c2
	case 'Q':
		ctrl := at(0)
		c.QuadBezier(ctrl, at(2))
		c.ctrl = ctrl
	case 'T':
		ctrl := cur
		if c.lastKey == 'Q' || c.lastKey == 'T' {
			ctrl = cur.reflect(c.ctrl)
		}
		c.QuadBezier(ctrl, at(0))
		c.ctrl = ctrl
	case 'A':
		c.ArcTo(c.points[0], c.points[1], c.points[2], c.points[3] != 0, c.points[4] != 0, at(5))
	case 'Z':
		c.Stop(true)
	}
	c.lastKey = key
}
