package cutting

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/benoitkugler/svgcut/svgdoc"
	"github.com/benoitkugler/svgcut/svgpath"
)

// MillimetersPerUnit converts user units to millimeters.
const MillimetersPerUnit = 25.4 / svgdoc.UserUnitsPerInch

// Polyline is a continuous cut, drawn with the pen down.
// It may contain a single point.
type Polyline []svgpath.Point

// CutSet is the ordered list of cuts of a document.
type CutSet []Polyline

// MarshalJSON encodes the polyline as a list of [x, y] pairs.
func (pl Polyline) MarshalJSON() ([]byte, error) {
	pairs := make([][2]float64, len(pl))
	for i, p := range pl {
		pairs[i] = [2]float64{p.X, p.Y}
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON decodes a list of [x, y] pairs.
func (pl *Polyline) UnmarshalJSON(data []byte) error {
	var pairs [][2]float64
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	out := make(Polyline, len(pairs))
	for i, p := range pairs {
		out[i] = svgpath.Point{X: p[0], Y: p[1]}
	}
	*pl = out
	return nil
}

// PointCount returns the total number of points.
func (c CutSet) PointCount() int {
	n := 0
	for _, pl := range c {
		n += len(pl)
	}
	return n
}

func (c CutSet) mapPoints(f func(svgpath.Point) svgpath.Point) CutSet {
	out := make(CutSet, len(c))
	for i, pl := range c {
		npl := make(Polyline, len(pl))
		for j, p := range pl {
			npl[j] = f(p)
		}
		out[i] = npl
	}
	return out
}

// ToMillimeters converts from user units to millimeters.
func (c CutSet) ToMillimeters() CutSet {
	return c.mapPoints(func(p svgpath.Point) svgpath.Point {
		return svgpath.Point{X: p.X * MillimetersPerUnit, Y: p.Y * MillimetersPerUnit}
	})
}

// Offset translates every point by (dx, dy).
func (c CutSet) Offset(dx, dy float64) CutSet {
	return c.mapPoints(func(p svgpath.Point) svgpath.Point {
		return svgpath.Point{X: p.X + dx, Y: p.Y + dy}
	})
}

// Bounds returns the min and max coordinates of the points.
// ok is false for an empty set.
func (c CutSet) Bounds() (min, max svgpath.Point, ok bool) {
	min = svgpath.Point{X: math.Inf(1), Y: math.Inf(1)}
	max = svgpath.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, pl := range c {
		for _, p := range pl {
			min.X, min.Y = math.Min(min.X, p.X), math.Min(min.Y, p.Y)
			max.X, max.Y = math.Max(max.X, p.X), math.Max(max.Y, p.Y)
			ok = true
		}
	}
	return min, max, ok
}

// Autocrop translates the set so that its smallest
// coordinates are zero.
func (c CutSet) Autocrop() CutSet {
	min, _, ok := c.Bounds()
	if !ok {
		return c
	}
	return c.Offset(-min.X, -min.Y)
}

// WriteJSON encodes the set as a JSON list of polylines.
func (c CutSet) WriteJSON(w io.Writer) error {
	if c == nil {
		c = CutSet{}
	}
	return json.NewEncoder(w).Encode(c)
}

// ReadCutSet decodes a set written by WriteJSON.
func ReadCutSet(r io.Reader) (CutSet, error) {
	var out CutSet
	err := json.NewDecoder(r).Decode(&out)
	return out, err
}

// DumpPath returns the default location of the dump file.
func DumpPath() string {
	return filepath.Join(os.TempDir(), "silhouette.dump")
}

// WriteDump writes the set as JSON in the given file.
func (c CutSet) WriteDump(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err = c.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
