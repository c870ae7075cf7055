package cutting

import (
	"errors"
	"math"

	"github.com/benoitkugler/svgcut/svgpath"
)

// DefaultSmoothness is the default flattening tolerance, in user units.
const DefaultSmoothness = 0.2

var errNegative = errors.New("must not be negative")

// Options configures a run.
type Options struct {
	// Smoothness is the maximum distance between a curve
	// and its polyline approximation, in user units.
	Smoothness float64

	// If SelectLayer is true, only the layers whose label
	// starts with the number Layer are plotted.
	SelectLayer bool
	Layer       int

	// If Resume is true, the elements and points already
	// processed according to Checkpoint are skipped.
	Resume     bool
	Checkpoint Checkpoint

	// IDs restricts the run to the elements with these ids.
	IDs []string

	// Post processing applied by Export, in millimeters.
	Autocrop         bool
	XOffset, YOffset float64
}

// DefaultOptions returns the options of a plain run.
func DefaultOptions() Options {
	return Options{Smoothness: DefaultSmoothness}
}

// Validate returns a *ConfigError for unusable options.
func (o Options) Validate() error {
	if !(o.Smoothness > 0) || math.IsInf(o.Smoothness, 1) {
		return &ConfigError{Field: "smoothness", Value: o.Smoothness, Err: svgpath.ErrInvalidTolerance}
	}
	if o.SelectLayer && o.Layer < 0 {
		return &ConfigError{Field: "layer", Value: o.Layer, Err: errNegative}
	}
	if o.Resume && (o.Checkpoint.Element < 0 || o.Checkpoint.Node < 0) {
		return &ConfigError{Field: "checkpoint", Value: o.Checkpoint, Err: errNegative}
	}
	for _, v := range []float64{o.XOffset, o.YOffset} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ConfigError{Field: "offset", Value: v, Err: errors.New("must be finite")}
		}
	}
	return nil
}

// Export converts a cut set in user units to the output
// in millimeters, with autocrop and offsets applied.
func (o Options) Export(cuts CutSet) CutSet {
	out := cuts.ToMillimeters()
	if o.Autocrop {
		out = out.Autocrop()
	}
	return out.Offset(o.XOffset, o.YOffset)
}
