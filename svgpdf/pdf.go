// Implements a PDF backend rendering cut sets as 1:1 cut sheets,
// by wrapping github.com/benoitkugler/pdf.
package svgpdf

import (
	"errors"
	"io"
	"math"

	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"

	"github.com/benoitkugler/svgcut/cutting"
	"github.com/benoitkugler/svgcut/svgpath"
)

// PointsPerMM is the PDF resolution.
const PointsPerMM = 72 / 25.4

// MaxSide is the largest page side accepted by PDF viewers, in mm.
const MaxSide = 14400 / PointsPerMM

// Options configures the cut sheet. Lengths are in millimeters.
type Options struct {
	Margin    float64
	LineWidth float64
}

var DefaultOptions = Options{Margin: 5, LineWidth: 0.2}

// Renderer writes polylines given in millimeters
// to a PDF content stream.
type Renderer struct {
	pdf *contentstream.Appearance
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(cs *contentstream.Appearance) Renderer {
	return Renderer{pdf: cs}
}

func (r Renderer) SetLineWidth(width float64) {
	r.pdf.Ops(
		contentstream.OpSetLineWidth{W: width},
		contentstream.OpSetLineCap{Style: 1},
		contentstream.OpSetLineJoin{Style: 1},
	)
}

// DrawPolyline strokes pl. A single point polyline is drawn as a dot.
func (r Renderer) DrawPolyline(pl cutting.Polyline) {
	if len(pl) == 0 {
		return
	}
	r.pdf.Ops(contentstream.OpMoveTo{X: pl[0].X, Y: pl[0].Y})
	if len(pl) == 1 {
		r.pdf.Ops(contentstream.OpLineTo{X: pl[0].X, Y: pl[0].Y})
	}
	for _, p := range pl[1:] {
		r.pdf.Ops(contentstream.OpLineTo{X: p.X, Y: p.Y})
	}
	r.pdf.Ops(contentstream.OpStroke{})
}

// sheet returns the area covered by the page, in mm: its top left
// corner and its size. It includes the plotter origin and the cuts.
func sheet(cuts cutting.CutSet, opts Options) (origin svgpath.Point, w, h float64) {
	minP, maxP, ok := cuts.Bounds()
	if !ok {
		minP, maxP = svgpath.Point{}, svgpath.Point{}
	}
	origin = svgpath.Point{X: math.Min(0, minP.X) - opts.Margin, Y: math.Min(0, minP.Y) - opts.Margin}
	w = math.Max(0, maxP.X) + opts.Margin - origin.X
	h = math.Max(0, maxP.Y) + opts.Margin - origin.Y
	return origin, w, h
}

// CutSetToDocument renders the cuts, given in millimeters, on a
// single page at scale 1:1, the y axis pointing down as on the plotter.
func CutSetToDocument(cuts cutting.CutSet, opts Options) (model.Document, error) {
	origin, w, h := sheet(cuts, opts)
	if !(w > 0 && h > 0) || w > MaxSide || h > MaxSide {
		return model.Document{}, errors.New("cut sheet is too large for a PDF page")
	}
	pageW, pageH := w*PointsPerMM, h*PointsPerMM
	pdf := contentstream.NewAppearance(pageW, pageH)
	renderer := NewRenderer(&pdf)
	pdf.Ops(
		contentstream.OpSave{},
		contentstream.OpConcat{Matrix: model.Matrix{
			PointsPerMM, 0, 0, -PointsPerMM,
			-origin.X * PointsPerMM, pageH + origin.Y*PointsPerMM,
		}},
	)
	if opts.LineWidth > 0 {
		renderer.SetLineWidth(opts.LineWidth)
	}
	for _, pl := range cuts {
		renderer.DrawPolyline(pl)
	}
	pdf.Ops(contentstream.OpRestore{})

	var doc model.Document
	doc.Catalog.Pages.Kids = append(doc.Catalog.Pages.Kids, pdf.ToPageObject(true))
	return doc, nil
}

// WritePDF renders the cuts and writes the PDF file to w.
func WritePDF(w io.Writer, cuts cutting.CutSet, opts Options) error {
	doc, err := CutSetToDocument(cuts, opts)
	if err != nil {
		return err
	}
	return doc.Write(w, nil)
}

// WritePDFFile is as WritePDF, writing to the named file.
func WritePDFFile(file string, cuts cutting.CutSet, opts Options) error {
	doc, err := CutSetToDocument(cuts, opts)
	if err != nil {
		return err
	}
	return doc.WriteFile(file, nil)
}
