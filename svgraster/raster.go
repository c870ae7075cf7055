// Implements a raster backend to preview cut sets,
// by wrapping rasterx.
package svgraster

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/svgcut/cutting"
	"github.com/benoitkugler/svgcut/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

// MaxSide is the maximum width or height of a preview, in pixels.
const MaxSide = 8192

// Options configures a preview.
type Options struct {
	DotsPerMM float64 // resolution
	Margin    float64 // in millimeters, around the cuts
	LineWidth float64 // in pixels
}

// DefaultOptions is a 4 pixels per millimeter preview.
var DefaultOptions = Options{DotsPerMM: 4, Margin: 2, LineWidth: 1.5}

type Renderer struct {
	dasher *rasterx.Dasher
}

// NewRenderer returns a renderer stroking polylines
// on the given scanner, in black.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	rd := &Renderer{dasher: rasterx.NewDasher(width, height, scanner)}
	rd.SetLineWidth(DefaultOptions.LineWidth)
	rd.SetColor(color.Black)
	return rd
}

// SetLineWidth sets the stroke width, in pixels.
func (rd *Renderer) SetLineWidth(width float64) {
	rd.dasher.SetStroke(toFixed(width), toFixed(4), rasterx.RoundCap, rasterx.RoundCap,
		rasterx.RoundGap, rasterx.Round, nil, 0)
}

func (rd *Renderer) SetColor(c color.Color) {
	rd.dasher.SetColor(c)
}

func toFixed(f float64) fixed.Int26_6 { return fixed.Int26_6(f * 64) }

func toFixedP(p svgpath.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: toFixed(p.X), Y: toFixed(p.Y)}
}

// DrawPolyline strokes the polyline, after applying the transform m.
func (rd *Renderer) DrawPolyline(pl cutting.Polyline, m svgpath.Matrix2D) {
	if len(pl) == 0 {
		return
	}
	rd.dasher.Clear()
	start := svgpath.TransformPoint(m, pl[0])
	rd.dasher.Start(toFixedP(start))
	if len(pl) == 1 { // a dot
		rd.dasher.Line(toFixedP(svgpath.Point{X: start.X + 0.5, Y: start.Y}))
	}
	for _, p := range pl[1:] {
		rd.dasher.Line(toFixedP(svgpath.TransformPoint(m, p)))
	}
	rd.dasher.Stop(false)
	rd.dasher.Draw()
}

// RasterCutSetToImage renders the cuts, given in millimeters, on
// a white background. The image covers the plotter origin and the cuts.
func RasterCutSetToImage(cuts cutting.CutSet, opts Options) (*image.RGBA, error) {
	if !(opts.DotsPerMM > 0) {
		return nil, errors.New("invalid preview resolution")
	}
	minP, maxP, ok := cuts.Bounds()
	if !ok {
		minP, maxP = svgpath.Point{}, svgpath.Point{}
	}
	ox, oy := math.Min(0, minP.X)-opts.Margin, math.Min(0, minP.Y)-opts.Margin
	w := int(math.Ceil((math.Max(0, maxP.X) + opts.Margin - ox) * opts.DotsPerMM))
	h := int(math.Ceil((math.Max(0, maxP.Y) + opts.Margin - oy) * opts.DotsPerMM))
	if w <= 0 || h <= 0 || w > MaxSide || h > MaxSide {
		return nil, errors.New("preview is too large, lower its resolution")
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	renderer := NewRenderer(w, h, scanner)
	if opts.LineWidth > 0 {
		renderer.SetLineWidth(opts.LineWidth)
	}
	m := svgpath.Identity.Scale(opts.DotsPerMM, opts.DotsPerMM).Translate(-ox, -oy)
	for _, pl := range cuts {
		renderer.DrawPolyline(pl, m)
	}
	return img, nil
}

// WritePNG renders the cuts and encodes the image as PNG.
func WritePNG(w io.Writer, cuts cutting.CutSet, opts Options) error {
	img, err := RasterCutSetToImage(cuts, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
