package svgraster

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/benoitkugler/svgcut/cutting"
	"github.com/benoitkugler/svgcut/svgpath"
)

func TestRasterCutSet(t *testing.T) {
	cuts := cutting.CutSet{{{X: 0, Y: 5}, {X: 10, Y: 5}}}
	opts := Options{DotsPerMM: 4, Margin: 1, LineWidth: 2}
	img, err := RasterCutSetToImage(cuts, opts)
	if err != nil {
		t.Fatalf("can't raster cuts: %s", err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 28 {
		t.Fatalf("unexpected size %v", b)
	}
	// (5mm, 5mm) is on the line
	if r, _, _, _ := img.At(24, 24).RGBA(); r == 0xffff {
		t.Error("expected the line to be drawn")
	}
	if r, _, _, _ := img.At(24, 4).RGBA(); r != 0xffff {
		t.Error("expected a white background")
	}
}

func TestRasterEmpty(t *testing.T) {
	img, err := RasterCutSetToImage(nil, DefaultOptions)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("unexpected size %v", b)
	}
}

func TestRasterInvalid(t *testing.T) {
	if _, err := RasterCutSetToImage(nil, Options{}); err == nil {
		t.Error("expected error on zero resolution")
	}
	huge := cutting.CutSet{{{}, svgpath.Point{X: 1e6, Y: 1}}}
	if _, err := RasterCutSetToImage(huge, DefaultOptions); err == nil {
		t.Error("expected error on huge preview")
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, cutting.CutSet{{{X: 1, Y: 1}}}, DefaultOptions); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("invalid png: %s", err)
	}
}
