package cutting

import (
	"github.com/benoitkugler/svgcut/svgdoc"
	"github.com/benoitkugler/svgcut/svgpath"
)

// This file reads the geometry attributes of the drawable
// elements, and lowers them to paths.

type lowerFunc func(t *traversal, n *svgdoc.Node) (svgpath.Path, error)

var lowerFuncs = map[string]lowerFunc{
	"path":     pathL,
	"rect":     rectL,
	"line":     lineL,
	"polyline": polylineL,
	"polygon":  polygonL,
	"ellipse":  ellipseL,
	"circle":   circleL,
}

// vertical attributes resolve percentages against the page height
var verticalAttrs = map[string]bool{"y": true, "y1": true, "y2": true, "cy": true, "ry": true, "height": true}

// lengths reads the attributes as user units; missing ones are 0
func (t *traversal) lengths(n *svgdoc.Node, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, ok := n.LookupAttr(name)
		if !ok {
			continue
		}
		ref := t.pageWidth
		if verticalAttrs[name] {
			ref = t.pageHeight
		}
		f, err := svgdoc.ParseLength(v, ref)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func pathL(_ *traversal, n *svgdoc.Node) (svgpath.Path, error) {
	return svgpath.ParsePath(n.Attr("d"))
}

func rectL(t *traversal, n *svgdoc.Node) (svgpath.Path, error) {
	v, err := t.lengths(n, "x", "y", "width", "height")
	if err != nil {
		return nil, err
	}
	return svgpath.Rect(v[0], v[1], v[2], v[3]), nil
}

func lineL(t *traversal, n *svgdoc.Node) (svgpath.Path, error) {
	v, err := t.lengths(n, "x1", "y1", "x2", "y2")
	if err != nil {
		return nil, err
	}
	return svgpath.Line(v[0], v[1], v[2], v[3]), nil
}

func polylineL(_ *traversal, n *svgdoc.Node) (svgpath.Path, error) {
	coords, err := svgpath.ParseNumbers(n.Attr("points"))
	if err != nil {
		return nil, err
	}
	return svgpath.Polyline(coords), nil
}

func polygonL(_ *traversal, n *svgdoc.Node) (svgpath.Path, error) {
	coords, err := svgpath.ParseNumbers(n.Attr("points"))
	if err != nil {
		return nil, err
	}
	return svgpath.Polygon(coords), nil
}

func ellipseL(t *traversal, n *svgdoc.Node) (svgpath.Path, error) {
	v, err := t.lengths(n, "cx", "cy", "rx", "ry")
	if err != nil {
		return nil, err
	}
	return svgpath.Ellipse(v[0], v[1], v[2], v[3]), nil
}

func circleL(t *traversal, n *svgdoc.Node) (svgpath.Path, error) {
	v, err := t.lengths(n, "cx", "cy", "r")
	if err != nil {
		return nil, err
	}
	return svgpath.Ellipse(v[0], v[1], v[2], v[2]), nil
}
