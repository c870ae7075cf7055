// Package cutting flattens an SVG document into the polylines
// followed by a cutting plotter.
//
// The document tree is walked recursively, composing the transforms
// of the nested elements. Every drawable element is lowered to cubic
// bezier chains, which are subdivided until they are within the
// configured smoothness of their polyline approximation.
// Drawable elements and their points are numbered, so that an
// interrupted run may be resumed where it stopped.
package cutting

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgcut/svgdoc"
	"github.com/benoitkugler/svgcut/svgpath"
)

func init() {
	// avoids cyclical static declaration
	// called on package initialization
	nodeFuncs["g"] = groupF
	nodeFuncs["a"] = groupF
	nodeFuncs["switch"] = groupF
	nodeFuncs["svg"] = svgF
	nodeFuncs["use"] = useF
	for tag := range ignoredTags {
		nodeFuncs[tag] = ignoreF
	}
}

// Result is the outcome of a run.
type Result struct {
	Cuts       CutSet     // in user units, see Options.Export
	Checkpoint Checkpoint // progress, to be used to resume the run
	Elements   int        // number of drawable elements reached
	Warnings   []string
	Stopped    bool // the context was cancelled during the run

	Home    svgpath.Point // first point computed
	HasHome bool
}

// frame is the state inherited from the parent elements
type frame struct {
	transform  svgpath.Matrix2D
	visibility string
	plot       bool
	discard    bool // geometry is dropped, elements are still numbered
}

// traversal is the state accumulated during a run
type traversal struct {
	ctx  context.Context
	opts Options
	doc  *svgdoc.Document

	pageWidth, pageHeight float64

	pen     pen
	resume  resumeIndex
	stopped bool

	home     *svgpath.Point
	warned   map[string]bool
	warnings []string

	active map[*svgdoc.Node]bool // containers and use targets being walked

	onComplete func(Checkpoint) // called after each completed element
}

// Run walks the document and returns the cuts it describes.
// The only error returned is a *ConfigError for invalid options.
// Cancelling ctx stops the emission of points: the walk completes
// without emitting and the returned checkpoint is the last
// completed element.
func Run(ctx context.Context, doc *svgdoc.Document, opts Options) (*Result, error) {
	return newTraversal(ctx, doc, opts).run()
}

func newTraversal(ctx context.Context, doc *svgdoc.Document, opts Options) *traversal {
	t := &traversal{
		ctx:        ctx,
		opts:       opts,
		doc:        doc,
		resume:     newResumeIndex(opts.Resume, opts.Checkpoint),
		warned:     make(map[string]bool),
		active:     make(map[*svgdoc.Node]bool),
	}
	t.pen.stopped = &t.stopped
	t.pageWidth, t.pageHeight = doc.Size()
	return t
}

func (t *traversal) run() (*Result, error) {
	if err := t.opts.Validate(); err != nil {
		return nil, err
	}
	root := frame{transform: t.doc.ViewTransform(), visibility: "visible", plot: true}
	if len(t.opts.IDs) == 0 {
		t.walk(t.doc.Root.Children, root)
	} else {
		for _, id := range t.opts.IDs {
			n, ok := t.doc.Lookup(id)
			if !ok {
				t.warn("id:"+id, fmt.Sprintf("Warning: no element with id %q", id))
				continue
			}
			t.walk([]*svgdoc.Node{n}, root)
		}
	}
	t.pen.penUp()

	out := &Result{
		Cuts:       t.pen.cuts,
		Checkpoint: t.resume.last,
		Elements:   t.resume.element,
		Warnings:   t.warnings,
		Stopped:    t.stopped,
	}
	if t.home != nil {
		out.Home, out.HasHome = *t.home, true
	}
	Logger().Info("document flattened", "polylines", len(out.Cuts), "points", out.Cuts.PointCount(),
		"elements", out.Elements, "stopped", out.Stopped)
	return out, nil
}

// checkStopped latches the cancellation of the context
func (t *traversal) checkStopped() bool {
	if !t.stopped && t.ctx.Err() != nil {
		t.stopped = true
		Logger().Info("run stopped", "element", t.resume.last.Element, "node", t.resume.last.Node)
	}
	return t.stopped
}

// warn records msg once for the given key
func (t *traversal) warn(key, msg string) {
	if t.warned[key] {
		return
	}
	t.warned[key] = true
	t.warnings = append(t.warnings, msg)
	Logger().Warn(msg)
}

func describe(n *svgdoc.Node) string {
	if id := n.ID(); id != "" {
		return fmt.Sprintf("<%s id=%q>", n.Name.Local, id)
	}
	return "<" + n.Name.Local + ">"
}

func resolveVisibility(n *svgdoc.Node, inherited string) string {
	v, ok := n.Property("visibility")
	if !ok || v == "" || v == "inherit" {
		return inherited
	}
	return v
}

func isVisible(visibility string) bool {
	return visibility != "hidden" && visibility != "collapse"
}

type nodeFunc func(t *traversal, n *svgdoc.Node, f frame)

var nodeFuncs = map[string]nodeFunc{
	"path":     drawableF,
	"rect":     drawableF,
	"line":     drawableF,
	"polyline": drawableF,
	"polygon":  drawableF,
	"ellipse":  drawableF,
	"circle":   drawableF,
	"text":     textF,
	"image":    imageF,
}

// elements which never produce cuts
var ignoredTags = map[string]bool{
	"metadata":       true,
	"defs":           true,
	"namedview":      true,
	"eggbot":         true,
	"title":          true,
	"desc":           true,
	"pattern":        true,
	"linearGradient": true,
	"radialGradient": true,
	"style":          true,
	"cursor":         true,
	"flowRoot":       true,
	"color-profile":  true,
	"symbol":         true,
	"clipPath":       true,
	"mask":           true,
	"marker":         true,
	"filter":         true,
	"script":         true,
}

func dispatch(n *svgdoc.Node) nodeFunc {
	if !n.IsSVG() {
		if ignoredTags[n.Name.Local] { // sodipodi:namedview and the like
			return ignoreF
		}
		return unsupportedF
	}
	if fn, ok := nodeFuncs[n.Name.Local]; ok {
		return fn
	}
	return unsupportedF
}

// walk processes the nodes in document order
func (t *traversal) walk(nodes []*svgdoc.Node, parent frame) {
	if !parent.plot {
		return
	}
	for _, n := range nodes {
		fn := dispatch(n)
		m, err := svgpath.ParseTransform(n.Attr("transform"))
		if err != nil {
			t.warn("transform:"+err.Error(), fmt.Sprintf("Warning: ignoring %s: %s", describe(n), err))
		}
		f := frame{
			transform:  svgpath.Compose(parent.transform, m),
			visibility: resolveVisibility(n, parent.visibility),
			plot:       parent.plot,
			discard:    parent.discard || err != nil,
		}
		fn(t, n, f)
	}
}

func ignoreF(*traversal, *svgdoc.Node, frame) {}

func groupF(t *traversal, n *svgdoc.Node, f frame) {
	t.pen.penUp()
	if mode, _ := n.AttrNS(svgdoc.NamespaceInkscape, "groupmode"); mode == "layer" {
		f.plot = t.plotLayer(n)
		if !f.plot {
			label, _ := n.AttrNS(svgdoc.NamespaceInkscape, "label")
			Logger().Debug("skipping layer", "label", label)
		}
	}
	t.active[n] = true
	defer delete(t.active, n)
	t.walk(n.Children, f)
}

// nested svg elements are groups placed at x, y
func svgF(t *traversal, n *svgdoc.Node, f frame) {
	xy, err := t.lengths(n, "x", "y")
	if err != nil {
		t.warn("svg:"+err.Error(), fmt.Sprintf("Warning: ignoring %s: %s", describe(n), err))
		return
	}
	f.transform = f.transform.Translate(xy[0], xy[1])
	groupF(t, n, f)
}

// plotLayer returns true if the layer n must be plotted
func (t *traversal) plotLayer(n *svgdoc.Node) bool {
	if display, _ := n.Property("display"); display == "none" {
		return false
	}
	if !t.opts.SelectLayer {
		return true
	}
	label, _ := n.AttrNS(svgdoc.NamespaceInkscape, "label")
	num, ok := layerNumber(label)
	return ok && num == t.opts.Layer
}

// layerNumber parses the digits starting the label
func layerNumber(label string) (int, bool) {
	i := 0
	for i < len(label) && '0' <= label[i] && label[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	num, err := strconv.Atoi(label[:i])
	if err != nil {
		return 0, false
	}
	return num, true
}

func useF(t *traversal, n *svgdoc.Node, f frame) {
	href := n.Href()
	if !strings.HasPrefix(href, "#") {
		t.warn("href:"+href, fmt.Sprintf("Warning: unable to resolve reference %q of %s", href, describe(n)))
		return
	}
	target, ok := t.doc.Lookup(href[1:])
	if !ok {
		t.warn("href:"+href, fmt.Sprintf("Warning: unable to resolve reference %q of %s", href, describe(n)))
		return
	}
	if t.active[target] {
		t.warn("cycle:"+href, fmt.Sprintf("Warning: circular reference %q", href))
		return
	}
	xy, err := t.lengths(n, "x", "y")
	if err != nil {
		t.warn("use:"+err.Error(), fmt.Sprintf("Warning: ignoring %s: %s", describe(n), err))
		return
	}
	// the use visibility, already in f, is the inherited one for the target
	f.transform = f.transform.Translate(xy[0], xy[1])

	t.active[target] = true
	defer delete(t.active, target)
	if target.IsSVG() && target.Name.Local == "symbol" {
		t.walk(target.Children, f)
	} else {
		t.walk([]*svgdoc.Node{target}, f)
	}
}

func textF(t *traversal, n *svgdoc.Node, _ frame) {
	msg := "Warning: unable to draw text; please convert it to a path first."
	if texts := n.TextContent(); len(texts) != 0 {
		Logger().Info("text ignored", "text", strings.Join(texts, "', '"))
		msg = strings.Join(texts, "\n") + "\n" + msg
	}
	t.warn("text", msg)
}

func imageF(t *traversal, _ *svgdoc.Node, _ frame) {
	t.warn("image", "Warning: unable to draw bitmap images; please convert them to line art first.")
}

func unsupportedF(t *traversal, n *svgdoc.Node, _ frame) {
	key := n.Name.Local
	if !n.IsSVG() {
		key = n.Name.Space + ":" + key
	}
	t.warn(key, fmt.Sprintf("Warning: unable to draw <%s> object, please convert it to a path first.", n.Name.Local))
}

func (t *traversal) completeElement() {
	t.resume.complete()
	if t.onComplete != nil {
		t.onComplete(t.resume.last)
	}
}

func drawableF(t *traversal, n *svgdoc.Node, f frame) {
	if t.resume.enter() {
		Logger().Debug("skipping completed element", "index", t.resume.element)
		return
	}
	if t.checkStopped() {
		return
	}
	if f.discard || !isVisible(f.visibility) {
		t.completeElement()
		return
	}
	path, err := lowerFuncs[n.Name.Local](t, n)
	if err != nil {
		t.warn("geometry:"+n.Name.Local, fmt.Sprintf("Warning: ignoring %s with invalid geometry: %s", describe(n), err))
	} else {
		t.plotPath(n, path, f.transform)
	}
	t.pen.penUp()
	if !t.stopped {
		t.completeElement()
	}
}

// plotPath flattens the path of n under the transform m and
// routes its points to the pen. Subpaths overflowing float64
// are dropped.
func (t *traversal) plotPath(n *svgdoc.Node, path svgpath.Path, m svgpath.Matrix2D) {
	for _, sp := range path.Transform(m) {
		points, capped, err := svgpath.FlattenCapped(sp.Segments, t.opts.Smoothness)
		if err != nil { // the tolerance is checked before the run
			return
		}
		if !allFinite(points) {
			t.warn("overflow:"+describe(n), fmt.Sprintf("Warning: ignoring part of %s: coordinates out of range", describe(n)))
			continue
		}
		if capped != 0 {
			Logger().Debug("subdivision limit reached", "element", describe(n), "segments", capped)
			t.warn("capped", "Warning: some curves are too large to be flattened within the smoothness; they are approximated more coarsely.")
		}
		t.pen.penUp()
		for _, p := range points {
			if t.checkStopped() {
				return
			}
			if t.resume.nextPoint() {
				continue
			}
			if t.home == nil {
				home := p
				t.home = &home
			}
			if t.pen.down {
				t.pen.advance(p)
			} else {
				t.pen.penDown(p)
			}
		}
	}
}

func allFinite(points []svgpath.Point) bool {
	for _, p := range points {
		if math.IsInf(p.X, 0) || math.IsNaN(p.X) || math.IsInf(p.Y, 0) || math.IsNaN(p.Y) {
			return false
		}
	}
	return true
}
