// Provides parsing of SVG documents into a generic element tree,
// with the document level geometry (size, viewBox) needed
// to map user units to the page.
package svgdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// Namespaces used by the documents we handle.
const (
	NamespaceSVG      = "http://www.w3.org/2000/svg"
	NamespaceXLink    = "http://www.w3.org/1999/xlink"
	NamespaceInkscape = "http://www.inkscape.org/namespaces/inkscape"
	NamespaceSodipodi = "http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd"
)

// usual prefixes, which are kept as is by the decoder
// when the document forgets to declare them
var prefixes = map[string]string{
	NamespaceSVG:      "svg",
	NamespaceXLink:    "xlink",
	NamespaceInkscape: "inkscape",
	NamespaceSodipodi: "sodipodi",
}

// Node is an element of the document tree.
type Node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Node
	Text     string // character data directly inside the element
}

func inNamespace(space, ns string) bool {
	return space == ns || space == prefixes[ns]
}

// IsSVG returns true if the element belongs to the SVG namespace,
// or to no namespace at all.
func (n *Node) IsSVG() bool {
	return n.Name.Space == "" || inNamespace(n.Name.Space, NamespaceSVG)
}

// LookupAttr returns the value of the attribute without namespace
// with the given local name.
func (n *Node) LookupAttr(local string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name.Space == "" && attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

// Attr is as LookupAttr, returning an empty string for missing attributes.
func (n *Node) Attr(local string) string {
	v, _ := n.LookupAttr(local)
	return v
}

// AttrNS returns the value of the attribute in the namespace ns.
func (n *Node) AttrNS(ns, local string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name.Local == local && inNamespace(attr.Name.Space, ns) {
			return attr.Value, true
		}
	}
	return "", false
}

// ID returns the id attribute.
func (n *Node) ID() string { return n.Attr("id") }

// Href returns the target of a link, read from xlink:href or href.
func (n *Node) Href() string {
	if v, ok := n.AttrNS(NamespaceXLink, "href"); ok {
		return v
	}
	return n.Attr("href")
}

// Property returns the value of a presentation property, looking
// first in the style attribute, then in the attribute of the same name.
func (n *Node) Property(name string) (string, bool) {
	if v, ok := ParseStyle(n.Attr("style"))[name]; ok {
		return v, true
	}
	v, ok := n.LookupAttr(name)
	return strings.TrimSpace(v), ok
}

// TextContent returns the non empty character data of the element
// and its descendants, in document order.
func (n *Node) TextContent() []string {
	var out []string
	var walk func(*Node)
	walk = func(n *Node) {
		if s := strings.TrimSpace(n.Text); s != "" {
			out = append(out, s)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// ParseStyle splits a style attribute into its declarations.
func ParseStyle(style string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(style, ";") {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) == 2 {
			k := strings.ToLower(strings.TrimSpace(kv[0]))
			out[k] = strings.TrimSpace(kv[1])
		}
	}
	return out
}

// Document is a parsed SVG file.
type Document struct {
	Root *Node

	ids map[string]*Node
}

// Lookup returns the element with the given id, anywhere in the document.
// When several elements share an id, the first one wins.
func (d *Document) Lookup(id string) (*Node, bool) {
	n, ok := d.ids[id]
	return n, ok
}

// ReadDocumentStream reads the document from the given io.Reader.
// Comments and processing instructions are discarded.
func ReadDocumentStream(stream io.Reader) (*Document, error) {
	doc := &Document{ids: make(map[string]*Node)}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	var stack []*Node
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("invalid svg document: %w", err)
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			se = se.Copy()
			n := &Node{Name: se.Name, Attrs: se.Attr}
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, errors.New("invalid svg document: multiple root elements")
				}
				doc.Root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			if id := n.ID(); id != "" {
				if _, dup := doc.ids[id]; !dup {
					doc.ids[id] = n
				}
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(se)
			}
		}
	}
	if doc.Root == nil {
		return nil, errors.New("invalid svg document: no root element")
	}
	return doc, nil
}

// ReadDocument reads the document from the named file
func ReadDocument(file string) (*Document, error) {
	fin, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadDocumentStream(fin)
}
