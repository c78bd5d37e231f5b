package kml

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html/charset"
)

// Namespace is the KML 2.2 namespace. Elements in the older Google Earth
// namespaces, or in no namespace at all, are accepted as well.
const Namespace = "http://www.opengis.net/kml/2.2"

const googleEarthNamespace = "http://earth.google.com/kml/"

// node is one element of the parsed tree. text holds the character data that
// appears before the first child element.
type node struct {
	name     xml.Name
	text     strings.Builder
	children []*node
}

func (n *node) is(local string) bool {
	if n.name.Local != local {
		return false
	}
	space := n.name.Space
	return space == "" || space == Namespace || strings.HasPrefix(space, googleEarthNamespace)
}

// child returns the first direct child with the given local name.
func (n *node) child(local string) *node {
	for _, c := range n.children {
		if c.is(local) {
			return c
		}
	}
	return nil
}

func (n *node) childrenNamed(local string) []*node {
	var out []*node
	for _, c := range n.children {
		if c.is(local) {
			out = append(out, c)
		}
	}
	return out
}

// find returns the first descendant with the given local name in document order.
func (n *node) find(local string) *node {
	for _, c := range n.children {
		if c.is(local) {
			return c
		}
		if d := c.find(local); d != nil {
			return d
		}
	}
	return nil
}

func (n *node) collect(local string, out []*node) []*node {
	for _, c := range n.children {
		if c.is(local) {
			out = append(out, c)
			continue
		}
		out = c.collect(local, out)
	}
	return out
}

// Document is a parsed KML document.
type Document struct {
	root *node
}

// Parse decodes KML bytes. Encodings other than UTF-8 are honoured through the
// XML declaration.
func Parse(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	var root *node
	var stack []*node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "parse KML"), ErrDocumentParse)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.Mark(errors.Newf("parse KML: unexpected second root element <%s>", t.Name.Local), ErrDocumentParse)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			if len(top.children) == 0 {
				top.text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, errors.Mark(errors.New("parse KML: no root element"), ErrDocumentParse)
	}
	return &Document{root: root}, nil
}

// Placemarks returns every placemark in the document, at any depth, in document order.
func (d *Document) Placemarks() []Placemark {
	nodes := d.root.collect("Placemark", nil)
	out := make([]Placemark, len(nodes))
	for i, n := range nodes {
		out[i] = Placemark{n: n}
	}
	return out
}

type Placemark struct {
	n *node
}

// Name returns the trimmed <name>, and false when it is missing or blank.
func (p Placemark) Name() (string, bool) {
	c := p.n.child("name")
	if c == nil {
		return "", false
	}
	name := strings.TrimSpace(c.text.String())
	return name, name != ""
}

// Description returns <description> verbatim, or "" when absent.
func (p Placemark) Description() string {
	c := p.n.child("description")
	if c == nil {
		return ""
	}
	return c.text.String()
}

// Polygon returns the first <Polygon> anywhere beneath the placemark.
func (p Placemark) Polygon() (Polygon, bool) {
	n := p.n.find("Polygon")
	if n == nil {
		return Polygon{}, false
	}
	return Polygon{n: n}, true
}

type Polygon struct {
	n *node
}

// OuterCoordinates follows outerBoundaryIs/LinearRing/coordinates.
func (p Polygon) OuterCoordinates() (string, bool) {
	boundary := p.n.child("outerBoundaryIs")
	if boundary == nil {
		return "", false
	}
	return ringCoordinates(boundary)
}

// InnerCoordinates returns the coordinate text of every
// innerBoundaryIs/LinearRing/coordinates path, in document order.
func (p Polygon) InnerCoordinates() []string {
	var out []string
	for _, boundary := range p.n.childrenNamed("innerBoundaryIs") {
		if text, ok := ringCoordinates(boundary); ok {
			out = append(out, text)
		}
	}
	return out
}

func ringCoordinates(boundary *node) (string, bool) {
	ring := boundary.child("LinearRing")
	if ring == nil {
		return "", false
	}
	coords := ring.child("coordinates")
	if coords == nil {
		return "", false
	}
	return coords.text.String(), true
}
