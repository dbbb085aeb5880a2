package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed markup tree plus the raw text it came from.
type Document struct {
	raw      string
	lower    string // raw lower-cased once, for line resolution
	root     *Node
	elements []*Node // document order
}

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	positions bool
}

// WithSourcePositions attaches source lines to elements when the
// tag-to-element mapping is unambiguous.
func WithSourcePositions() ParseOption {
	return func(c *parseConfig) {
		c.positions = true
	}
}

// Parse builds a Document from raw markup. It never fails; unparseable input
// produces an empty document.
func Parse(raw string, opts ...ParseOption) *Document {
	cfg := parseConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	tree, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		tree = &html.Node{Type: html.DocumentNode}
	}

	doc := &Document{
		raw:   raw,
		lower: strings.ToLower(raw),
	}
	doc.root = doc.build(tree, nil)

	if cfg.positions {
		attachSourceLines(doc)
	}
	return doc
}

func (d *Document) build(n *html.Node, parent *Node) *Node {
	node := &Node{n: n, parent: parent}
	if n.Type == html.ElementNode {
		d.elements = append(d.elements, node)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		node.children = append(node.children, d.build(c, node))
	}
	return node
}

// Raw returns the markup the document was parsed from.
func (d *Document) Raw() string {
	return d.raw
}

// Root returns the document node.
func (d *Document) Root() *Node {
	return d.root
}

// Elements returns every element in document order.
func (d *Document) Elements() []*Node {
	out := make([]*Node, len(d.elements))
	copy(out, d.elements)
	return out
}

// FindAll returns every element matching m, in document order.
func (d *Document) FindAll(m Matcher) []*Node {
	var out []*Node
	for _, el := range d.elements {
		if m(el) {
			out = append(out, el)
		}
	}
	return out
}

// Find returns the first element matching m, or nil.
func (d *Document) Find(m Matcher) *Node {
	for _, el := range d.elements {
		if m(el) {
			return el
		}
	}
	return nil
}

// FindByTag returns every element with one of the given tag names.
func (d *Document) FindByTag(tags ...string) []*Node {
	return d.FindAll(Tag(tags...))
}

// Exists reports whether any element matches m.
func (d *Document) Exists(m Matcher) bool {
	return d.Find(m) != nil
}
