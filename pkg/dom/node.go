package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Attr is a single attribute in source order.
type Attr struct {
	Key string
	Val string
}

// Node is a read-only view over a parsed markup node.
type Node struct {
	n        *html.Node
	parent   *Node // non-owning
	children []*Node
	line     int
}

// IsElement reports whether the node is an element.
func (n *Node) IsElement() bool {
	return n != nil && n.n.Type == html.ElementNode
}

// IsText reports whether the node is a text node.
func (n *Node) IsText() bool {
	return n != nil && n.n.Type == html.TextNode
}

// Tag returns the lower-case tag name, or "" for non-elements.
func (n *Node) Tag() string {
	if !n.IsElement() {
		return ""
	}
	return n.n.Data
}

// Data returns the raw node data: the tag name for elements, the text for
// text nodes.
func (n *Node) Data() string {
	return n.n.Data
}

// Attr returns the value of the named attribute. Keys are case-insensitive.
func (n *Node) Attr(key string) (string, bool) {
	if n == nil {
		return "", false
	}
	key = strings.ToLower(key)
	for _, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value or def when it is absent.
func (n *Node) AttrOr(key, def string) string {
	if v, ok := n.Attr(key); ok {
		return v
	}
	return def
}

// HasAttr reports whether the attribute is present, whatever its value.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attr(key)
	return ok
}

// Attrs returns the attributes in source order.
func (n *Node) Attrs() []Attr {
	out := make([]Attr, 0, len(n.n.Attr))
	for _, a := range n.n.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		out = append(out, Attr{Key: key, Val: a.Val})
	}
	return out
}

// Classes returns the class attribute split into tokens.
func (n *Node) Classes() []string {
	return strings.Fields(n.AttrOr("class", ""))
}

// Parent returns the parent element, or nil at the top of the tree.
func (n *Node) Parent() *Node {
	if n == nil || n.parent == nil || !n.parent.IsElement() {
		return nil
	}
	return n.parent
}

// ChildNodes returns all direct children, including text and comments.
func (n *Node) ChildNodes() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Children returns the direct element children.
func (n *Node) Children() []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.IsElement() {
			out = append(out, c)
		}
	}
	return out
}

// NextSiblings returns the element siblings following n.
func (n *Node) NextSiblings() []*Node {
	if n.parent == nil {
		return nil
	}
	var out []*Node
	seen := false
	for _, c := range n.parent.children {
		if c == n {
			seen = true
			continue
		}
		if seen && c.IsElement() {
			out = append(out, c)
		}
	}
	return out
}

// Descendants returns every element below n in document order.
func (n *Node) Descendants() []*Node {
	var out []*Node
	n.walk(func(c *Node) {
		if c.IsElement() {
			out = append(out, c)
		}
	})
	return out
}

// FindAll returns the descendants of n matching m.
func (n *Node) FindAll(m Matcher) []*Node {
	var out []*Node
	n.walk(func(c *Node) {
		if c.IsElement() && m(c) {
			out = append(out, c)
		}
	})
	return out
}

// Find returns the first descendant of n matching m, or nil.
func (n *Node) Find(m Matcher) *Node {
	for _, c := range n.Descendants() {
		if m(c) {
			return c
		}
	}
	return nil
}

// walk visits descendants of n (excluding n) in pre-order.
func (n *Node) walk(fn func(*Node)) {
	for _, c := range n.children {
		fn(c)
		c.walk(fn)
	}
}

// Text returns the concatenation of all descendant text.
func (n *Node) Text() string {
	if n.IsText() {
		return n.n.Data
	}
	var sb strings.Builder
	n.walk(func(c *Node) {
		if c.IsText() {
			sb.WriteString(c.n.Data)
		}
	})
	return sb.String()
}

// OwnText returns the concatenation of the direct text children only.
func (n *Node) OwnText() string {
	var sb strings.Builder
	for _, c := range n.children {
		if c.IsText() {
			sb.WriteString(c.n.Data)
		}
	}
	return sb.String()
}

// StrippedText trims every descendant text piece and concatenates the
// non-empty results.
func (n *Node) StrippedText() string {
	if n.IsText() {
		return strings.TrimSpace(n.n.Data)
	}
	var sb strings.Builder
	n.walk(func(c *Node) {
		if c.IsText() {
			sb.WriteString(strings.TrimSpace(c.n.Data))
		}
	})
	return sb.String()
}

// Render serializes n and its subtree back to markup.
func (n *Node) Render() string {
	var sb strings.Builder
	if err := html.Render(&sb, n.n); err != nil {
		return ""
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	return n.Render()
}

// SourceLine returns the line recorded at parse time, or 0.
func (n *Node) SourceLine() int {
	return n.line
}
