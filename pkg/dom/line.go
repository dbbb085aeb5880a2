package dom

import (
	"strings"
	"unicode/utf8"
)

// lineCandidateAttrs are searched in this order before the element text.
var lineCandidateAttrs = []string{"href", "src", "id", "name", "aria-label", "title"}

// prefixLen is how much of the serialization ResolveLinePrefix matches.
const prefixLen = 50

// ResolveLine returns a best-effort 1-based source line for node, or 0.
//
// A line recorded at parse time wins. Otherwise the raw markup is searched,
// case-insensitively, for the node's href, src, id, name, aria-label and
// title values, then for its stripped text when longer than 3 characters.
// The first candidate found determines the line.
func ResolveLine(doc *Document, node *Node) int {
	if doc == nil || node == nil {
		return 0
	}
	if line := node.SourceLine(); line > 0 {
		return line
	}
	if doc.raw == "" {
		return 0
	}

	for _, cand := range lineCandidates(node) {
		pos := strings.Index(doc.lower, strings.ToLower(cand))
		if pos != -1 {
			return strings.Count(doc.lower[:pos], "\n") + 1
		}
	}
	return 0
}

func lineCandidates(node *Node) []string {
	var out []string
	for _, key := range lineCandidateAttrs {
		if v, ok := node.Attr(key); ok && v != "" {
			out = append(out, v)
		}
	}
	if text := node.StrippedText(); utf8.RuneCountInString(text) > 3 {
		out = append(out, text)
	}
	return out
}

// ResolveLinePrefix matches the first 50 characters of the node's
// serialization against each raw line and returns the first line containing
// them, or 0. Serialization normalizes quoting and attribute spacing, so this
// misses more often than ResolveLine.
func ResolveLinePrefix(doc *Document, node *Node) int {
	if doc == nil || node == nil {
		return 0
	}
	if line := node.SourceLine(); line > 0 {
		return line
	}

	prefix := node.Render()
	if utf8.RuneCountInString(prefix) > prefixLen {
		prefix = string([]rune(prefix)[:prefixLen])
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return 0
	}

	for i, line := range strings.Split(doc.raw, "\n") {
		if strings.Contains(line, prefix) {
			return i + 1
		}
	}
	return 0
}
