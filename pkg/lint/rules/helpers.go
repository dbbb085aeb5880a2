package rules

import (
	"strings"

	"github.com/leapstack-labs/leapa11y/pkg/dom"
)

var headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// attrNotBlank reports whether n has key set to something other than whitespace.
func attrNotBlank(n *dom.Node, key string) bool {
	v, ok := n.Attr(key)
	return ok && strings.TrimSpace(v) != ""
}

// hasAltImage reports whether n contains an img whose alt is not blank.
// Only the first img counts.
func hasAltImage(n *dom.Node) bool {
	img := n.Find(dom.Tag("img"))
	return img != nil && attrNotBlank(img, "alt")
}

// containsAny reports whether s contains any of subs.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// lowerAll lower-cases every entry.
func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// stripSpace removes all whitespace from s.
func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
