package dom

import "strings"

// Matcher is a predicate over elements.
type Matcher func(*Node) bool

// Any matches every element.
func Any() Matcher {
	return func(*Node) bool { return true }
}

// Tag matches elements whose tag name is one of names.
func Tag(names ...string) Matcher {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[strings.ToLower(name)] = true
	}
	return func(n *Node) bool {
		return set[n.Tag()]
	}
}

// HasAttr matches elements carrying the attribute.
func HasAttr(key string) Matcher {
	return func(n *Node) bool {
		return n.HasAttr(key)
	}
}

// AttrEquals matches elements whose attribute equals val, ignoring case.
func AttrEquals(key, val string) Matcher {
	return func(n *Node) bool {
		v, ok := n.Attr(key)
		return ok && strings.EqualFold(strings.TrimSpace(v), val)
	}
}

// AttrContains matches elements whose attribute contains sub, ignoring case.
func AttrContains(key, sub string) Matcher {
	sub = strings.ToLower(sub)
	return func(n *Node) bool {
		v, ok := n.Attr(key)
		return ok && strings.Contains(strings.ToLower(v), sub)
	}
}

// ClassContains matches elements whose class list contains sub in any token.
func ClassContains(sub string) Matcher {
	return AttrContains("class", sub)
}

// And matches when every matcher matches.
func And(ms ...Matcher) Matcher {
	return func(n *Node) bool {
		for _, m := range ms {
			if !m(n) {
				return false
			}
		}
		return true
	}
}

// Or matches when any matcher matches.
func Or(ms ...Matcher) Matcher {
	return func(n *Node) bool {
		for _, m := range ms {
			if m(n) {
				return true
			}
		}
		return false
	}
}

// Not inverts m.
func Not(m Matcher) Matcher {
	return func(n *Node) bool {
		return !m(n)
	}
}
