package rules

import (
	"strings"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

var skipLinkWords = []string{"skip", "main", "content"}

// BypassBlocks flags pages with repeated blocks and no way to jump past them.
var BypassBlocks = lint.RuleDef{
	ID:          "DS04",
	Name:        "Bypass Blocks",
	Criterion:   "2.4.1",
	Level:       core.LevelA,
	Group:       "structure",
	Description: "Pages with navigation or a header need a main landmark or a skip link.",
	Check:       checkBypassBlocks,

	Rationale: `Keyboard users otherwise tab through every navigation link on every page
before reaching the content.`,

	BadExample: `<header>...</header>
<nav>...</nav>
<div class="content">...</div>`,

	GoodExample: `<a href="#main">Skip to content</a>
<nav>...</nav>
<main id="main">...</main>`,
}

func checkBypassBlocks(p *lint.Pass) ([]core.Finding, error) {
	block := p.Doc.Find(dom.Or(
		dom.Tag("nav", "header"),
		dom.AttrEquals("role", "navigation"),
		dom.AttrEquals("role", "banner"),
	))
	if block == nil {
		return nil, nil
	}

	if p.Doc.Exists(dom.Or(dom.Tag("main"), dom.AttrEquals("role", "main"))) {
		return nil, nil
	}
	if p.Doc.Exists(isSkipLink) {
		return nil, nil
	}

	return []core.Finding{p.Finding(block,
		"Repeated block has no main landmark or skip link after it",
		`Wrap the content in <main>, or add a "Skip to content" link targeting it`)}, nil
}

func isSkipLink(n *dom.Node) bool {
	if n.Tag() != "a" {
		return false
	}
	href := n.AttrOr("href", "")
	if len(href) < 2 || href[0] != '#' {
		return false
	}
	text := strings.ToLower(n.StrippedText() + " " + n.AttrOr("aria-label", ""))
	return containsAny(text, skipLinkWords)
}
