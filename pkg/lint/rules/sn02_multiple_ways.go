package rules

import (
	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// MultipleWays flags pages offering no search, navigation or sitemap.
var MultipleWays = lint.RuleDef{
	ID:          "SN02",
	Name:        "Multiple Ways",
	Criterion:   "2.4.5",
	Level:       core.LevelAA,
	Group:       "status",
	Description: "Pages need more than one way to be found: search, navigation or a sitemap.",
	Check:       checkMultipleWays,

	Rationale: `Users differ in how they find content. Some search, some browse menus, some
scan a sitemap.`,

	BadExample: `<body><main>...</main></body>`,

	GoodExample: `<nav>...</nav>
<form role="search">...</form>`,
}

func checkMultipleWays(p *lint.Pass) ([]core.Finding, error) {
	hasSearch := p.Doc.Exists(dom.Or(
		dom.AttrEquals("role", "search"),
		dom.And(dom.Tag("input"), dom.AttrEquals("type", "search")),
		dom.And(dom.Tag("form"), dom.ClassContains("search")),
	))
	hasNav := p.Doc.Exists(dom.Or(
		dom.Tag("nav"),
		dom.And(dom.Tag("ul", "ol"), dom.ClassContains("nav")),
	))
	hasSitemap := p.Doc.Exists(dom.And(dom.Tag("a"), dom.AttrContains("href", "sitemap")))

	if hasSearch || hasNav || hasSitemap {
		return nil, nil
	}
	return []core.Finding{p.DocumentFinding("navigation", 1,
		"Page offers no alternative ways to navigate",
		"Add a search, a navigation menu or a link to a sitemap")}, nil
}
