package rules

import (
	"strings"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// FocusVisible flags inline styles that remove the focus outline.
var FocusVisible = lint.RuleDef{
	ID:          "IC04",
	Name:        "Focus Visible",
	Criterion:   "2.4.7",
	Level:       core.LevelAA,
	Group:       "interactive",
	Description: "Inline styles must not remove the focus outline.",
	Check:       checkFocusVisible,

	Rationale: `Keyboard users follow the outline to know where they are. Removing it
without a replacement leaves them lost.`,

	BadExample: `<a href="/" style="outline: none">Home</a>`,

	GoodExample: `<a href="/" class="nav-link">Home</a>`,

	Fix: "Keep the outline, or replace it with another clearly visible focus style.",
}

func checkFocusVisible(p *lint.Pass) ([]core.Finding, error) {
	var findings []core.Finding
	for _, el := range p.Doc.FindAll(dom.HasAttr("style")) {
		style := strings.ToLower(stripSpace(el.AttrOr("style", "")))
		if strings.Contains(style, "outline:none") || strings.Contains(style, "outline:0") {
			findings = append(findings, p.Finding(el,
				"Element hides the focus indicator (outline:none)",
				"Do not hide the outline without providing another visible focus style"))
		}
	}
	return findings, nil
}
