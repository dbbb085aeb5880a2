package rules

import (
	"fmt"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// InfoAndRelationships checks the heading hierarchy.
var InfoAndRelationships = lint.RuleDef{
	ID:          "DS02",
	Name:        "Info and Relationships",
	Criterion:   "1.3.1",
	Level:       core.LevelA,
	Group:       "structure",
	Description: "Headings must form a hierarchy: one h1, no skipped levels, no empty headings.",
	Check:       checkHeadings,

	Rationale: `Screen reader users navigate by heading. Skipped levels suggest missing
sections, several h1 elements blur the page topic, and empty headings are announced
as nothing.`,

	BadExample: `<h1>Docs</h1>
<h3>Install</h3>
<h2></h2>`,

	GoodExample: `<h1>Docs</h1>
<h2>Install</h2>
<h3>From source</h3>`,
}

func checkHeadings(p *lint.Pass) ([]core.Finding, error) {
	headings := p.Doc.FindByTag(headingTags...)
	if len(headings) == 0 {
		return nil, nil
	}

	var findings []core.Finding

	h1s := p.Doc.FindByTag("h1")
	switch {
	case len(h1s) == 0:
		findings = append(findings, p.DocumentFinding("h1", 0,
			"Page has no h1 heading",
			"Add a single h1 that states the main topic of the page"))
	case len(h1s) > 1:
		for _, h := range h1s[1:] {
			findings = append(findings, p.Finding(h,
				fmt.Sprintf("Page has several h1 headings (found %d)", len(h1s)),
				"Use only one h1 per page for the main heading"))
		}
	}

	prev := 0
	for _, h := range headings {
		level := int(h.Tag()[1] - '0')
		if prev > 0 && level > prev+1 {
			findings = append(findings, p.Finding(h,
				fmt.Sprintf("Heading level skipped: h%d follows h%d", level, prev),
				fmt.Sprintf("Use h%d instead of h%d to keep the hierarchy", prev+1, level)))
		}
		prev = level
	}

	for _, h := range headings {
		if h.StrippedText() == "" {
			findings = append(findings, p.Finding(h,
				fmt.Sprintf("Heading <%s> is empty", h.Tag()),
				"Add meaningful text to the heading"))
		}
	}
	return findings, nil
}
