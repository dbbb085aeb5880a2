package rules

import (
	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// PageTitled flags a missing, empty or repeated document title.
var PageTitled = lint.RuleDef{
	ID:          "DS01",
	Name:        "Page Titled",
	Criterion:   "2.4.2",
	Level:       core.LevelA,
	Group:       "structure",
	Description: "The document must have one non-empty <title>.",
	Check:       checkPageTitled,

	Rationale: `The title is the first thing a screen reader announces and the label of
the browser tab. Without it users cannot tell pages apart.`,

	BadExample: `<head><title></title></head>`,

	GoodExample: `<head><title>Billing settings - Acme</title></head>`,
}

func checkPageTitled(p *lint.Pass) ([]core.Finding, error) {
	titles := p.Doc.FindByTag("title")
	if len(titles) == 0 {
		return []core.Finding{p.DocumentFinding("title", 0,
			"Document has no <title> element",
			"Add a <title> to <head> that describes the page")}, nil
	}

	var findings []core.Finding
	if titles[0].StrippedText() == "" {
		findings = append(findings, p.Finding(titles[0],
			"The <title> element is empty",
			"Add a meaningful title that describes the page content"))
	}

	// SVG titles live outside head; only head titles compete.
	var inHead int
	for _, t := range titles {
		if t.Parent().Tag() != "head" {
			continue
		}
		inHead++
		if inHead > 1 {
			findings = append(findings, p.Finding(t,
				"Document has more than one <title>",
				"Keep a single <title> in <head>"))
		}
	}
	return findings, nil
}
