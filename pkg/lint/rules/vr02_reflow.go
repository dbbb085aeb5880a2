package rules

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// defaultMaxWidth is the 320 CSS pixel viewport reflow is measured at.
const defaultMaxWidth = 320

var fixedWidthPattern = regexp.MustCompile(`(?i)width:\s*(\d+)px`)

// Reflow flags inline fixed widths wider than a narrow viewport.
var Reflow = lint.RuleDef{
	ID:          "VR02",
	Name:        "Reflow",
	Criterion:   "1.4.10",
	Level:       core.LevelAA,
	Group:       "visual",
	Description: "Inline fixed widths must not force horizontal scrolling at 320px.",
	Check:       checkReflow,
	ConfigKeys:  []string{"max_width"},

	Rationale: `At 400% zoom a desktop window is 320 CSS pixels wide. Wider fixed boxes
force scrolling in two directions to read each line.`,

	BadExample: `<div style="width: 960px">...</div>`,

	GoodExample: `<div style="max-width: 60rem; width: 100%">...</div>`,
}

func checkReflow(p *lint.Pass) ([]core.Finding, error) {
	limit := p.IntOption("max_width", defaultMaxWidth)

	var findings []core.Finding
	for _, el := range p.Doc.FindAll(dom.HasAttr("style")) {
		m := fixedWidthPattern.FindStringSubmatch(el.AttrOr("style", ""))
		if m == nil {
			continue
		}
		w, err := strconv.Atoi(m[1])
		if err != nil || w <= limit {
			continue
		}
		findings = append(findings, p.Finding(el,
			fmt.Sprintf("Element has a fixed width of %dpx, which breaks reflow", w),
			"Use relative units (%, vw) instead of fixed widths"))
	}
	return findings, nil
}
