package rules

import (
	"fmt"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// SectionHeadings flags sectioning elements with neither heading nor label.
var SectionHeadings = lint.RuleDef{
	ID:          "DS03",
	Name:        "Section Headings",
	Criterion:   "2.4.10",
	Level:       core.LevelAAA,
	Group:       "structure",
	Description: "article, section, aside and nav need a heading or an ARIA label.",
	Check:       checkSectionHeadings,

	Rationale: `Landmark and region lists in assistive technology show each section by
its heading or label. Unnamed sections all read the same.`,

	BadExample: `<section><p>Pricing details</p></section>`,

	GoodExample: `<section><h2>Pricing</h2><p>Pricing details</p></section>
<nav aria-label="Breadcrumb">...</nav>`,
}

func checkSectionHeadings(p *lint.Pass) ([]core.Finding, error) {
	var findings []core.Finding
	for _, section := range p.Doc.FindByTag("article", "section", "aside", "nav") {
		if section.Find(dom.Tag(headingTags...)) != nil {
			continue
		}
		if attrNotBlank(section, "aria-label") || section.HasAttr("aria-labelledby") {
			continue
		}
		findings = append(findings, p.Finding(section,
			fmt.Sprintf("Section <%s> has no heading", section.Tag()),
			"Add a heading (h1-h6) or an aria-label that describes the section"))
	}
	return findings, nil
}
