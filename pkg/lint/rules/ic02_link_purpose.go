package rules

import (
	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// LinkPurpose flags anchors without an href or without a name.
var LinkPurpose = lint.RuleDef{
	ID:          "IC02",
	Name:        "Link Purpose (In Context)",
	Criterion:   "2.4.4",
	Level:       core.LevelA,
	Group:       "interactive",
	Description: "Links need an href and text, a label, or an image with alt text.",
	Check:       checkLinkPurpose,

	Rationale: `An anchor without href is not focusable and is not announced as a link.
A link without a name gives no hint where it goes.`,

	BadExample: `<a onclick="open()">Open</a>
<a href="/cart"><i class="icon-cart"></i></a>`,

	GoodExample: `<button onclick="open()">Open</button>
<a href="/cart" aria-label="Shopping cart"><i class="icon-cart"></i></a>`,
}

func checkLinkPurpose(p *lint.Pass) ([]core.Finding, error) {
	var findings []core.Finding
	for _, link := range p.Doc.FindByTag("a") {
		if !link.HasAttr("href") {
			findings = append(findings, p.Finding(link,
				"Link has no href attribute",
				"Add an href, or use <button> for actions"))
			continue
		}

		if link.StrippedText() != "" || attrNotBlank(link, "aria-label") || attrNotBlank(link, "title") {
			continue
		}
		if hasAltImage(link) {
			continue
		}
		findings = append(findings, p.Finding(link,
			"Link has no text or alternative description",
			"Add link text, an aria-label, or alt text on the image inside the link"))
	}
	return findings, nil
}
