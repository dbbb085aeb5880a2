package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// NameRoleValue flags buttons without an accessible name.
var NameRoleValue = lint.RuleDef{
	ID:          "IC01",
	Name:        "Name, Role, Value",
	Criterion:   "4.1.2",
	Level:       core.LevelAA,
	Group:       "interactive",
	Description: `Buttons and role="button" elements need an accessible name.`,
	Check:       checkNameRoleValue,

	Rationale: `An unnamed button is announced as just "button". Icon-only buttons are the
usual culprit.`,

	BadExample: `<button><svg>...</svg></button>
<div role="button"></div>`,

	GoodExample: `<button aria-label="Close dialog"><svg>...</svg></button>
<button><img src="x.svg" alt="Close"></button>`,

	Fix: "Give the button text content, an aria-label, or an image with alt text.",
}

func checkNameRoleValue(p *lint.Pass) ([]core.Finding, error) {
	var findings []core.Finding

	for _, btn := range p.Doc.FindByTag("button") {
		if btn.StrippedText() != "" || attrNotBlank(btn, "aria-label") || attrNotBlank(btn, "title") {
			continue
		}
		if hasAltImage(btn) || btn.HasAttr("aria-labelledby") {
			continue
		}
		findings = append(findings, p.Finding(btn,
			"Button has no accessible name",
			"Add text inside the button, an aria-label, or alt text on its image"))
	}

	for _, el := range p.Doc.FindAll(dom.AttrEquals("role", "button")) {
		if el.Tag() == "button" {
			continue
		}
		if el.StrippedText() != "" || strings.TrimSpace(el.AttrOr("aria-label", "")) != "" {
			continue
		}
		findings = append(findings, p.Finding(el,
			fmt.Sprintf(`<%s> with role="button" has no accessible name`, el.Tag()),
			"Add text or an aria-label that describes the action"))
	}
	return findings, nil
}
