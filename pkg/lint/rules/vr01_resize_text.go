package rules

import (
	"strings"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// ResizeText flags inline pixel font sizes.
var ResizeText = lint.RuleDef{
	ID:          "VR01",
	Name:        "Resize Text",
	Criterion:   "1.4.4",
	Level:       core.LevelAA,
	Group:       "visual",
	Description: "Inline font sizes should use relative units.",
	Check:       checkResizeText,

	Rationale: `Pixel font sizes ignore the user's preferred text size in several browsers,
so low-vision users cannot enlarge the text.`,

	BadExample: `<p style="font-size: 12px">Terms apply</p>`,

	GoodExample: `<p style="font-size: 0.875rem">Terms apply</p>`,
}

func checkResizeText(p *lint.Pass) ([]core.Finding, error) {
	var findings []core.Finding
	for _, el := range p.Doc.FindAll(dom.HasAttr("style")) {
		style := strings.ToLower(el.AttrOr("style", ""))
		if strings.Contains(style, "font-size") && strings.Contains(style, "px") {
			findings = append(findings, p.Finding(el,
				"Fixed font size in px",
				"Use relative units (em, rem, %) so text can be resized"))
		}
	}
	return findings, nil
}
