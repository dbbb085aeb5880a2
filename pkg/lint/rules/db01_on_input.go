package rules

import (
	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// OnInput flags form controls that act as soon as their value changes.
var OnInput = lint.RuleDef{
	ID:          "DB01",
	Name:        "On Input",
	Criterion:   "3.2.2",
	Level:       core.LevelA,
	Group:       "dynamic",
	Description: "Changing a control's value must not change context without warning.",
	Check:       checkOnInput,

	Rationale: `Keyboard users move through select options with the arrow keys. An
onchange that navigates fires on the first arrow press.`,

	BadExample: `<select onchange="location = this.value">...</select>`,

	GoodExample: `<select id="page">...</select>
<button onclick="go()">Go</button>`,
}

func checkOnInput(p *lint.Pass) ([]core.Finding, error) {
	var findings []core.Finding
	for _, el := range p.Doc.FindByTag("input", "select", "textarea") {
		if el.HasAttr("onchange") {
			findings = append(findings, p.Finding(el,
				"Value change triggers an action without confirmation or notice",
				"Ask the user to confirm the change or announce its effect"))
		}
	}
	return findings, nil
}
