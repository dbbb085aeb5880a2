package rules

import (
	"fmt"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

var motionEvents = []string{"ondevicemotion", "ondeviceorientation", "ongesturestart", "ongesturechange", "ongestureend"}

// MotionActuation flags motion handlers with no control next to them.
var MotionActuation = lint.RuleDef{
	ID:          "DB04",
	Name:        "Motion Actuation",
	Criterion:   "2.5.4",
	Level:       core.LevelA,
	Group:       "dynamic",
	Description: "Functions triggered by device motion need a conventional control.",
	Check:       checkMotionActuation,

	Rationale: `Users with tremors or mounted devices cannot shake or tilt reliably, and
may trigger motion actions by accident.`,

	BadExample: `<div ondevicemotion="undo()">Shake to undo</div>`,

	GoodExample: `<div ondevicemotion="undo()">Shake to undo</div>
<button onclick="undo()">Undo</button>`,
}

func checkMotionActuation(p *lint.Pass) ([]core.Finding, error) {
	var findings []core.Finding
	for _, el := range p.Doc.Elements() {
		for _, event := range motionEvents {
			if !el.HasAttr(event) || hasSiblingControl(el) {
				continue
			}
			findings = append(findings, p.Finding(el,
				fmt.Sprintf("Device motion event '%s' has no alternative control", event),
				"Provide a control that does not depend on device motion"))
		}
	}
	return findings, nil
}

func hasSiblingControl(n *dom.Node) bool {
	for _, sib := range n.NextSiblings() {
		if sib.Tag() == "button" || sib.HasAttr("onclick") {
			return true
		}
	}
	return false
}
