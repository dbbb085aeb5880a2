package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// PauseStopHide flags content that moves or blinks indefinitely.
var PauseStopHide = lint.RuleDef{
	ID:          "MC02",
	Name:        "Pause, Stop, Hide",
	Criterion:   "2.2.2",
	Level:       core.LevelA,
	Group:       "media",
	Description: "Moving, blinking or scrolling content must be stoppable.",
	Check:       checkPauseStopHide,

	Rationale: `Content that keeps moving distracts users with attention disorders and
is hard to read for users with low vision. marquee and blink cannot be paused.`,

	BadExample: `<marquee>Sale ends soon</marquee>
<div style="animation: pulse 1s infinite">New</div>`,

	GoodExample: `<p>Sale ends soon</p>`,

	Fix: "Replace marquee and blink with static content, or give animations a pause control.",
}

func checkPauseStopHide(p *lint.Pass) ([]core.Finding, error) {
	var findings []core.Finding
	for _, el := range p.Doc.Elements() {
		switch el.Tag() {
		case "marquee", "blink":
			findings = append(findings, p.Finding(el,
				fmt.Sprintf("<%s> moves content that users cannot pause", el.Tag()),
				"Use static content or provide a control to pause the movement"))
			continue
		}

		style := strings.ToLower(el.AttrOr("style", ""))
		if strings.Contains(style, "animation") && strings.Contains(style, "infinite") {
			findings = append(findings, p.Finding(el,
				"Inline style runs an infinite animation",
				"Limit the animation to five seconds or provide a pause control"))
		}
	}
	return findings, nil
}
