package rules

import (
	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// ChangeOnRequest flags context changes the user did not ask for.
var ChangeOnRequest = lint.RuleDef{
	ID:          "DB02",
	Name:        "Change on Request",
	Criterion:   "3.2.5",
	Level:       core.LevelAAA,
	Group:       "dynamic",
	Description: "Media autoplay, meta refresh and auto-submitting forms change context unrequested.",
	Check:       checkChangeOnRequest,

	Rationale: `Unrequested changes move focus and content under the user. Screen reader
users lose their place.`,

	BadExample: `<meta http-equiv="refresh" content="30">
<video src="promo.mp4" autoplay></video>`,

	GoodExample: `<video src="promo.mp4" controls></video>`,
}

func checkChangeOnRequest(p *lint.Pass) ([]core.Finding, error) {
	var findings []core.Finding

	for _, media := range p.Doc.FindByTag("video", "audio") {
		if media.HasAttr("autoplay") {
			findings = append(findings, p.Finding(media,
				"Media starts automatically via autoplay",
				"Remove autoplay or start playback on a user action"))
		}
	}

	for _, meta := range p.Doc.FindAll(dom.And(dom.Tag("meta"), dom.AttrEquals("http-equiv", "refresh"))) {
		findings = append(findings, p.Finding(meta,
			"Page refreshes automatically via meta refresh",
			"Remove meta refresh and update the page on request"))
	}

	for _, form := range p.Doc.FindByTag("form") {
		if form.HasAttr("onchange") {
			findings = append(findings, p.Finding(form,
				"Form submits automatically when a value changes",
				"Submit the form on an explicit user action"))
		}
	}
	return findings, nil
}
