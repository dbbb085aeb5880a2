package rules

import (
	"fmt"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// AudioControl flags media that plays sound on load with no way to stop it.
var AudioControl = lint.RuleDef{
	ID:          "MC01",
	Name:        "Audio Control",
	Criterion:   "1.4.2",
	Level:       core.LevelA,
	Group:       "media",
	Description: "Autoplaying audio must offer controls.",
	Check:       checkAudioControl,

	Rationale: `Sound that starts on its own competes with screen reader speech. Users who
cannot find a way to stop it may be unable to use the page at all.`,

	BadExample: `<audio src="intro.mp3" autoplay></audio>`,

	GoodExample: `<audio src="intro.mp3" controls></audio>`,

	Fix: "Remove autoplay, add controls, or start the media muted.",
}

func checkAudioControl(p *lint.Pass) ([]core.Finding, error) {
	var findings []core.Finding
	for _, media := range p.Doc.FindByTag("audio", "video") {
		if !media.HasAttr("autoplay") || media.HasAttr("controls") || media.HasAttr("muted") {
			continue
		}
		findings = append(findings, p.Finding(media,
			fmt.Sprintf("Autoplaying <%s> has no playback controls", media.Tag()),
			"Add the controls attribute so users can pause or stop playback"))
	}
	return findings, nil
}
