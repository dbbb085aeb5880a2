package rules

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

var keyEventAttrs = []string{"onkeydown", "onkeypress", "onkeyup"}

var (
	// key === 'k', e.key=="/" and the like.
	singleKeyPattern = regexp.MustCompile(`(?i)\bkey\s*[!=]==?\s*['"][^'"\s]['"]`)
	// keyCode/which compared with a printable character code.
	keyCodePattern = regexp.MustCompile(`(?i)\b(?:keyCode|which|charCode)\s*[!=]==?\s*(\d+)`)
	// Any modifier check turns the key into a combination.
	modifierPattern = regexp.MustCompile(`(?i)\b(?:ctrlKey|altKey|metaKey)\b`)
)

// CharacterKeyShortcuts flags inline key handlers bound to single characters.
var CharacterKeyShortcuts = lint.RuleDef{
	ID:          "DB03",
	Name:        "Character Key Shortcuts",
	Criterion:   "2.1.4",
	Level:       core.LevelA,
	Group:       "dynamic",
	Description: "Single printable-character shortcuts need a modifier or a way to turn them off.",
	Check:       checkCharacterKeyShortcuts,

	Rationale: `Speech input users dictate words that arrive as key presses. Single-letter
shortcuts fire at random while they speak.`,

	BadExample: `<body onkeydown="if (event.key === 's') save()">`,

	GoodExample: `<body onkeydown="if (event.ctrlKey && event.key === 's') save()">`,

	Fix: "Require a modifier key, or let users remap or disable the shortcut.",
}

func checkCharacterKeyShortcuts(p *lint.Pass) ([]core.Finding, error) {
	var findings []core.Finding
	for _, el := range p.Doc.Elements() {
		for _, attr := range keyEventAttrs {
			script, ok := el.Attr(attr)
			if !ok || !hasSingleCharacterShortcut(script) {
				continue
			}
			findings = append(findings, p.Finding(el,
				fmt.Sprintf("Single-character shortcut bound through %s without a way to control it", attr),
				"Provide a way to turn off, remap, or require a modifier for the shortcut"))
		}
	}
	return findings, nil
}

func hasSingleCharacterShortcut(script string) bool {
	if modifierPattern.MatchString(script) {
		return false
	}
	if singleKeyPattern.MatchString(script) {
		return true
	}
	for _, m := range keyCodePattern.FindAllStringSubmatch(script, -1) {
		code, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		// Digits, letters and punctuation; not Enter, Escape, arrows or Space.
		if (code >= 48 && code <= 90) || (code >= 186 && code <= 222) {
			return true
		}
	}
	return false
}
