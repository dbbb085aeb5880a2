package rules

import (
	"strings"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// unlabeledInputTypes name themselves or have no visible field.
var unlabeledInputTypes = map[string]bool{
	"hidden": true, "submit": true, "reset": true, "button": true, "image": true,
}

// LabelsOrInstructions flags form fields with no label or instruction.
var LabelsOrInstructions = lint.RuleDef{
	ID:          "LI03",
	Name:        "Labels or Instructions",
	Criterion:   "3.3.2",
	Level:       core.LevelA,
	Group:       "language",
	Description: "input, select and textarea need an associated label or instruction.",
	Check:       checkLabels,

	Rationale: `A field without a label is announced only by its type. Users cannot tell
what to enter.`,

	BadExample: `<input type="text" id="city">`,

	GoodExample: `<label for="city">City</label>
<input type="text" id="city">`,

	Fix: "Add a <label for>, wrap the field in <label>, or set aria-label or aria-labelledby.",
}

func checkLabels(p *lint.Pass) ([]core.Finding, error) {
	var findings []core.Finding
	for _, field := range p.Doc.FindByTag("input", "select", "textarea") {
		if field.Tag() == "input" {
			typ := strings.ToLower(strings.TrimSpace(field.AttrOr("type", "text")))
			if unlabeledInputTypes[typ] {
				continue
			}
		}
		if hasLabel(p.Doc, field) {
			continue
		}
		findings = append(findings, p.Finding(field,
			"Form field has no label or instruction",
			"Add an associated <label> element or an instruction for the field"))
	}
	return findings, nil
}

func hasLabel(doc *dom.Document, field *dom.Node) bool {
	if id := field.AttrOr("id", ""); id != "" {
		if doc.Exists(func(n *dom.Node) bool {
			return n.Tag() == "label" && n.AttrOr("for", "") == id
		}) {
			return true
		}
	}

	if field.Parent().Tag() == "label" {
		return true
	}

	for _, key := range []string{"aria-label", "aria-labelledby", "title"} {
		if field.AttrOr(key, "") != "" {
			return true
		}
	}
	return field.Tag() == "input" && field.AttrOr("placeholder", "") != ""
}
