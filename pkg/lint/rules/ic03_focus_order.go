package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// FocusOrder flags tabindex values that break the natural focus order.
var FocusOrder = lint.RuleDef{
	ID:          "IC03",
	Name:        "Focus Order",
	Criterion:   "2.4.3",
	Level:       core.LevelA,
	Group:       "interactive",
	Description: "tabindex must not be positive, malformed, or negative on native controls.",
	Check:       checkFocusOrder,

	Rationale: `A positive tabindex moves the element ahead of everything else in the tab
sequence, so focus jumps around the page. A negative tabindex on a link or form control
removes it from the sequence entirely.`,

	BadExample: `<input tabindex="3">
<a href="/help" tabindex="-1">Help</a>`,

	GoodExample: `<input>
<div tabindex="0" role="button">Help</div>`,

	Fix: `Use tabindex="0" or remove the attribute and order the markup instead.`,
}

func checkFocusOrder(p *lint.Pass) ([]core.Finding, error) {
	var findings []core.Finding
	for _, el := range p.Doc.FindAll(dom.HasAttr("tabindex")) {
		raw := el.AttrOr("tabindex", "")
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		switch {
		case err != nil:
			findings = append(findings, p.Finding(el,
				fmt.Sprintf("Invalid tabindex value %q", raw),
				"Use an integer tabindex value"))
		case n > 0:
			findings = append(findings, p.Finding(el,
				fmt.Sprintf("Element has a positive tabindex=%d", n),
				`tabindex > 0 can break the logical focus order. Use tabindex="0" or remove the attribute`))
		case n < 0 && nativelyFocusable(el):
			findings = append(findings, p.Finding(el,
				fmt.Sprintf("Interactive <%s> is removed from the tab order (tabindex=%d)", el.Tag(), n),
				"Remove the negative tabindex so keyboard users can reach the control"))
		}
	}
	return findings, nil
}

func nativelyFocusable(n *dom.Node) bool {
	switch n.Tag() {
	case "a":
		return n.HasAttr("href")
	case "button", "select", "textarea":
		return true
	case "input":
		return !strings.EqualFold(n.AttrOr("type", ""), "hidden")
	default:
		return false
	}
}
