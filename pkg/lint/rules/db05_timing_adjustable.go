package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// maxRefreshDelay is the delay, in seconds, past which a refresh is no
// longer a time limit (20 hours).
const maxRefreshDelay = 20 * 60 * 60

// TimingAdjustable flags timed meta refreshes and redirects.
var TimingAdjustable = lint.RuleDef{
	ID:          "DB05",
	Name:        "Timing Adjustable",
	Criterion:   "2.2.1",
	Level:       core.LevelA,
	Group:       "dynamic",
	Description: "Pages must not refresh or redirect after a delay the user cannot adjust.",
	Check:       checkTimingAdjustable,

	Rationale: `A timed refresh cuts off users who read slowly or use assistive technology
before they finish.`,

	BadExample: `<meta http-equiv="refresh" content="10; url=/next">`,

	GoodExample: `<meta http-equiv="refresh" content="0; url=/next">`,

	Fix: "Redirect immediately on the server, or let the user continue with a link.",
}

func checkTimingAdjustable(p *lint.Pass) ([]core.Finding, error) {
	var findings []core.Finding
	for _, meta := range p.Doc.FindAll(dom.And(dom.Tag("meta"), dom.AttrEquals("http-equiv", "refresh"))) {
		delay, ok := refreshDelay(meta.AttrOr("content", ""))
		if !ok || delay <= 0 || delay > maxRefreshDelay {
			continue
		}
		findings = append(findings, p.Finding(meta,
			fmt.Sprintf("Page refreshes or redirects after %d seconds", delay),
			"Remove the timed refresh or let the user turn off or extend it"))
	}
	return findings, nil
}

// refreshDelay parses the leading seconds of a refresh content value such as
// "5; url=/next".
func refreshDelay(content string) (int, bool) {
	content = strings.TrimSpace(content)
	end := strings.IndexAny(content, ";,")
	if end >= 0 {
		content = content[:end]
	}
	// Fractional delays are truncated the way browsers do.
	if dot := strings.IndexByte(content, '.'); dot >= 0 {
		content = content[:dot]
	}
	n, err := strconv.Atoi(strings.TrimSpace(content))
	if err != nil {
		return 0, false
	}
	return n, true
}
