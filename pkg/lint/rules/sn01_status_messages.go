package rules

import (
	"strings"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

var defaultStatusClasses = []string{
	"alert", "error", "warning", "success", "info", "message",
	"notification", "toast", "banner", "status",
}

var defaultStatusKeywords = []string{
	"error", "failed", "fail", "success", "completed",
	"warning", "alert", "info",
	"ошибка", "ошибки", "сбой", "успех", "успешно", "готово",
	"предупреждение", "внимание", "информация", "инфо", "информационное сообщение",
}

var liveRoles = map[string]bool{"alert": true, "status": true, "log": true}

// StatusMessages flags status-like text that is not in a live region.
var StatusMessages = lint.RuleDef{
	ID:          "SN01",
	Name:        "Status Messages",
	Criterion:   "4.1.3",
	Level:       core.LevelAA,
	Group:       "status",
	Description: "Status messages need a live region role or aria-live.",
	Check:       checkStatusMessages,
	ConfigKeys:  []string{"status_classes", "status_keywords"},

	Rationale: `Messages that appear without focus moving are silent to screen readers
unless they sit in a live region.`,

	BadExample: `<div class="alert-error">Payment failed</div>`,

	GoodExample: `<div class="alert-error" role="alert">Payment failed</div>`,

	Fix: `Add role="alert", role="status" or aria-live="polite".`,
}

func checkStatusMessages(p *lint.Pass) ([]core.Finding, error) {
	classes := lowerAll(p.StringSliceOption("status_classes", defaultStatusClasses))
	keywords := lowerAll(p.StringSliceOption("status_keywords", defaultStatusKeywords))

	var findings []core.Finding
	for _, el := range p.Doc.FindByTag("div", "span", "p", "strong", "em", "b", "i", "small", "li") {
		// Leaf elements only; containers are judged by their children.
		if len(el.Children()) > 0 {
			continue
		}
		text := strings.ToLower(strings.TrimSpace(el.OwnText()))
		if text == "" {
			continue
		}

		byClass := containsAny(strings.ToLower(strings.Join(el.Classes(), " ")), classes)
		if !byClass && !containsAny(text, keywords) {
			continue
		}

		if liveRoles[el.AttrOr("role", "")] || el.AttrOr("aria-live", "") != "" || el.AttrOr("aria-atomic", "") != "" {
			continue
		}
		findings = append(findings, p.Finding(el,
			"Status message has no ARIA live region attributes",
			`Add role="alert", role="status" or aria-live="polite"`))
	}
	return findings, nil
}
