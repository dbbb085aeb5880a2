// Package report turns engine results into presentation-ready reports and
// renders them as console text, JSON, HTML, Markdown or PDF.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// examplesPerGroup is how many instances the text-oriented renderers show
// per group before summarizing the rest.
const examplesPerGroup = 3

// Page identifies the checked document.
type Page struct {
	URL    string
	Title  string
	Status int
}

// Failure is a rule that could not complete.
type Failure struct {
	RuleID string `json:"rule_id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Summary counts issues by level and by criterion.
type Summary struct {
	ByLevel     map[core.Level]int `json:"by_level"`
	ByCriterion map[string]int     `json:"by_criterion"`
}

// Report is the complete outcome of checking one page.
type Report struct {
	ID          string
	URL         string
	Title       string
	Status      int
	Timestamp   time.Time
	TotalIssues int
	Issues      []core.IssueGroup
	Summary     Summary
	Failures    []Failure
}

// Build aggregates res into a report for page, stamped with now.
func Build(page Page, res lint.Result, now time.Time) *Report {
	groups := lint.Aggregate(res.Findings)

	r := &Report{
		ID:          uuid.NewString(),
		URL:         page.URL,
		Title:       page.Title,
		Status:      page.Status,
		Timestamp:   now,
		TotalIssues: len(res.Findings),
		Issues:      groups,
		Summary:     summarize(groups),
	}
	for _, f := range res.Failures {
		r.Failures = append(r.Failures, Failure{RuleID: f.RuleID, Name: f.Name, Reason: f.Reason()})
	}
	return r
}

func summarize(groups []core.IssueGroup) Summary {
	s := Summary{
		ByLevel:     make(map[core.Level]int, len(core.Levels)),
		ByCriterion: make(map[string]int),
	}
	for _, l := range core.Levels {
		s.ByLevel[l] = 0
	}
	for _, g := range groups {
		if g.Level.Valid() {
			s.ByLevel[g.Level] += g.Count
		}
		s.ByCriterion[g.Criterion] += g.Count
	}
	return s
}

// HasIssues reports whether the report carries any finding.
func (r *Report) HasIssues() bool {
	return r.TotalIssues > 0
}

// examples returns the instances shown for g and how many were left out.
func examples(g core.IssueGroup) ([]core.IssueDetail, int) {
	if len(g.Issues) <= examplesPerGroup {
		return g.Issues, 0
	}
	return g.Issues[:examplesPerGroup], len(g.Issues) - examplesPerGroup
}
