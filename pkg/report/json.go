package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/leapstack-labs/leapa11y/pkg/core"
)

// JSONRenderer writes the report as indented JSON.
type JSONRenderer struct{}

// Format implements Renderer.
func (JSONRenderer) Format() Format { return FormatJSON }

type jsonReport struct {
	ReportInfo jsonInfo          `json:"report_info"`
	Summary    Summary           `json:"summary"`
	Issues     []core.IssueGroup `json:"issues"`
	Failures   []Failure         `json:"failures,omitempty"`
}

type jsonInfo struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	TotalIssues int       `json:"total_issues"`
}

// Render implements Renderer.
func (JSONRenderer) Render(w io.Writer, r *Report) error {
	out := jsonReport{
		ReportInfo: jsonInfo{
			ID:          r.ID,
			URL:         r.URL,
			Title:       r.Title,
			Timestamp:   r.Timestamp,
			TotalIssues: r.TotalIssues,
		},
		Summary:  r.Summary,
		Issues:   r.Issues,
		Failures: r.Failures,
	}
	if out.Issues == nil {
		out.Issues = []core.IssueGroup{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}
