package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/leapstack-labs/leapa11y/pkg/core"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

const htmlTimeLayout = "02.01.2006 15:04:05"

// HTMLRenderer writes a standalone HTML page.
type HTMLRenderer struct{}

// Format implements Renderer.
func (HTMLRenderer) Format() Format { return FormatHTML }

// Render implements Renderer.
func (HTMLRenderer) Render(w io.Writer, r *Report) error {
	if err := templates.ExecuteTemplate(w, "page", newTemplateData(r)); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

type templateData struct {
	URL         string
	Title       string
	Timestamp   string
	TotalIssues int
	LevelA      int
	LevelAA     int
	LevelAAA    int
	Groups      []templateGroup
	Failures    []Failure
}

type templateGroup struct {
	Index     int
	Name      string
	Criterion string
	Level     core.Level
	Count     int
	Issues    []core.IssueDetail
	More      int
}

func newTemplateData(r *Report) templateData {
	d := templateData{
		URL:         r.URL,
		Title:       r.Title,
		Timestamp:   r.Timestamp.Format(htmlTimeLayout),
		TotalIssues: r.TotalIssues,
		LevelA:      r.Summary.ByLevel[core.LevelA],
		LevelAA:     r.Summary.ByLevel[core.LevelAA],
		LevelAAA:    r.Summary.ByLevel[core.LevelAAA],
		Failures:    r.Failures,
	}
	for i, g := range r.Issues {
		shown, rest := examples(g)
		d.Groups = append(d.Groups, templateGroup{
			Index:     i + 1,
			Name:      g.Name,
			Criterion: g.Criterion,
			Level:     g.Level,
			Count:     g.Count,
			Issues:    shown,
			More:      rest,
		})
	}
	return d
}
