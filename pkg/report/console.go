package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"

	"github.com/leapstack-labs/leapa11y/pkg/core"
)

const ruleWidth = 80

// ConsoleRenderer writes a human-readable report for terminals.
type ConsoleRenderer struct {
	color bool
}

// NewConsoleRenderer creates a console renderer. With color false the
// output contains no escape sequences.
func NewConsoleRenderer(color bool) *ConsoleRenderer {
	return &ConsoleRenderer{color: color}
}

// Format implements Renderer.
func (*ConsoleRenderer) Format() Format { return FormatConsole }

type consoleStyles struct {
	title     lipgloss.Style
	section   lipgloss.Style
	name      lipgloss.Style
	url       lipgloss.Style
	criterion lipgloss.Style
	count     lipgloss.Style
	element   lipgloss.Style
	fix       lipgloss.Style
	success   lipgloss.Style
	muted     lipgloss.Style
	levels    map[core.Level]lipgloss.Style
}

func newConsoleStyles(lr *lipgloss.Renderer) consoleStyles {
	return consoleStyles{
		title:     lr.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		section:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		name:      lr.NewStyle().Bold(true),
		url:       lr.NewStyle().Foreground(lipgloss.Color("4")),
		criterion: lr.NewStyle().Foreground(lipgloss.Color("6")),
		count:     lr.NewStyle().Foreground(lipgloss.Color("1")),
		element:   lr.NewStyle().Foreground(lipgloss.Color("5")),
		fix:       lr.NewStyle().Foreground(lipgloss.Color("2")),
		success:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		muted:     lr.NewStyle().Faint(true),
		levels: map[core.Level]lipgloss.Style{
			core.LevelA:   lr.NewStyle().Foreground(lipgloss.Color("3")),
			core.LevelAA:  lr.NewStyle().Foreground(lipgloss.Color("1")),
			core.LevelAAA: lr.NewStyle().Foreground(lipgloss.Color("5")),
		},
	}
}

func (s consoleStyles) level(l core.Level) lipgloss.Style {
	if st, ok := s.levels[l]; ok {
		return st
	}
	return s.name.UnsetBold()
}

// Render implements Renderer.
func (c *ConsoleRenderer) Render(w io.Writer, r *Report) error {
	lr := lipgloss.NewRenderer(w)
	if !c.color {
		lr.SetColorProfile(termenv.Ascii)
	}
	st := newConsoleStyles(lr)

	bw := bufio.NewWriter(w)
	line := func(format string, args ...any) {
		_, _ = fmt.Fprintf(bw, format+"\n", args...)
	}

	bar := strings.Repeat("=", ruleWidth)
	line("%s", bar)
	line("%s", st.title.Render("ACCESSIBILITY REPORT"))
	line("%s", bar)
	line("URL: %s", st.url.Render(r.URL))
	if r.Title != "" {
		line("Title: %s", r.Title)
	}
	line("Checked at: %s", r.Timestamp.Format("2006-01-02 15:04:05"))
	line("Total issues: %s", st.count.Render(fmt.Sprint(r.TotalIssues)))
	line("")

	line("%s", st.section.Render("SUMMARY BY LEVEL"))
	t := table.NewWriter()
	t.SetOutputMirror(bw)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Level", "Issues"})
	for _, l := range core.Levels {
		t.AppendRow(table.Row{st.level(l).Render(l.String()), r.Summary.ByLevel[l]})
	}
	t.Render()
	line("")

	if len(r.Issues) == 0 {
		line("%s", st.success.Render("No accessibility issues found!"))
	} else {
		line("%s", st.section.Render("ISSUE DETAILS"))
		line("%s", strings.Repeat("-", 40))
		for i, g := range r.Issues {
			line("")
			line("%d. %s", i+1, st.name.Render(g.Name))
			line("   WCAG criterion: %s", st.criterion.Render(g.Criterion))
			line("   Level: %s", st.level(g.Level).Render(g.Level.String()))
			line("   Count: %s", st.count.Render(fmt.Sprint(g.Count)))

			shown, rest := examples(g)
			for j, d := range shown {
				line("   %d) Element: %s", j+1, st.element.Render(d.Element))
				line("      Line: %d", d.Line)
				line("      Message: %s", d.Message)
				line("      Recommendation: %s", st.fix.Render(d.Recommendation))
			}
			if rest > 0 {
				line("   ... and %d more", rest)
			}
		}
	}

	if len(r.Failures) > 0 {
		line("")
		line("%s", st.section.Render("RULE FAILURES"))
		for _, f := range r.Failures {
			line("   %s %s: %s", f.RuleID, f.Name, st.muted.Render(f.Reason))
		}
	}

	line("")
	line("%s", bar)
	return bw.Flush()
}
