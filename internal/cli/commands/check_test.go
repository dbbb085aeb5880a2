package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapa11y/internal/state"
	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/lint/rules"
)

const brokenPage = `<html><body><img src="team.png"><button></button></body></html>`

type jsonOutput struct {
	ReportInfo struct {
		URL         string `json:"url"`
		TotalIssues int    `json:"total_issues"`
	} `json:"report_info"`
	Issues []core.IssueGroup `json:"issues"`
}

func writePage(t *testing.T, dir, name, markup string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(markup), 0o600))
	return path
}

func parseReport(t *testing.T, out string) jsonOutput {
	t.Helper()
	var rep jsonOutput
	require.NoError(t, json.Unmarshal([]byte(out), &rep), "output: %s", out)
	return rep
}

// allRulesExcept returns a --disable value that leaves only id enabled.
func allRulesExcept(id string) string {
	var ids []string
	for _, r := range rules.Registry().All() {
		if r.ID() != id {
			ids = append(ids, r.ID())
		}
	}
	return strings.Join(ids, ",")
}

func TestCheckCommand_ConsoleReport(t *testing.T) {
	dir := isolate(t)
	page := writePage(t, dir, "broken.html", brokenPage)

	out, err := executeCommand(t, NewCheckCommand(), page)
	require.ErrorIs(t, err, ErrIssuesFound)

	assert.Contains(t, out, "ACCESSIBILITY REPORT")
	assert.Contains(t, out, "Image Alt Text")
	assert.NotContains(t, out, "\x1b[", "console output to a buffer must not be colored")
}

func TestCheckCommand_CleanPageExitsZero(t *testing.T) {
	dir := isolate(t)
	page := writePage(t, dir, "clean.html", `<html><body><img src="team.png" alt="The support team"></body></html>`)

	out, err := executeCommand(t, NewCheckCommand(), page, "--disable", allRulesExcept("TA01"))
	require.NoError(t, err)
	assert.Contains(t, out, "No accessibility issues found!")
}

func TestCheckCommand_JSONReport(t *testing.T) {
	dir := isolate(t)
	page := writePage(t, dir, "broken.html", brokenPage)

	out, err := executeCommand(t, NewCheckCommand(), page, "--report", "json")
	require.ErrorIs(t, err, ErrIssuesFound)

	rep := parseReport(t, out)
	assert.True(t, strings.HasPrefix(rep.ReportInfo.URL, "file://"), "url = %s", rep.ReportInfo.URL)
	assert.Positive(t, rep.ReportInfo.TotalIssues)

	total := 0
	for _, g := range rep.Issues {
		total += g.Count
	}
	assert.Equal(t, rep.ReportInfo.TotalIssues, total)
}

func TestCheckCommand_RuleSelection(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, groups []core.IssueGroup)
	}{
		{
			name: "disable",
			args: []string{"--disable", "TA01"},
			check: func(t *testing.T, groups []core.IssueGroup) {
				for _, g := range groups {
					assert.NotEqual(t, "1.1.1", g.Criterion)
				}
			},
		},
		{
			name: "level A only",
			args: []string{"--level", "A"},
			check: func(t *testing.T, groups []core.IssueGroup) {
				require.NotEmpty(t, groups)
				for _, g := range groups {
					assert.Equal(t, core.LevelA, g.Level, "group %s", g.Name)
				}
			},
		},
		{
			name: "parallel workers",
			args: []string{"--workers", "4"},
			check: func(t *testing.T, groups []core.IssueGroup) {
				assert.NotEmpty(t, groups)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			page := writePage(t, dir, "broken.html", brokenPage)

			args := append([]string{page, "--report", "json", "--no-history"}, tt.args...)
			out, err := executeCommand(t, NewCheckCommand(), args...)
			require.ErrorIs(t, err, ErrIssuesFound)
			tt.check(t, parseReport(t, out).Issues)
		})
	}
}

func TestCheckCommand_SavesReports(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantFile func(dir string) string
	}{
		{
			name: "html into output dir",
			args: []string{"--report", "html", "--output-dir", "out"},
			wantFile: func(dir string) string {
				matches, _ := filepath.Glob(filepath.Join(dir, "out", "accessibility_report_*.html"))
				if len(matches) == 1 {
					return matches[0]
				}
				return ""
			},
		},
		{
			name: "pdf always saved",
			args: []string{"--report", "pdf"},
			wantFile: func(dir string) string {
				matches, _ := filepath.Glob(filepath.Join(dir, "accessibility_reports", "*.pdf"))
				if len(matches) == 1 {
					return matches[0]
				}
				return ""
			},
		},
		{
			name: "filename reduced to base name",
			args: []string{"--report", "json", "--filename", "../../escape.json"},
			wantFile: func(dir string) string {
				return filepath.Join(dir, "accessibility_reports", "escape.json")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			page := writePage(t, dir, "broken.html", brokenPage)

			out, err := executeCommand(t, NewCheckCommand(), append([]string{page}, tt.args...)...)
			require.ErrorIs(t, err, ErrIssuesFound)
			assert.Contains(t, out, "report saved to")

			path := tt.wantFile(dir)
			require.NotEmpty(t, path, "no report file written")
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestCheckCommand_HTTP(t *testing.T) {
	isolate(t)
	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.UserAgent()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(brokenPage))
	}))
	defer srv.Close()

	out, err := executeCommand(t, NewCheckCommand(), srv.URL+"/page", "--report", "json", "--no-history")
	require.ErrorIs(t, err, ErrIssuesFound)

	assert.Equal(t, srv.URL+"/page", parseReport(t, out).ReportInfo.URL)
	assert.Contains(t, userAgent, "leapa11y")
}

func TestCheckCommand_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      func(dir string) []string
		errSubstr string
	}{
		{
			name:      "missing file",
			args:      func(dir string) []string { return []string{filepath.Join(dir, "nope.html")} },
			errSubstr: "nope.html",
		},
		{
			name:      "unsupported scheme",
			args:      func(string) []string { return []string{"ftp://example.com/"} },
			errSubstr: "ftp",
		},
		{
			name: "unknown report format",
			args: func(dir string) []string {
				return []string{writePage(t, dir, "p.html", brokenPage), "--report", "docx"}
			},
			errSubstr: "unsupported report format",
		},
		{
			name: "invalid level",
			args: func(dir string) []string {
				return []string{writePage(t, dir, "p.html", brokenPage), "--level", "B"}
			},
			errSubstr: "target_level",
		},
		{
			name:      "no target",
			args:      func(string) []string { return nil },
			errSubstr: "accepts 1 arg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			_, err := executeCommand(t, NewCheckCommand(), tt.args(dir)...)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrIssuesFound)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestCheckCommand_History(t *testing.T) {
	dir := isolate(t)
	page := writePage(t, dir, "broken.html", brokenPage)

	_, err := executeCommand(t, NewCheckCommand(), page, "--report", "json")
	require.ErrorIs(t, err, ErrIssuesFound)
	_, err = executeCommand(t, NewCheckCommand(), page, "--report", "json", "--no-history")
	require.ErrorIs(t, err, ErrIssuesFound)

	store := state.NewSQLiteStore(nil)
	require.NoError(t, store.Open(filepath.Join(dir, "state.db")))
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns("", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1, "--no-history must not record a run")
	assert.Positive(t, runs[0].TotalIssues)
	assert.Equal(t, runs[0].TotalIssues, runs[0].LevelA+runs[0].LevelAA+runs[0].LevelAAA)
}
