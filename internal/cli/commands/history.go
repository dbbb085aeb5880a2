package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/leapa11y/internal/cli/output"
	"github.com/leapstack-labs/leapa11y/internal/state"
	"github.com/spf13/cobra"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history [url]",
		Short: "Show previous check runs",
		Long: `Show check runs recorded in the history database, newest first.

Every 'leapa11y check' records the page, the issue totals per level and the
issue groups unless --no-history is given. Pass a URL to list the runs of a
single page, and use 'history show <run-id>' to see the groups of one run.`,
		Example: `  # Show the last 20 runs
  leapa11y history

  # Show every run for one page
  leapa11y history https://example.com --limit 0

  # Show the issue groups of a run
  leapa11y history show 3f2c...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var url string
			if len(args) > 0 {
				url = args[0]
			}
			return runHistory(cmd, url, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.AddCommand(newHistoryShowCommand())

	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the issue groups of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(cmd, args[0])
		},
	}
}

func runHistory(cmd *cobra.Command, url string, opts *HistoryOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	store, cleanup, err := cmdCtx.OpenStore()
	if err != nil {
		return err
	}
	defer cleanup()

	runs, err := store.ListRuns(url, opts.Limit)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		if runs == nil {
			runs = []state.RunRecord{}
		}
		return r.JSON(runs)
	}

	if len(runs) == 0 {
		r.Muted("No runs recorded yet. Run 'leapa11y check <url>' first.")
		return nil
	}

	r.Header(1, "Check History")

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.AppendHeader(table.Row{"Run", "Checked at", "URL", "Status", "Issues", "A", "AA", "AAA"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.ID,
			run.CheckedAt.Local().Format("2006-01-02 15:04:05"),
			run.URL,
			run.Status,
			run.TotalIssues,
			run.LevelA,
			run.LevelAA,
			run.LevelAAA,
		})
	}
	renderTable(r, t)
	return nil
}

func runHistoryShow(cmd *cobra.Command, runID string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	store, cleanup, err := cmdCtx.OpenStore()
	if err != nil {
		return err
	}
	defer cleanup()

	groups, err := store.GetRunGroups(runID)
	if errors.Is(err, state.ErrRunNotFound) {
		return fmt.Errorf("run %q not found", runID)
	}
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		if groups == nil {
			groups = []state.GroupRecord{}
		}
		return r.JSON(groups)
	}

	r.Header(1, "Run "+runID)
	if len(groups) == 0 {
		r.Success("No accessibility issues found!")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.AppendHeader(table.Row{"#", "Issue", "Criterion", "Level", "Count"})
	for i, g := range groups {
		t.AppendRow(table.Row{strconv.Itoa(i + 1), g.Name, g.Criterion, g.Level.String(), g.Count})
	}
	renderTable(r, t)
	return nil
}

// renderTable renders t as a markdown table outside text mode.
func renderTable(r *output.Renderer, t table.Writer) {
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
