package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/leapstack-labs/leapa11y/internal/cli/config"
	"github.com/leapstack-labs/leapa11y/internal/fetch"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
	"github.com/leapstack-labs/leapa11y/pkg/lint/rules"
	"github.com/leapstack-labs/leapa11y/pkg/report"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
// Everything except Filename is read back through the config layer, which
// loads the same flags.
type CheckOptions struct {
	Report         string
	Timeout        int
	Filename       string
	OutputDir      string
	Workers        int
	Level          string
	Disable        []string
	NoHistory      bool
	LineStrategy   string
	TrackPositions bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check <url|file>",
		Short: "Check a page for WCAG 2.1 accessibility issues",
		Long: `Fetch a page and check its static HTML against the WCAG 2.1 rule catalog.

The target may be an http(s) URL, a file:// URL or a path to a local HTML file.
Findings are grouped by rule and rendered as a report. Console and JSON reports
are written to stdout unless --filename or --output-dir is given; PDF reports
are always saved to a file.

Exit status is 0 when no issues are found and 1 otherwise.`,
		Example: `  # Check a page and print the console report
  leapa11y check https://example.com

  # Save an HTML report to ./accessibility_reports
  leapa11y check https://example.com --report html --output-dir accessibility_reports

  # Check a local file against level A and AA only
  leapa11y check ./index.html --level AA

  # Skip rules
  leapa11y check ./index.html --disable TA01,IC03`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Report, "report", "r", config.DefaultReport, "Report format: console, json, html, markdown, pdf")
	cmd.Flags().IntVar(&opts.Timeout, "timeout", config.DefaultTimeout, "Page load timeout in seconds")
	cmd.Flags().StringVar(&opts.Filename, "filename", "", "Report file name (saved under the output directory)")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "Directory for saved reports (default: ./"+report.DefaultDirName+")")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", config.DefaultWorkers, "Number of rules to run in parallel")
	cmd.Flags().StringVar(&opts.Level, "level", "", "Only run rules at or below this level: A, AA, AAA")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to skip (comma separated)")
	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "Do not record the run in the history database")
	cmd.Flags().StringVar(&opts.LineStrategy, "line-strategy", "", "How to find source lines: candidates, prefix")
	cmd.Flags().BoolVar(&opts.TrackPositions, "track-positions", false, "Record exact source lines while parsing")

	_ = cmd.RegisterFlagCompletionFunc("report", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		formats := make([]string, len(report.Formats))
		for i, f := range report.Formats {
			formats[i] = string(f)
		}
		return formats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"A", "AA", "AAA"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("disable", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var ids []string
		for _, r := range rules.Registry().All() {
			ids = append(ids, r.ID()+"\t"+r.Name())
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runCheck(cmd *cobra.Command, target string, opts *CheckOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger

	if err := fetch.ValidateURL(target); err != nil {
		return err
	}

	rep, err := checkTarget(cmd.Context(), target, cfg, logger)
	if err != nil {
		return err
	}

	if err := writeReport(cmd, cmdCtx, rep, opts.Filename); err != nil {
		return err
	}

	if cfg.History {
		recordRun(cmdCtx, rep)
	}

	if rep.HasIssues() {
		return ErrIssuesFound
	}
	return nil
}

// checkTarget fetches target, runs the rule catalog and builds the report.
func checkTarget(ctx context.Context, target string, cfg *config.Config, logger *slog.Logger) (*report.Report, error) {
	fetcher := fetch.New(cfg.TimeoutDuration())
	start := time.Now()
	page, err := fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}
	logger.Debug("page loaded",
		"url", page.URL,
		"status", page.Status,
		"bytes", len(page.HTML),
		"duration", time.Since(start))

	return checkPage(page, cfg, logger), nil
}

// checkPage runs the rule catalog over a loaded page.
func checkPage(page *fetch.Page, cfg *config.Config, logger *slog.Logger) *report.Report {
	lintCfg := cfg.BuildLintConfig()
	doc := dom.Parse(page.HTML, lintCfg.ParseOptions()...)

	engine := lint.NewEngine(rules.Registry(), lintCfg,
		lint.WithWorkers(cfg.Workers),
		lint.WithLogger(logger))
	res := engine.Run(doc)

	logger.Debug("rules finished",
		"rules", len(engine.ActiveRules()),
		"findings", len(res.Findings),
		"failures", len(res.Failures))

	return report.Build(report.Page{
		URL:    page.URL,
		Title:  page.Title,
		Status: page.Status,
	}, res, time.Now())
}

// writeReport prints the report or saves it to a file. Binary formats and
// runs with a filename or output directory are saved.
func writeReport(cmd *cobra.Command, cmdCtx *CommandContext, rep *report.Report, filename string) error {
	cfg := cmdCtx.Cfg
	format, err := report.ParseFormat(cfg.Report)
	if err != nil {
		return err
	}

	if format.Binary() || filename != "" || cfg.OutputDir != "" {
		path, err := report.Save(rep, format, cfg.OutputDir, filename)
		if err != nil {
			return err
		}
		cmdCtx.Logger.Info("report saved", "path", path, "format", format)
		cmdCtx.Renderer.Success(fmt.Sprintf("%s report saved to %s", strings.ToUpper(string(format)), path))
		return nil
	}

	var renderer report.Renderer
	if format == report.FormatConsole {
		renderer = report.NewConsoleRenderer(cmdCtx.Renderer.IsTTY())
	} else if renderer, err = report.RendererFor(format); err != nil {
		return err
	}
	if err := renderer.Render(cmd.OutOrStdout(), rep); err != nil {
		return fmt.Errorf("failed to render %s report: %w", format, err)
	}
	return nil
}

// recordRun stores the run in the history database. History is best effort:
// failures are logged and do not change the command result.
func recordRun(cmdCtx *CommandContext, rep *report.Report) {
	store, cleanup, err := cmdCtx.OpenStore()
	if err != nil {
		cmdCtx.Logger.Warn("history unavailable", "error", err)
		return
	}
	defer cleanup()

	if err := store.SaveRun(rep); err != nil {
		cmdCtx.Logger.Warn("failed to record run", "id", rep.ID, "error", err)
		return
	}
	cmdCtx.Logger.Debug("run recorded", "id", rep.ID, "path", store.Path())
}
