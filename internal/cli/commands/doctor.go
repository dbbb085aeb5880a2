package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapa11y/internal/cli/config"
	"github.com/leapstack-labs/leapa11y/internal/cli/output"
	"github.com/leapstack-labs/leapa11y/internal/state"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
	"github.com/leapstack-labs/leapa11y/pkg/lint/rules"
	"github.com/leapstack-labs/leapa11y/pkg/report"
	"github.com/spf13/cobra"
)

// Health check statuses.
const (
	statusPass = "pass"
	statusWarn = "warn"
	statusFail = "error"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, markdown, json
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the leapa11y setup",
		Long: `Check that leapa11y is configured and ready to run.

The doctor command inspects:
- Configuration: which file was loaded and whether rule IDs in it exist
- Rules: how many rules will run at the configured target level
- History: whether the history database opens and is up to date
- Reports: whether the report directory is writable

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run the checks
  leapa11y doctor

  # Output as JSON
  leapa11y doctor --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	ConfigFile string        `json:"config_file,omitempty"`
	Checks     []HealthCheck `json:"checks"`
	Failed     int           `json:"failed"`
	Warnings   int           `json:"warnings"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string   `json:"name"`
	Group   string   `json:"group"`
	Status  string   `json:"status"` // "pass", "warn", "error"
	Detail  string   `json:"detail"`
	Fix     string   `json:"fix,omitempty"`
	Entries []string `json:"entries,omitempty"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	out := buildDoctorOutput(cmdCtx.Cfg, config.GetConfigFileUsed(), rules.Registry())

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(out); err != nil {
			return err
		}
	case output.ModeMarkdown:
		renderDoctorMarkdown(r, out)
	default:
		renderDoctorText(r, out)
	}

	if out.Failed > 0 {
		return fmt.Errorf("%d health check(s) failed", out.Failed)
	}
	return nil
}

func buildDoctorOutput(cfg *config.Config, configFile string, reg *lint.Registry) *DoctorOutput {
	checks := []HealthCheck{
		checkConfigFile(configFile),
		checkRuleIDs(cfg, reg),
		checkActiveRules(cfg, reg),
		checkHistory(cfg),
		checkReportDir(cfg),
	}

	out := &DoctorOutput{ConfigFile: configFile, Checks: checks}
	for _, c := range checks {
		switch c.Status {
		case statusFail:
			out.Failed++
		case statusWarn:
			out.Warnings++
		}
	}
	return out
}

func checkConfigFile(path string) HealthCheck {
	c := HealthCheck{Name: "Config file", Group: "configuration", Status: statusPass}
	if path == "" {
		c.Detail = "none found, using defaults"
		return c
	}
	c.Detail = path
	return c
}

// checkRuleIDs reports rule IDs in the configuration that match no rule.
func checkRuleIDs(cfg *config.Config, reg *lint.Registry) HealthCheck {
	c := HealthCheck{Name: "Rule IDs", Group: "configuration", Status: statusPass}

	var unknown []string
	for _, id := range cfg.DisabledRules() {
		if _, ok := reg.ByID(id); !ok {
			unknown = append(unknown, "lint.disabled: "+id)
		}
	}
	if cfg.Lint != nil {
		for id := range cfg.Lint.Rules {
			if _, ok := reg.ByID(id); !ok {
				unknown = append(unknown, "lint.rules: "+id)
			}
		}
	}
	sort.Strings(unknown)

	if len(unknown) == 0 {
		c.Detail = "all configured rule IDs exist"
		return c
	}
	c.Status = statusWarn
	c.Detail = fmt.Sprintf("%d unknown rule ID(s)", len(unknown))
	c.Fix = "Run 'leapa11y rules' for the list of rule IDs"
	c.Entries = unknown
	return c
}

func checkActiveRules(cfg *config.Config, reg *lint.Registry) HealthCheck {
	c := HealthCheck{Name: "Active rules", Group: "rules", Status: statusPass}

	engine := lint.NewEngine(reg, cfg.BuildLintConfig())
	active := len(engine.ActiveRules())
	c.Detail = fmt.Sprintf("%d of %d rules will run", active, reg.Len())
	if active == 0 {
		c.Status = statusFail
		c.Fix = "Enable at least one rule or raise lint.target_level"
	}
	return c
}

func checkHistory(cfg *config.Config) HealthCheck {
	c := HealthCheck{Name: "History database", Group: "history", Status: statusPass}
	if !cfg.History {
		c.Detail = "disabled"
		return c
	}

	path := resolveStatePath(cfg)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		c.Detail = path + " (created on the first check)"
		return c
	}

	store := state.NewSQLiteStore(nil)
	if err := store.Open(path); err != nil {
		c.Status = statusFail
		c.Detail = err.Error()
		c.Fix = "Check the state_path setting and file permissions"
		return c
	}
	defer func() { _ = store.Close() }()

	version, err := store.MigrationVersion()
	if err != nil {
		c.Status = statusWarn
		c.Detail = fmt.Sprintf("%s (not migrated)", path)
		c.Fix = "Run 'leapa11y check' once to initialize the database"
		return c
	}
	runs, err := store.ListRuns("", 0)
	if err != nil {
		c.Status = statusWarn
		c.Detail = fmt.Sprintf("%s (schema v%d, unreadable: %v)", path, version, err)
		return c
	}
	c.Detail = fmt.Sprintf("%s (schema v%d, %d runs)", path, version, len(runs))
	return c
}

func checkReportDir(cfg *config.Config) HealthCheck {
	c := HealthCheck{Name: "Report directory", Group: "reports", Status: statusPass}

	dir := cfg.OutputDir
	if dir == "" {
		dir = report.DefaultDirName
	}
	c.Detail = dir

	// The directory is created on demand, so check the nearest existing parent.
	probe := dir
	for {
		info, err := os.Stat(probe)
		if err == nil {
			if !info.IsDir() {
				c.Status = statusFail
				c.Detail = probe + " is not a directory"
				c.Fix = "Point output_dir at a directory"
				return c
			}
			break
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			break
		}
		probe = parent
	}

	f, err := os.CreateTemp(probe, ".leapa11y-doctor-*")
	if err != nil {
		c.Status = statusFail
		c.Detail = fmt.Sprintf("%s is not writable", probe)
		c.Fix = "Choose a writable output_dir"
		return c
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	return c
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("leapa11y Doctor"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.Checks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		status := "success"
		switch check.Status {
		case statusWarn:
			status = "warning"
		case statusFail:
			status = "error"
		}
		r.StatusLine(check.Name+":", status, check.Detail)

		for _, entry := range check.Entries {
			r.Println(styles.Muted.Render("       - " + entry))
		}
		if check.Fix != "" {
			r.Println(styles.Muted.Render("       " + check.Fix))
		}
	}
	r.Println("")

	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	switch {
	case out.Failed > 0:
		r.Error(fmt.Sprintf("%d failed, %d warnings", out.Failed, out.Warnings))
	case out.Warnings > 0:
		r.Warning(fmt.Sprintf("%d warnings", out.Warnings))
	default:
		r.Success("All checks passed")
	}
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) {
	r.Println("# leapa11y Doctor")
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.Checks {
		if check.Group != currentGroup {
			if currentGroup != "" {
				r.Println("")
			}
			currentGroup = check.Group
			r.Println("## " + titleCaser.String(currentGroup))
			r.Println("")
		}

		r.Printf("- **[%s]** %s: %s\n", strings.ToUpper(check.Status), check.Name, check.Detail)
		for _, entry := range check.Entries {
			r.Printf("  - %s\n", entry)
		}
		if check.Fix != "" {
			r.Printf("  - Fix: %s\n", check.Fix)
		}
	}
	r.Println("")
	r.Printf("**%d failed, %d warnings**\n", out.Failed, out.Warnings)
}
