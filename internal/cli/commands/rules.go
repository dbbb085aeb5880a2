package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapa11y/internal/cli/output"
	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
	"github.com/leapstack-labs/leapa11y/pkg/lint/rules"
	"github.com/spf13/cobra"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Level   string // Filter by conformance level
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available accessibility rules",
		Long: `List all available accessibility rules with their documentation.

Rules are organized by group (e.g., structure, interactive) and carry the
WCAG 2.1 success criterion and conformance level they check.
Use --verbose to see full documentation including examples and fix guidance.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON or YAML: Machine-readable format`,
		Example: `  # List all rules
  leapa11y rules

  # Show details for a specific rule
  leapa11y rules TA01

  # List rules in the interactive group
  leapa11y rules --group interactive

  # List level A rules only
  leapa11y rules --level A

  # Output as YAML
  leapa11y rules --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().StringVar(&opts.Level, "level", "", "Filter by level: A, AA, AAA")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, yaml, markdown")

	_ = cmd.RegisterFlagCompletionFunc("group", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return rules.Registry().Groups(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// rulesRenderer returns the renderer for the rules command. YAML is handled
// separately because it is not a general output mode.
func rulesRenderer(cmd *cobra.Command, opts *RulesOptions) *output.Renderer {
	if opts.Format != "" {
		return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}
	cfg, err := getConfig(cmd)
	if err != nil {
		return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto)
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
}

func isYAML(format string) bool {
	f := strings.ToLower(strings.TrimSpace(format))
	return f == "yaml" || f == "yml"
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	var level core.Level
	if opts.Level != "" {
		l, ok := core.ParseLevel(opts.Level)
		if !ok {
			return fmt.Errorf("invalid level %q (valid: A, AA, AAA)", opts.Level)
		}
		level = l
	}

	infos := filterRules(rules.Registry().Infos(), opts.Group, level)
	if opts.Group != "" && len(infos) == 0 {
		return fmt.Errorf("no rules in group %q (available: %s)",
			opts.Group, strings.Join(rules.Registry().Groups(), ", "))
	}

	if isYAML(opts.Format) {
		return writeYAML(cmd, newRulesListOutput(infos))
	}

	r := rulesRenderer(cmd, opts)
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(newRulesListOutput(infos))
	case output.ModeMarkdown:
		return listRulesMarkdown(r, infos, opts.Verbose)
	default:
		return listRulesText(r, infos, opts.Verbose)
	}
}

func filterRules(infos []core.RuleInfo, group string, level core.Level) []core.RuleInfo {
	if group == "" && level == "" {
		return infos
	}

	var filtered []core.RuleInfo
	for _, info := range infos {
		if group != "" && info.Group != group {
			continue
		}
		if level != "" && info.Level != level {
			continue
		}
		filtered = append(filtered, info)
	}
	return filtered
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	rule, ok := rules.Registry().ByID(ruleID)
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	info := lint.GetRuleInfo(rule)

	if isYAML(opts.Format) {
		return writeYAML(cmd, info)
	}

	r := rulesRenderer(cmd, opts)
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeMarkdown:
		return showRuleMarkdown(r, info)
	default:
		return showRuleText(r, info)
	}
}

// RulesListOutput is the JSON and YAML structure for the rules listing.
type RulesListOutput struct {
	Rules []core.RuleInfo `json:"rules" yaml:"rules"`
	Count struct {
		A     int `json:"a" yaml:"a"`
		AA    int `json:"aa" yaml:"aa"`
		AAA   int `json:"aaa" yaml:"aaa"`
		Total int `json:"total" yaml:"total"`
	} `json:"count" yaml:"count"`
}

func newRulesListOutput(infos []core.RuleInfo) RulesListOutput {
	out := RulesListOutput{Rules: infos}
	if out.Rules == nil {
		out.Rules = []core.RuleInfo{}
	}
	for _, info := range infos {
		switch info.Level {
		case core.LevelA:
			out.Count.A++
		case core.LevelAA:
			out.Count.AA++
		case core.LevelAAA:
			out.Count.AAA++
		}
	}
	out.Count.Total = len(infos)
	return out
}

func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

var groupTitle = cases.Title(language.English)

// groupLabel turns "text-alternatives" into "Text Alternatives".
func groupLabel(group string) string {
	return groupTitle.String(strings.ReplaceAll(group, "-", " "))
}

// listRulesText outputs rules in styled text format, one table per group.
func listRulesText(r *output.Renderer, infos []core.RuleInfo, verbose bool) error {
	styles := r.Styles()
	counts := newRulesListOutput(infos).Count

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Accessibility Rules (%d A, %d AA, %d AAA)",
		counts.A, counts.AA, counts.AAA)))

	for _, group := range groupOrder(infos) {
		r.Println("")
		r.Println(styles.Header2.Render(groupLabel(group)))

		t := table.NewWriter()
		t.SetOutputMirror(r.Writer())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"ID", "Name", "Criterion", "Level"})
		for _, info := range infos {
			if info.Group != group {
				continue
			}
			t.AppendRow(table.Row{info.ID, info.Name, info.Criterion, styles.Level(info.Level).Render(info.Level.String())})
			if verbose {
				t.AppendRow(table.Row{"", styles.Muted.Render(truncateOneLine(info.Description, 70)), "", ""})
			}
		}
		t.Render()
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'leapa11y rules <rule-id>' for detailed documentation"))
	r.Println("")
	return nil
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, infos []core.RuleInfo, verbose bool) error {
	r.Println(output.FormatHeader(1, "Accessibility Rules"))
	r.Println("")

	for _, group := range groupOrder(infos) {
		r.Println(output.FormatHeader(2, groupLabel(group)))
		r.Println("")
		for _, info := range infos {
			if info.Group != group {
				continue
			}
			r.Printf("- **%s** - %s (%s, `%s`)\n", info.ID, info.Name, info.Criterion, info.Level)
			if verbose {
				r.Println("  " + info.Description)
				if info.Rationale != "" {
					r.Println("  > " + info.Rationale)
				}
			}
		}
		r.Println("")
	}
	return nil
}

func groupOrder(infos []core.RuleInfo) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, info := range infos {
		if !seen[info.Group] {
			seen[info.Group] = true
			groups = append(groups, info.Group)
		}
	}
	return groups
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, info core.RuleInfo) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", info.ID, info.Name)))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Criterion"), info.Criterion)
	r.Printf("  %s: %s\n", styles.Bold.Render("Level"), styles.Level(info.Level).Render(info.Level.String()))
	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), groupLabel(info.Group))
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + info.Description)
	r.Println("")

	if info.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + info.Rationale)
		r.Println("")
	}

	if info.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(info.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}

	if info.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(info.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}

	if info.Fix != "" {
		r.Println(styles.Bold.Render("How to Fix"))
		r.Println("  " + info.Fix)
		r.Println("")
	}

	if len(info.ConfigKeys) > 0 {
		r.Println(styles.Bold.Render("Configuration"))
		r.Printf("  Options: %s\n", strings.Join(info.ConfigKeys, ", "))
		r.Println("")
	}

	return nil
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, info core.RuleInfo) error {
	r.Println(output.FormatHeader(1, info.ID+" - "+info.Name))
	r.Println("")
	r.Println(output.FormatKeyValue("Criterion", info.Criterion))
	r.Println(output.FormatKeyValue("Level", info.Level.String()))
	r.Println(output.FormatKeyValue("Group", groupLabel(info.Group)))
	r.Println("")
	r.Println(info.Description)
	r.Println("")

	if info.Rationale != "" {
		r.Println(output.FormatHeader(2, "Why This Matters"))
		r.Println("")
		r.Println(info.Rationale)
		r.Println("")
	}

	if info.BadExample != "" {
		r.Println(output.FormatHeader(2, "Bad Example"))
		r.Println("")
		r.Println("```html")
		r.Println(info.BadExample)
		r.Println("```")
		r.Println("")
	}

	if info.GoodExample != "" {
		r.Println(output.FormatHeader(2, "Good Example"))
		r.Println("")
		r.Println("```html")
		r.Println(info.GoodExample)
		r.Println("```")
		r.Println("")
	}

	if info.Fix != "" {
		r.Println(output.FormatHeader(2, "How to Fix"))
		r.Println("")
		r.Println(info.Fix)
		r.Println("")
	}

	if len(info.ConfigKeys) > 0 {
		r.Println(output.FormatHeader(2, "Configuration"))
		r.Println("")
		r.Printf("Options: `%s`\n", strings.Join(info.ConfigKeys, "`, `"))
		r.Println("")
	}

	return nil
}

func truncateOneLine(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
