package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leapa11y/internal/cli/output"
	"github.com/spf13/cobra"
)

// configFileName is the file written by init.
const configFileName = "leapa11y.yaml"

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a leapa11y configuration file",
		Long: `Create a leapa11y.yaml configuration file with the default settings.

Use --example to also create a sample page with common accessibility
issues and a .gitignore for the history database and saved reports.`,
		Example: `  # Initialize in current directory
  leapa11y init

  # Initialize with an example page
  leapa11y init --example

  # Initialize in a new directory
  leapa11y init my-site --example

  # Force overwrite existing config
  leapa11y init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			template := "minimal"
			if example {
				template = "example"
			}
			return runInit(cmdCtx.Renderer, dir, template, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&example, "example", false, "Also create an example page to check")

	return cmd
}

func runInit(r *output.Renderer, dir, template string, force bool) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, configFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
	}

	if err := copyTemplate(template, dir, force); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	files, _ := listTemplateFiles(template)
	for _, f := range files {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Success("leapa11y initialized!")
	r.Println("")
	r.Println("Next steps:")
	if template == "example" {
		r.Println("  1. Run 'leapa11y check pages/index.html' to see the report")
		r.Println("  2. Fix an issue and run 'leapa11y watch pages/index.html'")
	} else {
		r.Println("  1. Adjust the settings in " + configFileName)
		r.Println("  2. Run 'leapa11y check <url|file>' to check a page")
	}
	r.Println("  3. Run 'leapa11y rules' to see all rules")

	return nil
}
