package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapa11y/internal/cli/output"
	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
	"github.com/leapstack-labs/leapa11y/pkg/report"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := report.ParseFormat(c.Report); err != nil {
		return fmt.Errorf("invalid report: %w", err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.Timeout)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if !output.Valid(c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (valid: auto, text, markdown, json)", c.OutputFormat)
	}
	if c.Lint == nil {
		return nil
	}

	if c.Lint.TargetLevel != "" {
		if _, ok := core.ParseLevel(c.Lint.TargetLevel); !ok {
			return fmt.Errorf("invalid lint.target_level %q (valid: A, AA, AAA)", c.Lint.TargetLevel)
		}
	}
	if _, ok := lint.ParseLineStrategy(c.Lint.LineStrategy); !ok {
		return fmt.Errorf("invalid lint.line_strategy %q (valid: %s, %s)",
			c.Lint.LineStrategy, lint.LineCandidates, lint.LinePrefix)
	}
	for id := range c.Lint.Rules {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("lint.rules contains an empty rule id")
		}
	}
	return nil
}
