// Package config provides configuration management for the leapa11y CLI.
//
// Values are layered from built-in defaults, a leapa11y.yaml file,
// LEAPA11Y_ environment variables and explicitly set command-line flags,
// in increasing order of precedence.
package config

import (
	"strings"
	"time"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// Default configuration values.
const (
	DefaultReport       = "console"
	DefaultTimeout      = 30
	DefaultWorkers      = 1
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultStateFile    = ".leapa11y/state.db"
	DefaultLineStrategy = string(lint.LineCandidates)
)

// Config holds all CLI configuration options.
type Config struct {
	Report       string      `koanf:"report"`
	Timeout      int         `koanf:"timeout"` // seconds
	OutputDir    string      `koanf:"output_dir"`
	Workers      int         `koanf:"workers"`
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`
	History      bool        `koanf:"history"`
	StatePath    string      `koanf:"state_path"`
	Lint         *LintConfig `koanf:"lint"`
}

// LintConfig holds rule selection and finding options.
type LintConfig struct {
	Disabled       []string                  `koanf:"disabled"`
	TargetLevel    string                    `koanf:"target_level"`
	LineStrategy   string                    `koanf:"line_strategy"`
	TrackPositions bool                      `koanf:"track_positions"`
	Rules          map[string]map[string]any `koanf:"rules"`
}

// TimeoutDuration returns the fetch timeout as a duration.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// DisabledRules returns the disabled rule IDs. Entries may themselves be
// comma separated, as they are when set through the environment.
func (c *Config) DisabledRules() []string {
	if c.Lint == nil {
		return nil
	}
	var ids []string
	for _, entry := range c.Lint.Disabled {
		for _, id := range strings.Split(entry, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, strings.ToUpper(id))
			}
		}
	}
	return ids
}

// BuildLintConfig converts the lint section into an engine configuration.
// Call Validate first; invalid values fall back to the engine defaults.
func (c *Config) BuildLintConfig() *lint.Config {
	cfg := lint.NewConfig()
	if c.Lint == nil {
		return cfg
	}

	for _, id := range c.DisabledRules() {
		cfg.Disable(id)
	}
	if level, ok := core.ParseLevel(c.Lint.TargetLevel); ok {
		cfg.SetTargetLevel(level)
	}
	cfg.LineStrategy, _ = lint.ParseLineStrategy(c.Lint.LineStrategy)
	cfg.TrackPositions = c.Lint.TrackPositions
	for id, opts := range c.Lint.Rules {
		cfg.SetRuleOptions(id, opts)
	}
	return cfg
}
