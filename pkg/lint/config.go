package lint

import (
	"strings"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
)

// LineStrategy selects how findings recover source lines.
type LineStrategy string

// Line strategies.
const (
	// LineCandidates searches distinctive attribute values and text.
	LineCandidates LineStrategy = "candidates"
	// LinePrefix matches the start of the serialized element line by line.
	LinePrefix LineStrategy = "prefix"
)

// ParseLineStrategy converts a string to a LineStrategy.
func ParseLineStrategy(s string) (LineStrategy, bool) {
	switch LineStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case LineCandidates, "":
		return LineCandidates, true
	case LinePrefix:
		return LinePrefix, true
	default:
		return LineCandidates, false
	}
}

// Config controls which rules run and how findings are built.
type Config struct {
	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool

	// TargetLevel limits the run to rules at or below this level; empty means all
	TargetLevel core.Level

	// LineStrategy picks the line resolver
	LineStrategy LineStrategy

	// TrackPositions asks the parser for exact source lines where possible
	TrackPositions bool

	// RuleOptions holds rule-specific options keyed by rule ID
	RuleOptions map[string]map[string]any
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules: make(map[string]bool),
		LineStrategy:  LineCandidates,
		RuleOptions:   make(map[string]map[string]any),
	}
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[strings.ToUpper(ruleID)]
}

// Allows reports whether a rule at level l is in scope for the target level.
func (c *Config) Allows(l core.Level) bool {
	if c == nil || c.TargetLevel == "" {
		return true
	}
	return l.Rank() <= c.TargetLevel.Rank()
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[strings.ToUpper(strings.TrimSpace(ruleID))] = true
	return c
}

// SetTargetLevel limits the run to rules at or below l.
func (c *Config) SetTargetLevel(l core.Level) *Config {
	c.TargetLevel = l
	return c
}

// SetRuleOptions sets rule-specific options.
func (c *Config) SetRuleOptions(ruleID string, opts map[string]any) *Config {
	c.RuleOptions[strings.ToUpper(strings.TrimSpace(ruleID))] = opts
	return c
}

// GetRuleOptions returns the options for a rule, or nil.
func (c *Config) GetRuleOptions(ruleID string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[strings.ToUpper(ruleID)]
}

// ParseOptions returns the dom.Parse options implied by the config.
func (c *Config) ParseOptions() []dom.ParseOption {
	if c != nil && c.TrackPositions {
		return []dom.ParseOption{dom.WithSourcePositions()}
	}
	return nil
}

func (c *Config) lineResolver() func(*dom.Document, *dom.Node) int {
	if c != nil && c.LineStrategy == LinePrefix {
		return dom.ResolveLinePrefix
	}
	return dom.ResolveLine
}
