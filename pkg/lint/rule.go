package lint

import (
	"github.com/leapstack-labs/leapa11y/pkg/core"
)

// =============================================================================
// Rule Interface
// =============================================================================

// Rule is the interface all accessibility rules implement.
type Rule interface {
	// ID returns the unique catalog identifier, e.g., "TA01"
	ID() string

	// Name returns the human-readable name, e.g., "Image Alt Text"
	Name() string

	// Criterion returns the WCAG success criterion, e.g., "1.1.1"
	Criterion() string

	// Level returns the conformance level of the criterion
	Level() core.Level

	// Group returns the rule family, e.g., "structure", "interactive"
	Group() string

	// Description returns a human-readable description
	Description() string

	// ConfigKeys returns configuration keys this rule accepts
	ConfigKeys() []string

	// Documentation methods for richer rule documentation
	Rationale() string   // Why this rule exists, what problems it prevents
	BadExample() string  // Markup showing the anti-pattern
	GoodExample() string // Markup showing the correct pattern
	Fix() string         // How to fix violations (when not obvious)

	// Check analyzes the document and returns findings, or an error when the
	// rule could not complete.
	Check(p *Pass) ([]core.Finding, error)
}

// =============================================================================
// Rule Definitions
// =============================================================================

// CheckFunc analyzes the document carried by the pass.
type CheckFunc func(p *Pass) ([]core.Finding, error)

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the Pass.
type RuleDef struct {
	ID          string     // Unique identifier, e.g., "TA01"
	Name        string     // Human-readable name, e.g., "Image Alt Text"
	Criterion   string     // WCAG success criterion, e.g., "1.1.1"
	Level       core.Level // Conformance level
	Group       string     // Family, e.g., "text-alternatives"
	Description string     // Human-readable description
	Check       CheckFunc  // The check function
	ConfigKeys  []string   // Configuration keys this rule accepts

	// Documentation fields for richer rule documentation
	Rationale   string
	BadExample  string
	GoodExample string
	Fix         string
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) core.RuleInfo {
	return core.RuleInfo{
		ID:          r.ID(),
		Name:        r.Name(),
		Criterion:   r.Criterion(),
		Level:       r.Level(),
		Group:       r.Group(),
		Description: r.Description(),
		ConfigKeys:  r.ConfigKeys(),
		Rationale:   r.Rationale(),
		BadExample:  r.BadExample(),
		GoodExample: r.GoodExample(),
		Fix:         r.Fix(),
	}
}

// =============================================================================
// Wrapped RuleDef
// =============================================================================

// wrappedRuleDef wraps a RuleDef to implement Rule.
type wrappedRuleDef struct {
	def RuleDef
}

// WrapRuleDef wraps a RuleDef to implement the Rule interface.
func WrapRuleDef(def RuleDef) Rule {
	return &wrappedRuleDef{def: def}
}

// WrapRuleDefs wraps every definition, preserving order.
func WrapRuleDefs(defs ...RuleDef) []Rule {
	out := make([]Rule, len(defs))
	for i, def := range defs {
		out[i] = WrapRuleDef(def)
	}
	return out
}

func (w *wrappedRuleDef) ID() string           { return w.def.ID }
func (w *wrappedRuleDef) Name() string         { return w.def.Name }
func (w *wrappedRuleDef) Criterion() string    { return w.def.Criterion }
func (w *wrappedRuleDef) Level() core.Level    { return w.def.Level }
func (w *wrappedRuleDef) Group() string        { return w.def.Group }
func (w *wrappedRuleDef) Description() string  { return w.def.Description }
func (w *wrappedRuleDef) ConfigKeys() []string { return w.def.ConfigKeys }

// Documentation methods
func (w *wrappedRuleDef) Rationale() string   { return w.def.Rationale }
func (w *wrappedRuleDef) BadExample() string  { return w.def.BadExample }
func (w *wrappedRuleDef) GoodExample() string { return w.def.GoodExample }
func (w *wrappedRuleDef) Fix() string         { return w.def.Fix }

func (w *wrappedRuleDef) Check(p *Pass) ([]core.Finding, error) {
	if w.def.Check == nil {
		return nil, ErrNoCheck
	}
	return w.def.Check(p)
}

// Unwrap returns the underlying RuleDef.
func (w *wrappedRuleDef) Unwrap() RuleDef {
	return w.def
}
