package lint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapa11y/pkg/core"
)

// Registry errors.
var (
	ErrDuplicateRule = errors.New("duplicate rule id")
	ErrInvalidRule   = errors.New("invalid rule metadata")
	ErrNoCheck       = errors.New("rule has no check function")
)

// Registry is an immutable, ordered catalog of rules.
// It is built once with NewRegistry and never mutated afterwards, so it is
// safe for concurrent use without locking.
type Registry struct {
	rules []Rule
	byID  map[string]Rule
}

// NewRegistry builds a registry from an explicit list of rules.
// Order is preserved. Duplicate IDs and invalid metadata are rejected.
func NewRegistry(rules ...Rule) (*Registry, error) {
	reg := &Registry{
		rules: make([]Rule, 0, len(rules)),
		byID:  make(map[string]Rule, len(rules)),
	}

	for _, r := range rules {
		if err := validateRule(r); err != nil {
			return nil, err
		}
		key := strings.ToUpper(r.ID())
		if _, exists := reg.byID[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, r.ID())
		}
		reg.byID[key] = r
		reg.rules = append(reg.rules, r)
	}

	return reg, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
// Use it only for static rule tables covered by tests.
func MustNewRegistry(rules ...Rule) *Registry {
	reg, err := NewRegistry(rules...)
	if err != nil {
		panic(err)
	}
	return reg
}

func validateRule(r Rule) error {
	if r == nil {
		return fmt.Errorf("%w: nil rule", ErrInvalidRule)
	}
	if strings.TrimSpace(r.ID()) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRule)
	}
	if strings.TrimSpace(r.Name()) == "" {
		return fmt.Errorf("%w: %s has no name", ErrInvalidRule, r.ID())
	}
	if strings.TrimSpace(r.Criterion()) == "" {
		return fmt.Errorf("%w: %s has no criterion", ErrInvalidRule, r.ID())
	}
	if !r.Level().Valid() {
		return fmt.Errorf("%w: %s has level %q", ErrInvalidRule, r.ID(), r.Level())
	}
	if w, ok := r.(interface{ Unwrap() RuleDef }); ok && w.Unwrap().Check == nil {
		return fmt.Errorf("%w: %s", ErrNoCheck, r.ID())
	}
	return nil
}

// All returns the rules in registration order.
func (r *Registry) All() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// ByID returns a rule by its ID.
func (r *Registry) ByID(id string) (Rule, bool) {
	rule, ok := r.byID[strings.ToUpper(strings.TrimSpace(id))]
	return rule, ok
}

// ByGroup returns all rules in a specific group, in registration order.
func (r *Registry) ByGroup(group string) []Rule {
	var out []Rule
	for _, rule := range r.rules {
		if rule.Group() == group {
			out = append(out, rule)
		}
	}
	return out
}

// Groups returns the distinct groups in order of first appearance.
func (r *Registry) Groups() []string {
	seen := make(map[string]bool)
	var out []string
	for _, rule := range r.rules {
		if !seen[rule.Group()] {
			seen[rule.Group()] = true
			out = append(out, rule.Group())
		}
	}
	return out
}

// Len returns the number of rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// Infos returns documentation metadata for every rule.
func (r *Registry) Infos() []core.RuleInfo {
	out := make([]core.RuleInfo, len(r.rules))
	for i, rule := range r.rules {
		out[i] = GetRuleInfo(rule)
	}
	return out
}
