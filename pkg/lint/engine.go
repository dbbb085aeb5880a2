package lint

import (
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
)

// RuleFailure records a rule whose check failed or panicked.
type RuleFailure struct {
	RuleID string `json:"rule_id"`
	Name   string `json:"name"`
	Err    error  `json:"-"`
}

// Error implements error.
func (f RuleFailure) Error() string {
	return fmt.Sprintf("rule %s (%s): %v", f.RuleID, f.Name, f.Err)
}

// Unwrap returns the underlying failure.
func (f RuleFailure) Unwrap() error {
	return f.Err
}

// Reason returns the failure message without the rule prefix.
func (f RuleFailure) Reason() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// Result is the outcome of one engine run.
type Result struct {
	Findings []core.Finding
	Failures []RuleFailure
}

// Engine runs registry rules against documents.
type Engine struct {
	registry *Registry
	config   *Config
	workers  int
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithWorkers runs up to n rules concurrently. Values below 2 run rules
// sequentially. Output is identical either way.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithLogger sets the logger used for rule failures.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine over reg with optional configuration.
func NewEngine(reg *Registry, config *Config, opts ...EngineOption) *Engine {
	if config == nil {
		config = NewConfig()
	}
	e := &Engine{
		registry: reg,
		config:   config,
		workers:  1,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ActiveRules returns the rules that will run under the engine's config.
func (e *Engine) ActiveRules() []Rule {
	if e.registry == nil {
		return nil
	}
	var active []Rule
	for _, rule := range e.registry.All() {
		if e.config.IsDisabled(rule.ID()) || !e.config.Allows(rule.Level()) {
			continue
		}
		active = append(active, rule)
	}
	return active
}

// ruleOutcome is one rule's slot in a run.
type ruleOutcome struct {
	findings []core.Finding
	failure  *RuleFailure
}

// Run invokes every active rule against doc. A failing rule is logged and
// recorded in Result.Failures; it never aborts the run or affects other
// rules. Findings keep registry order, then each rule's own order.
func (e *Engine) Run(doc *dom.Document) Result {
	rules := e.ActiveRules()
	slots := make([]ruleOutcome, len(rules))

	if e.workers < 2 {
		for i, rule := range rules {
			slots[i] = e.runRule(rule, doc)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(e.workers)
		for i, rule := range rules {
			g.Go(func() error {
				slots[i] = e.runRule(rule, doc)
				return nil
			})
		}
		_ = g.Wait()
	}

	var result Result
	for _, slot := range slots {
		if slot.failure != nil {
			result.Failures = append(result.Failures, *slot.failure)
			continue
		}
		result.Findings = append(result.Findings, slot.findings...)
	}
	return result
}

func (e *Engine) runRule(rule Rule, doc *dom.Document) (out ruleOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = e.fail(rule, fmt.Errorf("panic: %v", r))
		}
	}()

	findings, err := rule.Check(NewPass(rule, doc, e.config))
	if err != nil {
		return e.fail(rule, err)
	}
	return ruleOutcome{findings: findings}
}

func (e *Engine) fail(rule Rule, err error) ruleOutcome {
	e.logger.Warn("rule execution failed",
		slog.String("rule", rule.ID()),
		slog.String("name", rule.Name()),
		slog.Any("error", err),
	)
	return ruleOutcome{failure: &RuleFailure{RuleID: rule.ID(), Name: rule.Name(), Err: err}}
}
