// Package lint provides the rule-evaluation engine for markup accessibility checks.
//
// # Architecture
//
// The package is organized around four pieces:
//
//  1. Rule / RuleDef: a named, criterion-tagged pure check over a dom.Document
//  2. Registry: an immutable, ordered catalog built explicitly from a rule table
//  3. Engine: runs every active rule against one document, isolating failures
//  4. Aggregate: folds raw findings into severity-ordered IssueGroups
//
// Rule implementations live in pkg/lint/rules to keep this package free of
// catalog concerns.
//
// # Building a Registry
//
// Registration is an explicit step; nothing registers itself by being defined:
//
//	reg, err := lint.NewRegistry(
//		lint.WrapRuleDef(rules.ImageAltText),
//		lint.WrapRuleDef(rules.HTMLLang),
//	)
//
// The full catalog is available as rules.Registry().
//
// # Running
//
//	cfg := lint.NewConfig()
//	cfg.Disable("SN02")
//	cfg.SetRuleOptions("VR02", map[string]any{"max_width": 480})
//
//	engine := lint.NewEngine(reg, cfg, lint.WithWorkers(4))
//	result := engine.Run(dom.Parse(markup))
//	groups := lint.Aggregate(result.Findings)
//
// # Creating Custom Rules
//
//	var MyRule = lint.RuleDef{
//		ID:          "XX01",
//		Name:        "My Rule",
//		Criterion:   "1.1.1",
//		Level:       core.LevelA,
//		Group:       "custom",
//		Description: "My custom rule description",
//		Check:       checkMyRule,
//	}
//
//	func checkMyRule(p *lint.Pass) ([]core.Finding, error) {
//		var out []core.Finding
//		for _, n := range p.Doc.FindByTag("blink") {
//			out = append(out, p.Finding(n, "Blinking text", "Remove <blink>"))
//		}
//		return out, nil
//	}
package lint
