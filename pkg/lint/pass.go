package lint

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
)

// maxElementLines is the serialization size above which an element is
// described by its opening tag only.
const maxElementLines = 50

// Pass carries everything one rule needs for one run.
// A Pass is created per rule invocation and is read-only.
type Pass struct {
	Doc     *dom.Document
	Options map[string]any

	rule    Rule
	resolve func(*dom.Document, *dom.Node) int
}

// NewPass creates a pass for running rule against doc under cfg.
func NewPass(rule Rule, doc *dom.Document, cfg *Config) *Pass {
	return &Pass{
		Doc:     doc,
		Options: cfg.GetRuleOptions(rule.ID()),
		rule:    rule,
		resolve: cfg.lineResolver(),
	}
}

// Rule returns the rule being run.
func (p *Pass) Rule() Rule {
	return p.rule
}

// Finding builds a finding for node, resolving its line and descriptor.
func (p *Pass) Finding(node *dom.Node, message, recommendation string) core.Finding {
	return core.Finding{
		RuleID:         p.rule.ID(),
		Name:           p.rule.Name(),
		Criterion:      p.rule.Criterion(),
		Level:          p.rule.Level(),
		Element:        DescribeElement(node),
		Line:           p.resolve(p.Doc, node),
		Message:        message,
		Recommendation: recommendation,
	}
}

// DocumentFinding builds a finding that is not tied to a node, such as a
// missing element.
func (p *Pass) DocumentFinding(element string, line int, message, recommendation string) core.Finding {
	return core.Finding{
		RuleID:         p.rule.ID(),
		Name:           p.rule.Name(),
		Criterion:      p.rule.Criterion(),
		Level:          p.rule.Level(),
		Element:        element,
		Line:           line,
		Message:        message,
		Recommendation: recommendation,
	}
}

// DescribeElement returns the serialized element, or only its opening tag
// followed by "..." when the serialization spans more than 50 lines.
func DescribeElement(node *dom.Node) string {
	if node == nil || !node.IsElement() {
		return "unknown"
	}

	rendered := node.Render()
	if strings.Count(rendered, "\n") <= maxElementLines {
		return rendered
	}

	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(node.Tag())
	for _, a := range node.Attrs() {
		sb.WriteString(" ")
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(a.Val))
		sb.WriteString(`"`)
	}
	sb.WriteString(">...")
	return sb.String()
}
