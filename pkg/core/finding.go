package core

// Finding is one concrete rule violation tied to a specific element.
// Findings are values; nothing mutates them after a rule returns.
type Finding struct {
	RuleID         string `json:"rule_id"`
	Name           string `json:"name"`
	Criterion      string `json:"criterion"`
	Level          Level  `json:"level"`
	Element        string `json:"element"`
	Line           int    `json:"line"` // 1-based; 0 when unknown
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
}

// Detail strips the rule identity from a finding, leaving the per-instance part.
func (f Finding) Detail() IssueDetail {
	return IssueDetail{
		Element:        f.Element,
		Line:           f.Line,
		Message:        f.Message,
		Recommendation: f.Recommendation,
	}
}

// GroupKey identifies the group a finding folds into.
type GroupKey struct {
	Name      string
	Criterion string
	Level     Level
}

// Key returns the grouping key of the finding.
func (f Finding) Key() GroupKey {
	return GroupKey{Name: f.Name, Criterion: f.Criterion, Level: f.Level}
}

// IssueDetail is a single instance inside an IssueGroup.
type IssueDetail struct {
	Element        string `json:"element" yaml:"element"`
	Line           int    `json:"line" yaml:"line"`
	Message        string `json:"message" yaml:"message"`
	Recommendation string `json:"recommendation" yaml:"recommendation"`
}

// IssueGroup folds findings sharing (name, criterion, level).
// It is derived on demand and never persisted as-is.
type IssueGroup struct {
	Name      string        `json:"name"`
	Criterion string        `json:"criterion"`
	Level     Level         `json:"level"`
	Count     int           `json:"count"`
	Issues    []IssueDetail `json:"issues"`
}
