// Package core defines the shared language of the leapa11y system.
//
// This package contains:
//   - Conformance levels (Level) and their ranking
//   - Findings produced by rules (Finding)
//   - Presentation groups derived from findings (IssueGroup, IssueDetail)
//   - Rule metadata for documentation and tooling (RuleInfo)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
