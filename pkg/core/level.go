package core

import "strings"

// =============================================================================
// Level
// =============================================================================

// Level is a WCAG conformance level.
type Level string

// Conformance levels, in increasing order of strictness.
const (
	// LevelA is the minimum conformance level.
	LevelA Level = "A"
	// LevelAA is the level most regulations require.
	LevelAA Level = "AA"
	// LevelAAA is the strictest conformance level.
	LevelAAA Level = "AAA"
)

// Levels lists every valid level from least to most strict.
var Levels = []Level{LevelA, LevelAA, LevelAAA}

// String returns the string representation of the level.
func (l Level) String() string {
	return string(l)
}

// Valid reports whether l is one of the enumerated levels.
func (l Level) Valid() bool {
	switch l {
	case LevelA, LevelAA, LevelAAA:
		return true
	default:
		return false
	}
}

// Rank orders levels for sorting: AAA=3, AA=2, A=1, anything else 0.
func (l Level) Rank() int {
	switch l {
	case LevelAAA:
		return 3
	case LevelAA:
		return 2
	case LevelA:
		return 1
	default:
		return 0
	}
}

// ParseLevel converts a string to a Level value.
// Returns the level and true if valid, or LevelA and false if invalid.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return LevelA, true
	case "AA":
		return LevelAA, true
	case "AAA":
		return LevelAAA, true
	default:
		return LevelA, false
	}
}

// =============================================================================
// RuleInfo
// =============================================================================

// RuleInfo provides metadata about a rule for documentation/tooling.
// This is a DTO (Data Transfer Object) - it carries data without behavior.
type RuleInfo struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Criterion   string   `json:"criterion" yaml:"criterion"`
	Level       Level    `json:"level" yaml:"level"`
	Group       string   `json:"group" yaml:"group"`
	Description string   `json:"description" yaml:"description"`
	ConfigKeys  []string `json:"config_keys,omitempty" yaml:"config_keys,omitempty"`

	// Documentation fields
	Rationale   string `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty" yaml:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty" yaml:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty" yaml:"fix,omitempty"`
}
