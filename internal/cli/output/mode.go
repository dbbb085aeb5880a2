// Package output renders CLI output as styled text, markdown or JSON,
// adapting to whether stdout is a terminal.
package output

import "strings"

// OutputMode selects how commands render their results.
type OutputMode string

// Output modes.
const (
	// ModeAuto picks text on a terminal and markdown otherwise.
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode converts a user-supplied string to an OutputMode. Unknown values
// fall back to ModeAuto.
func Mode(s string) OutputMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "console":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Valid reports whether s names a known mode.
func Valid(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto", "text", "console", "markdown", "md", "json":
		return true
	default:
		return false
	}
}
