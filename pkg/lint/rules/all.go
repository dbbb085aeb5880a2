// Package rules contains the accessibility rule catalog.
//
// The catalog is an explicit, ordered table; nothing registers itself:
//
//	reg := rules.Registry()
//	res := lint.NewEngine(reg, cfg).Run(doc)
//
// Rule families:
//   - TA (Text alternatives): images and their alt text
//   - MC (Media): audio and moving content
//   - DS (Document structure): title, headings, sections, landmarks
//   - LI (Language and input): page language, input purpose, labels
//   - IC (Interactive): names of controls, links, focus behavior
//   - DB (Dynamic behavior): context changes, shortcuts, motion, timing
//   - VR (Visual rendering): text size, reflow, orientation
//   - SN (Status and navigation): live regions, multiple ways
package rules

import (
	"sync"

	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// All returns the rule definitions in catalog order.
//
// Text alternatives:
//   - TA01: Image Alt Text - Images need meaningful alt text
//
// Media:
//   - MC01: Audio Control - Autoplaying audio needs controls
//   - MC02: Pause, Stop, Hide - Moving content must be stoppable
//
// Structure:
//   - DS01: Page Titled - Pages need a non-empty title
//   - DS02: Info and Relationships - Heading hierarchy
//   - DS03: Section Headings - Sections need a heading or label
//   - DS04: Bypass Blocks - Repeated blocks need a way around them
//
// Language and input:
//   - LI01: Language of Page - html needs a lang attribute
//   - LI02: Identify Input Purpose - Personal fields need autocomplete
//   - LI03: Labels or Instructions - Form fields need labels
//
// Interactive:
//   - IC01: Name, Role, Value - Buttons need an accessible name
//   - IC02: Link Purpose (In Context) - Links need an href and a name
//   - IC03: Focus Order - tabindex must not reorder focus
//   - IC04: Focus Visible - Inline styles must not hide the outline
//
// Dynamic behavior:
//   - DB01: On Input - Changing a value must not change context
//   - DB02: Change on Request - No automatic context changes
//   - DB03: Character Key Shortcuts - Single-key shortcuts need control
//   - DB04: Motion Actuation - Motion events need an alternative
//   - DB05: Timing Adjustable - No timed refreshes
//
// Visual:
//   - VR01: Resize Text - No fixed pixel font sizes
//   - VR02: Reflow - No wide fixed widths
//   - VR03: Orientation - Viewport must not lock orientation
//
// Status and navigation:
//   - SN01: Status Messages - Status text needs a live region
//   - SN02: Multiple Ways - Pages need search, navigation or a sitemap
func All() []lint.RuleDef {
	return []lint.RuleDef{
		ImageAltText,
		AudioControl,
		PauseStopHide,
		PageTitled,
		InfoAndRelationships,
		SectionHeadings,
		BypassBlocks,
		LanguageOfPage,
		InputPurpose,
		LabelsOrInstructions,
		NameRoleValue,
		LinkPurpose,
		FocusOrder,
		FocusVisible,
		OnInput,
		ChangeOnRequest,
		CharacterKeyShortcuts,
		MotionActuation,
		TimingAdjustable,
		ResizeText,
		Reflow,
		Orientation,
		StatusMessages,
		MultipleWays,
	}
}

// NewRegistry builds a fresh registry holding the full catalog.
func NewRegistry() (*lint.Registry, error) {
	return lint.NewRegistry(lint.WrapRuleDefs(All()...)...)
}

// Registry returns the shared default catalog, built on first use.
// It panics only if the static table is malformed.
var Registry = sync.OnceValue(func() *lint.Registry {
	return lint.MustNewRegistry(lint.WrapRuleDefs(All()...)...)
})
