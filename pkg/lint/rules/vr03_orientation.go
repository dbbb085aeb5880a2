package rules

import (
	"strings"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// Orientation flags a viewport that pins a fixed width.
var Orientation = lint.RuleDef{
	ID:          "VR03",
	Name:        "Orientation",
	Criterion:   "1.3.4",
	Level:       core.LevelAA,
	Group:       "visual",
	Description: "The viewport must not lock the page to one orientation.",
	Check:       checkOrientation,

	Rationale: `Devices mounted on wheelchairs are often fixed in one orientation. A fixed
viewport width can make the page unusable in the other.`,

	BadExample: `<meta name="viewport" content="width=1024">`,

	GoodExample: `<meta name="viewport" content="width=device-width, initial-scale=1">`,
}

func checkOrientation(p *lint.Pass) ([]core.Finding, error) {
	viewport := p.Doc.Find(dom.And(dom.Tag("meta"), dom.AttrEquals("name", "viewport")))
	if viewport == nil {
		return nil, nil
	}

	content := strings.ToLower(viewport.AttrOr("content", ""))
	if !strings.Contains(content, "width") ||
		strings.Contains(content, "height") ||
		strings.Contains(content, "orientation") ||
		strings.Contains(content, "device-width") {
		return nil, nil
	}

	return []core.Finding{p.Finding(viewport,
		"Meta viewport may restrict screen orientation",
		`Make content work in portrait and landscape; use content="width=device-width, initial-scale=1"`)}, nil
}
