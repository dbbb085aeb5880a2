package rules

import (
	"strings"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

// LanguageOfPage flags an html element without a usable lang attribute.
var LanguageOfPage = lint.RuleDef{
	ID:          "LI01",
	Name:        "Language of Page",
	Criterion:   "3.1.1",
	Level:       core.LevelA,
	Group:       "language",
	Description: "The html element must declare the page language.",
	Check:       checkLanguageOfPage,

	Rationale: `Screen readers pick pronunciation rules from lang. Without it text is read
with the user's default voice, which garbles other languages.`,

	BadExample: `<html>`,

	GoodExample: `<html lang="en">`,
}

func checkLanguageOfPage(p *lint.Pass) ([]core.Finding, error) {
	// The parser always produces an html element, even for fragments.
	root := p.Doc.Find(dom.Tag("html"))
	if root == nil {
		return []core.Finding{p.DocumentFinding("html", 1,
			"Document has no <html> element",
			"Make sure the page has a proper <html> root element")}, nil
	}

	lang, ok := root.Attr("lang")
	switch {
	case !ok:
		return []core.Finding{p.Finding(root,
			"The <html> element has no lang attribute",
			`Add a lang attribute with the page language code, e.g. lang="en"`)}, nil
	case strings.TrimSpace(lang) == "":
		return []core.Finding{p.Finding(root,
			"The lang attribute of <html> is empty",
			"Set lang to a valid language code")}, nil
	}
	return nil, nil
}
