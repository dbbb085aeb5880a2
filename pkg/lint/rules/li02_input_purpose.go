package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

var defaultPersonalFields = []string{
	"name", "fname", "firstname", "first-name", "first_name",
	"lname", "lastname", "last-name", "last_name",
	"email", "e-mail", "mail",
	"phone", "tel", "telephone", "mobile",
	"address", "street", "city", "country", "postal", "zip", "zipcode",
	"cc-number", "card-number", "cardnumber",
	"cc-exp", "expiry", "exp-date",
	"cc-csc", "cvv", "cvc", "security-code",
	"username", "login",
	"password", "pass", "pwd",
	"organization", "company",
}

// textEntryTypes are the input types that collect free-form personal data.
var textEntryTypes = map[string]bool{
	"text": true, "email": true, "tel": true, "url": true, "password": true,
}

// InputPurpose flags personal data fields without autocomplete.
var InputPurpose = lint.RuleDef{
	ID:          "LI02",
	Name:        "Identify Input Purpose",
	Criterion:   "1.3.5",
	Level:       core.LevelAA,
	Group:       "language",
	Description: "Inputs collecting personal data must declare autocomplete.",
	Check:       checkInputPurpose,
	ConfigKeys:  []string{"personal_fields"},

	Rationale: `autocomplete lets browsers fill known values and lets assistive tools show
familiar icons, which helps users with motor and cognitive impairments.`,

	BadExample: `<input type="email" name="email">`,

	GoodExample: `<input type="email" name="email" autocomplete="email">`,

	Fix: `Add an autocomplete token that matches the field, e.g. autocomplete="email".`,
}

func checkInputPurpose(p *lint.Pass) ([]core.Finding, error) {
	fields := lowerAll(p.StringSliceOption("personal_fields", defaultPersonalFields))

	var findings []core.Finding
	for _, input := range p.Doc.FindByTag("input") {
		typ := strings.ToLower(strings.TrimSpace(input.AttrOr("type", "text")))
		if !textEntryTypes[typ] {
			continue
		}

		name := strings.ToLower(input.AttrOr("name", ""))
		id := strings.ToLower(input.AttrOr("id", ""))
		if !containsAny(name, fields) && !containsAny(id, fields) {
			continue
		}
		if input.HasAttr("autocomplete") {
			continue
		}

		ident := name
		if ident == "" {
			ident = id
		}
		if ident == "" {
			ident = "unnamed"
		}
		findings = append(findings, p.Finding(input,
			fmt.Sprintf(`Personal data field "%s" has no autocomplete attribute`, ident),
			`Add an autocomplete attribute with the matching token (e.g. autocomplete="email")`))
	}
	return findings, nil
}
