package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

var defaultImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".bmp"}

// ImageAltText flags images without alt text or with a file name as alt.
var ImageAltText = lint.RuleDef{
	ID:          "TA01",
	Name:        "Image Alt Text",
	Criterion:   "1.1.1",
	Level:       core.LevelA,
	Group:       "text-alternatives",
	Description: "Images must have an alt attribute with a meaningful description.",
	Check:       checkImageAltText,
	ConfigKeys:  []string{"image_extensions"},

	Rationale: `Screen readers announce the alt text in place of the image. Without an alt
attribute many readers fall back to the file name, which rarely describes the content.
An alt that is itself a file name has the same problem.`,

	BadExample: `<img src="team.jpg">
<img src="team.jpg" alt="team.jpg">`,

	GoodExample: `<img src="team.jpg" alt="The support team at the 2024 offsite">
<img src="divider.png" alt="">`,

	Fix: `Describe the image in alt, or use alt="" for purely decorative images.`,
}

func checkImageAltText(p *lint.Pass) ([]core.Finding, error) {
	exts := lowerAll(p.StringSliceOption("image_extensions", defaultImageExtensions))

	var findings []core.Finding
	for _, img := range p.Doc.FindByTag("img") {
		alt, ok := img.Attr("alt")
		if !ok {
			findings = append(findings, p.Finding(img,
				"Image has no alt attribute",
				`Add an alt attribute with descriptive text, or alt="" for decorative images`))
			continue
		}

		lower := strings.ToLower(alt)
		for _, ext := range exts {
			if ext != "" && strings.HasSuffix(lower, ext) {
				findings = append(findings, p.Finding(img,
					fmt.Sprintf("Alt attribute contains a file name: '%s'", alt),
					"Replace the file name with a meaningful description of the image"))
				break
			}
		}
	}
	return findings, nil
}
