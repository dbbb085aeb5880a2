package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// attachSourceLines records the line of every start tag seen by the
// tokenizer and copies it onto tree elements of the same tag, matched by
// occurrence index. A tag whose counts differ between tokenizer and tree
// (implied or reconstructed elements) is left untracked.
func attachSourceLines(doc *Document) {
	tokenLines := make(map[string][]int)

	z := html.NewTokenizer(strings.NewReader(doc.raw))
	line := 1
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		newlines := bytes.Count(z.Raw(), []byte{'\n'})
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			name, _ := z.TagName()
			tag := string(name)
			tokenLines[tag] = append(tokenLines[tag], line)
		}
		line += newlines
	}

	treeElems := make(map[string][]*Node)
	for _, el := range doc.elements {
		treeElems[el.Tag()] = append(treeElems[el.Tag()], el)
	}

	for tag, elems := range treeElems {
		lines := tokenLines[tag]
		if len(lines) != len(elems) {
			continue
		}
		for i, el := range elems {
			el.line = lines[i]
		}
	}
}
