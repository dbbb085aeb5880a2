// Package dom provides the read-only document model rules query.
//
// A Document wraps a tree produced by golang.org/x/net/html, which implements
// the HTML5 parsing algorithm and recovers from malformed markup the way
// browsers do. Parsing never fails: the worst case is an empty document.
//
// # Querying
//
//	doc := dom.Parse(raw)
//	for _, img := range doc.FindByTag("img") {
//		if !img.HasAttr("alt") { ... }
//	}
//	doc.FindAll(dom.And(dom.Tag("meta"), dom.AttrEquals("name", "viewport")))
//
// # Line numbers
//
// The parser does not track source positions. ResolveLine recovers a
// best-effort 1-based line by searching the raw markup for distinctive
// attribute values or text of the element. WithSourcePositions enables a
// tokenizer pre-pass that attaches exact lines where the mapping between
// source tags and tree elements is unambiguous.
//
// A Document and its Nodes are immutable after Parse and safe for concurrent
// reads.
package dom
