package wikinav

import (
	"errors"
	"strings"
	"testing"
)

const articleHTML = `<!DOCTYPE html>
<html><head><title>ignored</title><style>p { color: red }</style></head>
<body>
<div class="mw-content-ltr mw-parser-output" lang="en">
<p><b>Go</b> is a <a href="./Programming_language" title="Programming language">programming language</a>
designed at <a href="./Google">Google</a>.<sup class="reference"><a href="#cite_note-1">[1]</a></sup></p>
<div class="mw-heading mw-heading2"><h2 id="History">History</h2><span class="mw-editsection">[<a href="/w/index.php?action=edit">edit</a>]</span></div>
<p>Work started in <i>2007</i> by <a href="./Robert_Griesemer">Robert Griesemer</a>,
<a href="./Rob_Pike">Rob Pike</a> and <a href="./Ken_Thompson">Ken Thompson</a>.</p>
<div class="mw-heading mw-heading3"><h3 id="Releases">Releases</h3></div>
<ul>
<li>Version <code>1.0</code> in 2012</li>
<li>Generics in <a href="./Go_1.18">1.18</a>
<ul><li>Type parameters</li></ul>
</li>
</ul>
<script>var x = 1;</script>
<hr>
<div class="mw-heading mw-heading2"><h2 id="See_also">See also</h2></div>
<p><a href="./Rust_(programming_language)">Rust</a></p>
<div class="navbox"><a href="./Navbox_link">hidden</a></div>
</div>
</body></html>`

func texts(doc *Document) []string {
	out := make([]string, len(doc.Elements))
	for i, e := range doc.Elements {
		out[i] = collapseSpace(e.Text())
	}
	return out
}

func TestHTMLParser_Elements(t *testing.T) {
	doc := mustParseHTML(t, articleHTML, ParserOptions{})

	want := []struct {
		kind  ElementKind
		text  string
		depth int
	}{
		{ElementParagraph, "Go is a programming language designed at Google.", 0},
		{ElementHeading, "History", 0},
		{ElementParagraph, "Work started in 2007 by Robert Griesemer, Rob Pike and Ken Thompson.", 0},
		{ElementHeading, "Releases", 0},
		{ElementListItem, "Version 1.0 in 2012", 0},
		{ElementListItem, "Generics in 1.18", 0},
		{ElementListItem, "Type parameters", 1},
		{ElementDivider, "", 0},
		{ElementHeading, "See also", 0},
		{ElementLink, "Rust", 0},
	}
	got := texts(doc)
	if len(doc.Elements) != len(want) {
		t.Fatalf("elements = %q, want %d elements", got, len(want))
	}
	for i, w := range want {
		e := doc.Elements[i]
		if e.Kind != w.kind || got[i] != w.text || e.Depth != w.depth {
			t.Fatalf("element %d = %s %q depth %d, want %s %q depth %d",
				i, e.Kind, got[i], e.Depth, w.kind, w.text, w.depth)
		}
	}
	if doc.Elements[1].Level != 2 || doc.Elements[3].Level != 3 {
		t.Fatalf("heading levels = %d, %d", doc.Elements[1].Level, doc.Elements[3].Level)
	}
}

func TestHTMLParser_LinkTable(t *testing.T) {
	doc := mustParseHTML(t, articleHTML, ParserOptions{})

	wantTargets := []string{
		"/wiki/Programming_language",
		"/wiki/Google",
		"/wiki/Robert_Griesemer",
		"/wiki/Rob_Pike",
		"/wiki/Ken_Thompson",
		"/wiki/Go_1.18",
		"/wiki/Rust_(programming_language)",
	}
	if len(doc.Links) != len(wantTargets) {
		t.Fatalf("links = %+v, want %d links", doc.Links, len(wantTargets))
	}
	for i, target := range wantTargets {
		if doc.Links[i].ID != i || doc.Links[i].Target != target {
			t.Fatalf("link %d = %+v, want target %q", i, doc.Links[i], target)
		}
	}
	if doc.Links[0].Text != "programming language" {
		t.Fatalf("link text = %q", doc.Links[0].Text)
	}
	if doc.LinkSpanCount() != len(doc.Links) {
		t.Fatalf("LinkSpanCount = %d, want %d", doc.LinkSpanCount(), len(doc.Links))
	}
}

func TestHTMLParser_InlineStyles(t *testing.T) {
	doc := mustParseHTML(t, `<p><b>bold</b> <i>it</i> <code>x</code> <a href="./A"><b>both</b></a></p>`, ParserOptions{})

	styles := map[string]Style{}
	for _, s := range doc.Elements[0].Spans {
		if strings.TrimSpace(s.Text) != "" {
			styles[s.Text] = s.Style
		}
	}
	if !styles["bold"].Has(StyleBold) || !styles["it"].Has(StyleItalic) || !styles["x"].Has(StyleCode) {
		t.Fatalf("styles = %v", styles)
	}
	if !styles["both"].Has(StyleBold | StyleLink) {
		t.Fatalf("linked bold style = %b", styles["both"])
	}
}

func TestHTMLParser_TOC(t *testing.T) {
	doc := mustParseHTML(t, `<h1>Title</h1><h2>A</h2><p>x</p><h3>A1</h3><h2>B</h2>`, ParserOptions{TOC: true})

	if doc.Title != "Title" {
		t.Fatalf("title = %q, want first h1", doc.Title)
	}
	toc := doc.TOC
	if toc.Len() != 3 {
		t.Fatalf("toc entries = %+v, want 3 (h1 excluded)", toc)
	}
	if roots := toc.Roots(); len(roots) != 2 || roots[0] != 0 || roots[1] != 2 {
		t.Fatalf("roots = %v, want [0 2]", roots)
	}
	a1 := toc.Entries[1]
	if a1.Title != "A1" || a1.Parent != 0 || len(toc.Entries[0].Children) != 1 {
		t.Fatalf("nesting = %+v", toc.Entries)
	}
	for _, e := range toc.Entries {
		if doc.Elements[e.Element].Kind != ElementHeading || doc.Elements[e.Element].Text() != e.Title {
			t.Fatalf("entry %+v does not point at its heading", e)
		}
	}
}

func TestHTMLParser_MinHeadingLevel(t *testing.T) {
	doc := mustParseHTML(t, `<h1>Title</h1><h2>A</h2><h3>A1</h3>`, ParserOptions{TOC: true, MinHeadingLevel: 3})
	if doc.TOC.Len() != 1 || doc.TOC.Entries[0].Title != "A1" {
		t.Fatalf("toc = %+v, want only A1", doc.TOC)
	}

	doc = mustParseHTML(t, `<h2>A</h2>`, ParserOptions{})
	if doc.TOC != nil {
		t.Fatal("TOC should be nil when disabled")
	}
}

func TestHTMLParser_FragmentAndEmptyLinksBecomeText(t *testing.T) {
	doc := mustParseHTML(t, `<p>See <a href="#Notes">notes</a> and <a href="">here</a>.</p>`, ParserOptions{})

	if len(doc.Links) != 0 {
		t.Fatalf("links = %+v, want none", doc.Links)
	}
	if got := texts(doc)[0]; got != "See notes and here." {
		t.Fatalf("text = %q", got)
	}
	if len(doc.Warnings) != 2 {
		t.Fatalf("warnings = %q, want 2", doc.Warnings)
	}
}

func TestHTMLParser_DropsLinksWithoutText(t *testing.T) {
	doc := mustParseHTML(t, `<p>x <a href="./Empty"></a> <a href="./B">b</a></p>`, ParserOptions{})

	if len(doc.Links) != 1 || doc.Links[0].ID != 0 || doc.Links[0].Target != "/wiki/B" {
		t.Fatalf("links = %+v, want only /wiki/B with id 0", doc.Links)
	}
	if len(doc.Warnings) != 1 {
		t.Fatalf("warnings = %q", doc.Warnings)
	}
}

func TestHTMLParser_UnknownElementsWarnOnce(t *testing.T) {
	doc := mustParseHTML(t, `<table><tr><td>one</td></tr></table><table><tr><td>two</td></tr></table>`, ParserOptions{})

	got := texts(doc)
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("elements = %q", got)
	}
	if len(doc.Warnings) != 1 || !strings.Contains(doc.Warnings[0], "table") {
		t.Fatalf("warnings = %q, want one table warning", doc.Warnings)
	}
}

func TestHTMLParser_PreIsCode(t *testing.T) {
	doc := mustParseHTML(t, "<pre>go run .</pre>", ParserOptions{})

	for _, s := range doc.Elements[0].Spans {
		if !s.Style.Has(StyleCode) {
			t.Fatalf("pre span %q not code styled", s.Text)
		}
	}
}

func TestHTMLParser_MetadataTitleWins(t *testing.T) {
	doc, err := NewHTMLParser(ParserOptions{Logger: quietLogger()}).Parse(
		[]byte("<h1>Other</h1><p>x</p>"), Metadata{Title: "Go", PageID: 25039021})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Title != "Go" || doc.Meta.PageID != 25039021 {
		t.Fatalf("title = %q, meta = %+v", doc.Title, doc.Meta)
	}
}

func TestHTMLParser_Errors(t *testing.T) {
	p := NewHTMLParser(ParserOptions{Logger: quietLogger()})

	tests := []struct {
		name string
		raw  []byte
		want error
	}{
		{name: "empty", raw: nil, want: ErrEmptyDocument},
		{name: "whitespace", raw: []byte(" \n\t "), want: ErrEmptyDocument},
		{name: "invalid utf-8", raw: []byte{0xff, 0xfe, 'a'}, want: ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := p.Parse(tt.raw, Metadata{})
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if doc != nil {
				t.Fatal("document should be nil on error")
			}
		})
	}
}

func TestParserFor(t *testing.T) {
	if _, ok := ParserFor(FormatHTML, ParserOptions{}).(*HTMLParser); !ok {
		t.Fatal("FormatHTML should select HTMLParser")
	}
	if _, ok := ParserFor(FormatMarkdown, ParserOptions{}).(*MarkdownParser); !ok {
		t.Fatal("FormatMarkdown should select MarkdownParser")
	}
}
