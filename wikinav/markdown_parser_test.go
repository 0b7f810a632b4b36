package wikinav

import (
	"errors"
	"testing"
)

const articleMarkdown = "# Go\n" +
	"\n" +
	"Go is *statically* typed and **compiled**, see [the tour](/wiki/A_Tour_of_Go) and `go doc`.\n" +
	"\n" +
	"## Tooling\n" +
	"\n" +
	"- build\n" +
	"- test\n" +
	"  - bench\n" +
	"\n" +
	"---\n" +
	"\n" +
	"```\n" +
	"go build ./...\n" +
	"```\n" +
	"\n" +
	"> quoted <https://go.dev>\n"

func TestMarkdownParser_Elements(t *testing.T) {
	doc := mustParseMarkdown(t, articleMarkdown, ParserOptions{})

	want := []struct {
		kind  ElementKind
		text  string
		depth int
	}{
		{ElementHeading, "Go", 0},
		{ElementParagraph, "Go is statically typed and compiled, see the tour and go doc.", 0},
		{ElementHeading, "Tooling", 0},
		{ElementListItem, "build", 0},
		{ElementListItem, "test", 0},
		{ElementListItem, "bench", 1},
		{ElementDivider, "", 0},
		{ElementParagraph, "go build ./...", 0},
		{ElementParagraph, "quoted https://go.dev", 0},
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
	if doc.Title != "Go" {
		t.Fatalf("title = %q, want first heading", doc.Title)
	}
}

func TestMarkdownParser_LinksAndStyles(t *testing.T) {
	doc := mustParseMarkdown(t, articleMarkdown, ParserOptions{})

	if len(doc.Links) != 2 {
		t.Fatalf("links = %+v, want 2", doc.Links)
	}
	if l := doc.Links[0]; l.Target != "/wiki/A_Tour_of_Go" || l.Text != "the tour" {
		t.Fatalf("link 0 = %+v", l)
	}
	if l := doc.Links[1]; l.Target != "https://go.dev" || l.Text != "https://go.dev" {
		t.Fatalf("autolink = %+v", l)
	}

	styles := map[string]Style{}
	for _, s := range doc.Elements[1].Spans {
		styles[s.Text] = s.Style
	}
	if !styles["statically"].Has(StyleItalic) || !styles["compiled"].Has(StyleBold) || !styles["go doc"].Has(StyleCode) {
		t.Fatalf("styles = %v", styles)
	}
	if !styles["the tour"].Has(StyleLink) {
		t.Fatalf("link span style = %b", styles["the tour"])
	}
	for _, s := range doc.Elements[7].Spans {
		if s.Text != " " && !s.Style.Has(StyleCode) {
			t.Fatalf("code block span %q not code styled", s.Text)
		}
	}
}

func TestMarkdownParser_TOCDefaultsToLevelOne(t *testing.T) {
	doc := mustParseMarkdown(t, articleMarkdown, ParserOptions{TOC: true})

	if doc.TOC.Len() != 2 {
		t.Fatalf("toc = %+v, want 2 entries", doc.TOC)
	}
	if doc.TOC.Entries[1].Parent != 0 || doc.TOC.Entries[1].Title != "Tooling" {
		t.Fatalf("toc entries = %+v", doc.TOC.Entries)
	}
}

func TestMarkdownParser_StandaloneLink(t *testing.T) {
	doc := mustParseMarkdown(t, "[Rust](/wiki/Rust)\n", ParserOptions{})

	if len(doc.Elements) != 1 || doc.Elements[0].Kind != ElementLink {
		t.Fatalf("elements = %+v, want one link element", doc.Elements)
	}
}

func TestMarkdownParser_EmptyTargetIsText(t *testing.T) {
	doc := mustParseMarkdown(t, "see [nothing]() here\n", ParserOptions{})

	if len(doc.Links) != 0 || len(doc.Warnings) != 1 {
		t.Fatalf("links = %+v, warnings = %q", doc.Links, doc.Warnings)
	}
	if got := texts(doc)[0]; got != "see nothing here" {
		t.Fatalf("text = %q", got)
	}
}

func TestMarkdownParser_RawHTMLWarnsOnce(t *testing.T) {
	doc := mustParseMarkdown(t, "a <span>b</span> <em>c</em>\n", ParserOptions{})

	if len(doc.Warnings) != 1 {
		t.Fatalf("warnings = %q, want one", doc.Warnings)
	}
	if got := texts(doc)[0]; got != "a b c" {
		t.Fatalf("text = %q", got)
	}
}

func TestMarkdownParser_Errors(t *testing.T) {
	p := NewMarkdownParser(ParserOptions{Logger: quietLogger()})

	if _, err := p.Parse([]byte(""), Metadata{}); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("empty: err = %v", err)
	}
	if _, err := p.Parse([]byte("\n\n  \n"), Metadata{}); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("whitespace: err = %v", err)
	}
	if _, err := p.Parse([]byte{'#', ' ', 0xc3}, Metadata{}); !errors.Is(err, ErrMalformed) {
		t.Fatalf("invalid utf-8: err = %v", err)
	}
}
