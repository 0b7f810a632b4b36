package wikinav

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func plain(text string) Span {
	return Span{Text: text, Link: NoLink}
}

func linked(text string, id int) Span {
	return Span{Text: text, Style: StyleLink, Link: id}
}

func paragraph(spans ...Span) Element {
	return Element{Kind: ElementParagraph, Spans: spans}
}

func heading(level int, text string) Element {
	return Element{Kind: ElementHeading, Level: level, Spans: []Span{{Text: text, Style: StyleHeading | StyleBold, Link: NoLink}}}
}

// docWithLinks builds a document whose link table matches the link spans of elements.
func docWithLinks(elements ...Element) *Document {
	doc := &Document{Elements: elements}
	seen := map[int]bool{}
	for _, e := range elements {
		for _, s := range e.Spans {
			if s.Link >= 0 && !seen[s.Link] {
				seen[s.Link] = true
				doc.Links = append(doc.Links, Link{ID: s.Link, Target: "/wiki/" + s.Text, Text: s.Text})
			}
		}
	}
	return doc
}

func lineTexts(l *Layout) []string {
	out := make([]string, len(l.Lines))
	for i, line := range l.Lines {
		out[i] = line.Text()
	}
	return out
}

func mustParseHTML(t *testing.T, src string, opts ParserOptions) *Document {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	doc, err := NewHTMLParser(opts).Parse([]byte(src), Metadata{})
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func mustParseMarkdown(t *testing.T, src string, opts ParserOptions) *Document {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	doc, err := NewMarkdownParser(opts).Parse([]byte(src), Metadata{})
	if err != nil {
		t.Fatalf("parse markdown: %v", err)
	}
	return doc
}
