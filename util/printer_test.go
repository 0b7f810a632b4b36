package util

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/boolean-maybe/wikinav/wikinav"
)

func printTestDoc(t *testing.T) *wikinav.Document {
	t.Helper()
	doc, err := wikinav.NewMarkdownParser(wikinav.ParserOptions{Logger: log.New(io.Discard)}).
		Parse([]byte("# Go\n\nA **fast** [language](/wiki/Language).\n"), wikinav.Metadata{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestPrinter_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, PrinterColors{})

	if err := p.Print(printTestDoc(t), 40); err != nil {
		t.Fatalf("Print: %v", err)
	}

	want := "Go\n\nA fast language.\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrinter_Color(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true, PrinterColors{Link: "#00ff00"})

	if err := p.Print(printTestDoc(t), 40); err != nil {
		t.Fatalf("Print: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected ANSI sequences in %q", out)
	}
	for _, word := range []string{"Go", "fast", "language"} {
		if !strings.Contains(out, word) {
			t.Fatalf("output %q lacks %q", out, word)
		}
	}
}

func TestPrinter_ListLinks(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, PrinterColors{})
	p.ListLinks = true

	if err := p.Print(printTestDoc(t), 40); err != nil {
		t.Fatalf("Print: %v", err)
	}

	if !strings.HasSuffix(buf.String(), "\nLinks\n   1  language  /wiki/Language\n") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestPrinter_RenderLineWithoutColorIsLineText(t *testing.T) {
	p := NewPrinter(io.Discard, false, PrinterColors{})
	line := wikinav.Line{Spans: []wikinav.StyledSpan{
		{Text: "bold ", Style: wikinav.StyleBold, Link: wikinav.NoLink},
		{Text: "link", Style: wikinav.StyleLink, Link: 0},
	}}

	if got := p.RenderLine(line); got != "bold link" {
		t.Fatalf("RenderLine = %q", got)
	}
}
