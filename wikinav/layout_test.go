package wikinav

import (
	"reflect"
	"strings"
	"testing"
)

func TestNewLayout_WrapsWords(t *testing.T) {
	doc := docWithLinks(paragraph(plain("The quick brown fox")))

	l := NewLayout(doc, 10)

	got := lineTexts(l)
	want := []string{"The quick", "brown fox"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i, line := range l.Lines {
		if line.Element != 0 {
			t.Fatalf("line %d element = %d, want 0", i, line.Element)
		}
	}
}

func TestNewLayout_CollapsesWhitespace(t *testing.T) {
	doc := docWithLinks(paragraph(plain("  a \n\t b  ")))

	got := lineTexts(NewLayout(doc, 20))
	if len(got) != 1 || got[0] != "a b" {
		t.Fatalf("lines = %q, want [\"a b\"]", got)
	}
}

func TestNewLayout_SeparatorBetweenElements(t *testing.T) {
	doc := docWithLinks(heading(2, "Intro"), paragraph(plain("one")), paragraph(plain("two")))

	l := NewLayout(doc, 20)

	got := lineTexts(l)
	want := []string{"Intro", "", "one", "", "two"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	separators := 0
	for _, line := range l.Lines {
		if line.Element == SeparatorElement {
			separators++
			if len(line.Spans) != 0 {
				t.Fatalf("separator line has spans: %+v", line.Spans)
			}
		}
	}
	if separators != len(doc.Elements)-1 {
		t.Fatalf("separators = %d, want %d", separators, len(doc.Elements)-1)
	}
}

func TestNewLayout_HeadingStyle(t *testing.T) {
	doc := docWithLinks(Element{Kind: ElementHeading, Level: 3, Spans: []Span{plain("Plain heading")}})

	l := NewLayout(doc, 40)

	for _, s := range l.Lines[0].Spans {
		if !s.Style.Has(StyleHeading | StyleBold) {
			t.Fatalf("heading span %q style = %b, want heading|bold", s.Text, s.Style)
		}
	}
}

func TestNewLayout_InlineLinkOccurrence(t *testing.T) {
	doc := docWithLinks(paragraph(plain("see "), linked("Go lang", 0), plain(" now")))

	l := NewLayout(doc, 80)

	if got := lineTexts(l); len(got) != 1 || got[0] != "see Go lang now" {
		t.Fatalf("lines = %q", got)
	}
	if len(l.Links) != 1 {
		t.Fatalf("occurrences = %d, want 1", len(l.Links))
	}
	if occ := l.Links[0]; occ.ID != 0 || occ.X != 4 || occ.Y != 0 {
		t.Fatalf("occurrence = %+v, want {ID:0 X:4 Y:0}", occ)
	}

	y, start, end, ok := l.LinkExtent(0)
	if !ok || y != 0 || start != 4 || end != 11 {
		t.Fatalf("LinkExtent = (%d,%d,%d,%v), want (0,4,11,true)", y, start, end, ok)
	}
}

func TestNewLayout_LinkExtentSpansMixedStyles(t *testing.T) {
	doc := docWithLinks(paragraph(
		plain("see "),
		linked("foo", 0),
		Span{Text: " bar", Style: StyleLink | StyleBold, Link: 0},
		Span{Text: " baz", Style: StyleLink, Link: 0},
		plain(" now"),
	))

	l := NewLayout(doc, 80)

	if got := lineTexts(l); len(got) != 1 || got[0] != "see foo bar baz now" {
		t.Fatalf("lines = %q", got)
	}
	y, start, end, ok := l.LinkExtent(0)
	if !ok || y != 0 || start != 4 || end != 15 {
		t.Fatalf("LinkExtent = (%d,%d,%d,%v), want (0,4,15,true)", y, start, end, ok)
	}
}

func TestNewLayout_LinkWrappingKeepsOneOccurrence(t *testing.T) {
	doc := docWithLinks(paragraph(plain("aaaa "), linked("bb cc", 0)))

	l := NewLayout(doc, 8)

	got := lineTexts(l)
	want := []string{"aaaa bb", "cc"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	if len(l.Links) != 1 {
		t.Fatalf("occurrences = %d, want 1", len(l.Links))
	}
	y, start, end, ok := l.LinkExtent(0)
	if !ok || y != 0 || start != 5 || end != 7 {
		t.Fatalf("LinkExtent = (%d,%d,%d,%v), want (0,5,7,true)", y, start, end, ok)
	}
	if _, _, _, ok := l.LinkExtent(9); ok {
		t.Fatal("LinkExtent of unknown id should fail")
	}
}

func TestNewLayout_ZeroWidthPutsWordsOnOwnLines(t *testing.T) {
	doc := docWithLinks(paragraph(plain("a b "), linked("c", 0)))

	for _, width := range []int{0, -4} {
		l := NewLayout(doc, width)
		got := lineTexts(l)
		want := []string{"a", "b", "c"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("width %d: lines = %q, want %q", width, got, want)
		}
		if len(l.Links) != 1 || l.Links[0].Y != 2 {
			t.Fatalf("width %d: occurrences = %+v", width, l.Links)
		}
	}
}

func TestNewLayout_BreaksLongWords(t *testing.T) {
	doc := docWithLinks(paragraph(plain("abcdefg")))

	got := lineTexts(NewLayout(doc, 3))
	want := []string{"abc", "def", "g"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func TestNewLayout_WideGlyphNarrowerViewport(t *testing.T) {
	doc := docWithLinks(paragraph(plain("日本")))

	got := lineTexts(NewLayout(doc, 1))
	want := []string{"日", "本"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func TestNewLayout_ListItems(t *testing.T) {
	doc := docWithLinks(
		Element{Kind: ElementListItem, Depth: 0, Spans: []Span{plain("one two")}},
		Element{Kind: ElementListItem, Depth: 1, Spans: []Span{plain("nested")}},
	)

	l := NewLayout(doc, 6)

	got := lineTexts(l)
	if got[0] != "• one" {
		t.Fatalf("first line = %q, want %q", got[0], "• one")
	}
	if !strings.HasPrefix(got[1], "  ") || strings.TrimSpace(got[1]) != "two" {
		t.Fatalf("continuation line = %q, want an indented \"two\"", got[1])
	}
	nested := got[l.LineOfElement(1)]
	if !strings.HasPrefix(nested, "  • ") {
		t.Fatalf("nested item = %q, want two-column indent before bullet", nested)
	}
}

func TestNewLayout_Divider(t *testing.T) {
	doc := docWithLinks(Element{Kind: ElementDivider})

	l := NewLayout(doc, 5)
	text := l.Lines[0].Text()
	if text == "" || strings.Trim(text, string(dividerRune)) != "" {
		t.Fatalf("divider line = %q", text)
	}
	if w := l.Lines[0].Width(); w > 5 {
		t.Fatalf("divider width = %d, want <= 5", w)
	}

	if got := NewLayout(doc, 0).Lines[0].Text(); got != string(dividerRune) {
		t.Fatalf("zero width divider = %q, want a single glyph", got)
	}
}

func TestNewLayout_EveryElementHasALine(t *testing.T) {
	doc := docWithLinks(paragraph(), heading(2, "H"), paragraph(plain("x")))

	l := NewLayout(doc, 10)
	for i := range doc.Elements {
		if l.LineOfElement(i) < 0 {
			t.Fatalf("element %d has no line", i)
		}
	}
	if l.LineOfElement(7) != -1 {
		t.Fatal("LineOfElement of missing element should be -1")
	}
}

func TestNewLayout_NilDocument(t *testing.T) {
	l := NewLayout(nil, 20)
	if len(l.Lines) != 0 || len(l.Links) != 0 || l.Width != 20 {
		t.Fatalf("nil document layout = %+v", l)
	}
}

func TestNewLayout_IsDeterministic(t *testing.T) {
	doc := mustParseHTML(t, articleHTML, ParserOptions{TOC: true})

	for _, width := range []int{0, 1, 7, 30, 80} {
		a := NewLayout(doc, width)
		b := NewLayout(doc, width)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("width %d: layouts differ", width)
		}
	}
}

func TestNewLayout_OccurrencesMatchLinksInReadingOrder(t *testing.T) {
	doc := mustParseHTML(t, articleHTML, ParserOptions{})
	if doc.LinkSpanCount() == 0 {
		t.Fatal("fixture should contain links")
	}

	for width := 0; width <= 60; width++ {
		l := NewLayout(doc, width)
		if len(l.Links) != doc.LinkSpanCount() {
			t.Fatalf("width %d: occurrences = %d, link spans = %d", width, len(l.Links), doc.LinkSpanCount())
		}
		for i := 1; i < len(l.Links); i++ {
			prev, cur := l.Links[i-1], l.Links[i]
			if cur.Y < prev.Y || (cur.Y == prev.Y && cur.X < prev.X) {
				t.Fatalf("width %d: occurrence %d %+v precedes %+v", width, i, cur, prev)
			}
		}
		if width >= 10 {
			for i, line := range l.Lines {
				if line.Width() > width {
					t.Fatalf("width %d: line %d %q overflows", width, i, line.Text())
				}
			}
		}
	}
}
