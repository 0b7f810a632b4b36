package wikinav

import "strings"

// ElementKind distinguishes the block-level content elements of a Document.
type ElementKind int

const (
	ElementHeading ElementKind = iota
	ElementParagraph
	ElementListItem
	ElementLink
	ElementDivider
)

func (k ElementKind) String() string {
	switch k {
	case ElementHeading:
		return "heading"
	case ElementParagraph:
		return "paragraph"
	case ElementListItem:
		return "list-item"
	case ElementLink:
		return "link"
	case ElementDivider:
		return "divider"
	default:
		return "unknown"
	}
}

// Style is a bitmask of inline text attributes.
type Style uint8

const (
	StyleBold Style = 1 << iota
	StyleItalic
	StyleCode
	StyleLink
	StyleHeading
)

// Has reports whether all bits of o are set in s.
func (s Style) Has(o Style) bool { return s&o == o }

// NoLink is the Link value of a span that is not part of a hyperlink.
const NoLink = -1

// Span is a run of inline text sharing one style.
// A span with Link >= 0 belongs to the hyperlink with that id.
type Span struct {
	Text  string
	Style Style
	Link  int
}

// Element is one block-level unit of a Document.
//
// Level is set for headings (1-6), Depth for list items (0 = top level).
type Element struct {
	Kind  ElementKind
	Level int
	Depth int
	Spans []Span
}

// Text returns the concatenated text of all spans.
func (e Element) Text() string {
	var b strings.Builder
	for _, s := range e.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Link is a hyperlink of a Document. Target is a reference the retrieval layer can resolve
// (e.g. "/wiki/Go_(programming_language)"); Text is the literal display text.
type Link struct {
	ID     int
	Target string
	Text   string
}

// Metadata describes where raw markup came from.
type Metadata struct {
	Title  string
	PageID int
	Source string
}

// Document is the parsed, immutable content of one article.
type Document struct {
	Title    string
	Meta     Metadata
	Elements []Element
	Links    []Link
	TOC      *TOC
	Warnings []string
}

// Link returns the link with the given id.
func (d *Document) Link(id int) (Link, bool) {
	if d == nil || id < 0 || id >= len(d.Links) {
		return Link{}, false
	}
	return d.Links[id], true
}

// LinkSpanCount counts link ids referenced by the element spans.
// For a parsed Document this equals len(Links).
func (d *Document) LinkSpanCount() int {
	if d == nil {
		return 0
	}
	seen := make(map[int]struct{})
	for _, e := range d.Elements {
		for _, s := range e.Spans {
			if s.Link >= 0 {
				seen[s.Link] = struct{}{}
			}
		}
	}
	return len(seen)
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Elements = make([]Element, len(d.Elements))
	for i, e := range d.Elements {
		e.Spans = append([]Span(nil), e.Spans...)
		out.Elements[i] = e
	}
	out.Links = append([]Link(nil), d.Links...)
	out.Warnings = append([]string(nil), d.Warnings...)
	out.TOC = d.TOC.clone()
	return &out
}
