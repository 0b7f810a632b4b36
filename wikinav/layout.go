package wikinav

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// SeparatorElement is the Element of blank lines inserted between blocks.
const SeparatorElement = -1

const (
	listBullet  = "• "
	listIndent  = "  "
	dividerRune = '─'
)

// StyledSpan is a styled run of text within one rendered line.
type StyledSpan struct {
	Text  string
	Style Style
	Link  int
}

// Line is one terminal row of a Layout.
type Line struct {
	Spans   []StyledSpan
	Element int
}

// Text returns the visible text of the line.
func (l Line) Text() string {
	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Width returns the number of terminal columns the line occupies.
func (l Line) Width() int {
	w := 0
	for _, s := range l.Spans {
		w += runewidth.StringWidth(s.Text)
	}
	return w
}

// LinkOccurrence is the screen position of the first rendered character of a link.
type LinkOccurrence struct {
	ID int
	X  int
	Y  int
}

// Layout is the width-specific rendering of a Document.
//
// Links are in reading order: increasing Y, then increasing X.
type Layout struct {
	Width int
	Lines []Line
	Links []LinkOccurrence
}

// NewLayout wraps the document to width columns. It is a pure function of its inputs.
// A width <= 0 puts every word on its own line.
func NewLayout(doc *Document, width int) *Layout {
	l := &Layout{Width: width}
	if doc == nil {
		return l
	}

	seen := make(map[int]bool)
	for i, elem := range doc.Elements {
		if i > 0 {
			l.Lines = append(l.Lines, Line{Element: SeparatorElement})
		}
		lw := &lineWriter{out: l, element: i, width: width, seen: seen}
		switch elem.Kind {
		case ElementDivider:
			lw.divider()
		case ElementListItem:
			indent := strings.Repeat(listIndent, max(elem.Depth, 0))
			lw.setPrefix(indent+listBullet, indent+strings.Repeat(" ", runewidth.StringWidth(listBullet)))
			lw.words(splitWords(elem.Spans))
		case ElementHeading:
			spans := make([]Span, len(elem.Spans))
			for j, s := range elem.Spans {
				s.Style |= StyleHeading | StyleBold
				spans[j] = s
			}
			lw.words(splitWords(spans))
		default:
			lw.words(splitWords(elem.Spans))
		}
		lw.finish()
	}
	return l
}

// LineOfElement returns the first line rendered for the element, or -1.
func (l *Layout) LineOfElement(element int) int {
	for i, line := range l.Lines {
		if line.Element == element {
			return i
		}
	}
	return -1
}

// Occurrence returns the occurrence of a link id.
func (l *Layout) Occurrence(id int) (LinkOccurrence, bool) {
	for _, o := range l.Links {
		if o.ID == id {
			return o, true
		}
	}
	return LinkOccurrence{}, false
}

// LinkExtent returns the row and [start, end) columns covered by the link on its first line.
func (l *Layout) LinkExtent(id int) (y, start, end int, ok bool) {
	occ, found := l.Occurrence(id)
	if !found || occ.Y < 0 || occ.Y >= len(l.Lines) {
		return 0, 0, 0, false
	}
	col := 0
	start, end = occ.X, -1
	for _, s := range l.Lines[occ.Y].Spans {
		w := runewidth.StringWidth(s.Text)
		if s.Link == id && col >= start && (end < 0 || end == col) {
			end = col + w
		} else if end >= 0 {
			break
		}
		col += w
	}
	if end < 0 {
		end = start
	}
	return occ.Y, start, end, true
}

// fragment is the part of a word that carries one style.
type fragment struct {
	text  string
	style Style
	link  int
}

type word []fragment

func (w word) width() int {
	n := 0
	for _, f := range w {
		n += runewidth.StringWidth(f.text)
	}
	return n
}

// splitWords breaks spans into whitespace separated words; a word may cross span boundaries.
func splitWords(spans []Span) []word {
	var words []word
	var cur word
	var sb strings.Builder

	flushFragment := func(s Span) {
		if sb.Len() == 0 {
			return
		}
		cur = append(cur, fragment{text: sb.String(), style: s.Style, link: s.Link})
		sb.Reset()
	}
	for _, s := range spans {
		for _, r := range s.Text {
			if unicode.IsSpace(r) {
				flushFragment(s)
				if len(cur) > 0 {
					words = append(words, cur)
					cur = nil
				}
				continue
			}
			sb.WriteRune(r)
		}
		flushFragment(s)
	}
	if len(cur) > 0 {
		words = append(words, cur)
	}
	return words
}

// gap returns the space between two words. It stays inside a link when both sides carry
// the same link, keeping only the styles they share; otherwise it continues a run only
// when both sides share style.
func gap(prev, next word) fragment {
	a, b := prev[len(prev)-1], next[0]
	switch {
	case a.link != b.link:
		return fragment{text: " ", link: NoLink}
	case a.style == b.style:
		return fragment{text: " ", style: a.style, link: a.link}
	case a.link != NoLink:
		return fragment{text: " ", style: a.style & b.style, link: a.link}
	}
	return fragment{text: " ", link: NoLink}
}

// lineWriter fills the lines of one element.
type lineWriter struct {
	out     *Layout
	element int
	width   int
	seen    map[int]bool

	prefix, contPrefix string

	spans []StyledSpan
	col   int
	last  word
	begun bool
}

func (lw *lineWriter) setPrefix(first, cont string) {
	lw.prefix, lw.contPrefix = first, cont
}

func (lw *lineWriter) start() {
	if lw.begun {
		return
	}
	lw.begun = true
	lw.put(fragment{text: lw.prefix, link: NoLink})
}

// available is the number of columns left for content on a line.
func (lw *lineWriter) available() int {
	return lw.width - runewidth.StringWidth(lw.prefix)
}

func (lw *lineWriter) put(f fragment) {
	if f.text == "" {
		return
	}
	if f.link >= 0 && !lw.seen[f.link] {
		lw.seen[f.link] = true
		lw.out.Links = append(lw.out.Links, LinkOccurrence{ID: f.link, X: lw.col, Y: len(lw.out.Lines)})
	}
	if n := len(lw.spans); n > 0 && lw.spans[n-1].Style == f.style && lw.spans[n-1].Link == f.link {
		lw.spans[n-1].Text += f.text
	} else {
		lw.spans = append(lw.spans, StyledSpan{Text: f.text, Style: f.style, Link: f.link})
	}
	lw.col += runewidth.StringWidth(f.text)
}

func (lw *lineWriter) newline() {
	lw.out.Lines = append(lw.out.Lines, Line{Spans: lw.spans, Element: lw.element})
	lw.spans = nil
	lw.col = 0
	lw.last = nil
	lw.prefix = lw.contPrefix
	lw.begun = false
}

func (lw *lineWriter) finish() {
	lw.start()
	lw.newline()
}

func (lw *lineWriter) divider() {
	n := 1
	if rw := runewidth.RuneWidth(dividerRune); lw.width > 0 && rw > 0 {
		n = max(lw.width/rw, 1)
	}
	lw.start()
	lw.put(fragment{text: strings.Repeat(string(dividerRune), n), link: NoLink})
}

func (lw *lineWriter) words(words []word) {
	for _, w := range words {
		lw.word(w)
	}
}

func (lw *lineWriter) word(w word) {
	lw.start()
	if lw.width <= 0 {
		if lw.last != nil {
			lw.newline()
			lw.start()
		}
		lw.place(w)
		return
	}

	avail := max(lw.available(), 1)
	used := lw.col - runewidth.StringWidth(lw.prefix)
	ww := w.width()

	need := ww
	if lw.last != nil {
		need++
	}
	switch {
	case used+need <= avail:
		if lw.last != nil {
			lw.put(gap(lw.last, w))
		}
		lw.place(w)
	case ww <= avail:
		lw.newline()
		lw.start()
		lw.place(w)
	default:
		if lw.last != nil {
			lw.newline()
			lw.start()
		}
		lw.breakWord(w, avail)
	}
}

func (lw *lineWriter) place(w word) {
	for _, f := range w {
		lw.put(f)
	}
	lw.last = w
}

// breakWord splits a word wider than avail by glyph; every line gets at least one glyph.
func (lw *lineWriter) breakWord(w word, avail int) {
	used := 0
	var chunk word
	for _, f := range w {
		var sb strings.Builder
		for _, r := range f.text {
			rw := runewidth.RuneWidth(r)
			if used > 0 && used+rw > avail {
				if sb.Len() > 0 {
					chunk = append(chunk, fragment{text: sb.String(), style: f.style, link: f.link})
					sb.Reset()
				}
				lw.place(chunk)
				lw.newline()
				lw.start()
				chunk = nil
				used = 0
			}
			sb.WriteRune(r)
			used += rw
		}
		if sb.Len() > 0 {
			chunk = append(chunk, fragment{text: sb.String(), style: f.style, link: f.link})
		}
	}
	if len(chunk) > 0 {
		lw.place(chunk)
	}
}
