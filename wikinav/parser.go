package wikinav

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// Sentinel errors returned by parsers.
var (
	// ErrEmptyDocument is returned for zero-length or whitespace-only input.
	ErrEmptyDocument = errors.New("empty document")
	// ErrMalformed is returned when the input cannot be tokenized at all.
	ErrMalformed = errors.New("malformed markup")
)

func malformed(reason string) error {
	return fmt.Errorf("%w: %s", ErrMalformed, reason)
}

// Format identifies the markup dialect of raw article content.
type Format int

const (
	FormatHTML Format = iota
	FormatMarkdown
)

func (f Format) String() string {
	if f == FormatMarkdown {
		return "markdown"
	}
	return "html"
}

// Parser converts raw markup into a Document.
type Parser interface {
	Parse(raw []byte, meta Metadata) (*Document, error)
}

// ParserOptions configures a Parser.
type ParserOptions struct {
	// TOC enables building the table of contents.
	TOC bool
	// MinHeadingLevel is the smallest heading level that enters the TOC.
	// Zero selects the format default (2 for HTML, 1 for Markdown).
	MinHeadingLevel int
	// Logger receives parse warnings. nil uses log.Default().
	Logger *log.Logger
}

// ParserFor returns the parser for a format.
func ParserFor(format Format, opts ParserOptions) Parser {
	if format == FormatMarkdown {
		return NewMarkdownParser(opts)
	}
	return NewHTMLParser(opts)
}

func checkInput(raw []byte) error {
	if len(raw) == 0 {
		return ErrEmptyDocument
	}
	if !utf8.Valid(raw) {
		return malformed("invalid UTF-8")
	}
	if strings.TrimSpace(string(raw)) == "" {
		return ErrEmptyDocument
	}
	return nil
}

// docBuilder accumulates elements, links and TOC entries while a parser walks its tree.
// Inline content goes to pending until a block boundary flushes it.
type docBuilder struct {
	doc     *Document
	toc     *tocBuilder
	logger  *log.Logger
	pending []Span
	warned  map[string]bool
}

func newDocBuilder(meta Metadata, opts ParserOptions, defaultMinLevel int) *docBuilder {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	b := &docBuilder{
		doc:    &Document{Title: meta.Title, Meta: meta},
		logger: logger,
		warned: make(map[string]bool),
	}
	if opts.TOC {
		minLevel := opts.MinHeadingLevel
		if minLevel <= 0 {
			minLevel = defaultMinLevel
		}
		b.toc = newTOCBuilder(minLevel)
	}
	return b
}

func (b *docBuilder) warn(msg string, keyvals ...interface{}) {
	b.logger.Warn(msg, keyvals...)
	if len(keyvals) >= 2 {
		msg = fmt.Sprintf("%s: %v", msg, keyvals[1])
	}
	b.doc.Warnings = append(b.doc.Warnings, msg)
}

// warnOnce records a warning only the first time key is seen.
func (b *docBuilder) warnOnce(key, msg string, keyvals ...interface{}) {
	if b.warned[key] {
		return
	}
	b.warned[key] = true
	b.warn(msg, keyvals...)
}

func (b *docBuilder) text(s string, style Style) {
	if s == "" {
		return
	}
	b.pending = append(b.pending, Span{Text: s, Style: style, Link: NoLink})
}

// linkMark returns the position at which the spans of a link begin.
func (b *docBuilder) linkMark() int { return len(b.pending) }

// finishLink turns the spans added since mark into a link to target.
// Links without a target are demoted to plain text, links without visible text are dropped.
func (b *docBuilder) finishLink(mark int, target string) {
	target = strings.TrimSpace(target)
	spans := b.pending[mark:]
	display := collapseSpace(spansText(spans))

	if display == "" {
		b.pending = b.pending[:mark]
		b.warn("dropping link without text", "target", target)
		return
	}
	if target == "" {
		b.warn("link has no target, rendering as text", "text", display)
		return
	}

	id := len(b.doc.Links)
	b.doc.Links = append(b.doc.Links, Link{ID: id, Target: target, Text: display})
	for i := range spans {
		spans[i].Link = id
		spans[i].Style |= StyleLink
	}
}

// hasPending reports whether the pending inline content has visible text.
func (b *docBuilder) hasPending() bool {
	for _, s := range b.pending {
		if strings.TrimFunc(s.Text, unicode.IsSpace) != "" {
			return true
		}
	}
	return false
}

// flush emits the pending inline content as a block of the given kind.
func (b *docBuilder) flush(kind ElementKind, depth int) {
	if !b.hasPending() {
		b.pending = b.pending[:0]
		return
	}
	spans := make([]Span, len(b.pending))
	copy(spans, b.pending)
	b.pending = b.pending[:0]

	if kind == ElementParagraph && isStandaloneLink(spans) {
		kind = ElementLink
	}
	b.doc.Elements = append(b.doc.Elements, Element{Kind: kind, Depth: depth, Spans: spans})
}

func (b *docBuilder) heading(level int, title string) {
	title = collapseSpace(title)
	if title == "" {
		return
	}
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	idx := len(b.doc.Elements)
	b.doc.Elements = append(b.doc.Elements, Element{
		Kind:  ElementHeading,
		Level: level,
		Spans: []Span{{Text: title, Style: StyleHeading | StyleBold, Link: NoLink}},
	})
	if b.toc != nil {
		b.toc.add(level, title, idx)
	}
}

func (b *docBuilder) divider() {
	b.doc.Elements = append(b.doc.Elements, Element{Kind: ElementDivider})
}

func (b *docBuilder) build() *Document {
	if b.toc != nil {
		b.doc.TOC = b.toc.build()
	}
	return b.doc
}

// isStandaloneLink reports whether every visible span belongs to one single link.
func isStandaloneLink(spans []Span) bool {
	link := NoLink
	for _, s := range spans {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		if s.Link == NoLink {
			return false
		}
		if link != NoLink && s.Link != link {
			return false
		}
		link = s.Link
	}
	return link != NoLink
}

func spansText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
