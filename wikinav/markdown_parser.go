package wikinav

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser parses CommonMark articles with goldmark.
type MarkdownParser struct {
	opts ParserOptions
	md   goldmark.Markdown
}

// NewMarkdownParser creates a Markdown parser.
func NewMarkdownParser(opts ParserOptions) *MarkdownParser {
	return &MarkdownParser{opts: opts, md: goldmark.New()}
}

// Parse implements Parser.
func (p *MarkdownParser) Parse(raw []byte, meta Metadata) (*Document, error) {
	if err := checkInput(raw); err != nil {
		return nil, err
	}

	root := p.md.Parser().Parse(text.NewReader(raw))
	w := &mdWalker{b: newDocBuilder(meta, p.opts, 1), source: raw}
	w.blocks(root)
	w.b.flush(ElementParagraph, 0)

	doc := w.b.build()
	if doc.Title == "" {
		for _, e := range doc.Elements {
			if e.Kind == ElementHeading {
				doc.Title = e.Text()
				break
			}
		}
	}
	return doc, nil
}

type mdWalker struct {
	b      *docBuilder
	source []byte
}

func (w *mdWalker) blocks(n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.block(c)
	}
}

func (w *mdWalker) block(n ast.Node) {
	switch n := n.(type) {
	case *ast.Heading:
		w.b.heading(n.Level, w.plainText(n))
	case *ast.Paragraph, *ast.TextBlock:
		w.inlineChildren(n, 0)
		w.b.flush(ElementParagraph, 0)
	case *ast.List:
		w.list(n, 0)
	case *ast.ThematicBreak:
		w.b.divider()
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		w.lines(n, StyleCode)
		w.b.flush(ElementParagraph, 0)
	case *ast.Blockquote:
		w.blocks(n)
	case *ast.HTMLBlock:
		w.b.warnOnce("kind:"+n.Kind().String(), "rendering raw HTML block as text")
		w.lines(n, 0)
		w.b.flush(ElementParagraph, 0)
	default:
		w.b.warnOnce("kind:"+n.Kind().String(), "rendering unknown block as text", "kind", n.Kind().String())
		w.b.text(w.plainText(n), 0)
		w.b.flush(ElementParagraph, 0)
	}
}

func (w *mdWalker) list(n *ast.List, depth int) {
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		w.listItem(item, depth)
	}
}

func (w *mdWalker) listItem(n ast.Node, depth int) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.List:
			w.b.flush(ElementListItem, depth)
			w.list(c, depth+1)
		case *ast.Paragraph, *ast.TextBlock:
			if w.b.hasPending() {
				w.b.flush(ElementListItem, depth)
			}
			w.inlineChildren(c, 0)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			w.b.flush(ElementListItem, depth)
			w.lines(c, StyleCode)
		default:
			w.b.text(w.plainText(c), 0)
		}
	}
	w.b.flush(ElementListItem, depth)
}

// lines appends the raw source lines of a block node.
func (w *mdWalker) lines(n ast.Node, style Style) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		w.b.text(string(seg.Value(w.source)), style)
		w.b.text(" ", style)
	}
}

func (w *mdWalker) inlineChildren(n ast.Node, style Style) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.inline(c, style)
	}
}

func (w *mdWalker) inline(n ast.Node, style Style) {
	switch n := n.(type) {
	case *ast.Text:
		w.b.text(string(n.Segment.Value(w.source)), style)
		if n.SoftLineBreak() || n.HardLineBreak() {
			w.b.text(" ", style)
		}
	case *ast.String:
		w.b.text(string(n.Value), style)
	case *ast.Emphasis:
		s := style | StyleItalic
		if n.Level >= 2 {
			s = style | StyleBold
		}
		w.inlineChildren(n, s)
	case *ast.CodeSpan:
		w.b.text(w.plainText(n), style|StyleCode)
	case *ast.Link:
		mark := w.b.linkMark()
		w.inlineChildren(n, style)
		w.b.finishLink(mark, string(n.Destination))
	case *ast.AutoLink:
		url := string(n.URL(w.source))
		mark := w.b.linkMark()
		w.b.text(string(n.Label(w.source)), style)
		w.b.finishLink(mark, url)
	case *ast.Image:
		// images have no textual rendering
	case *ast.RawHTML:
		w.b.warnOnce("kind:RawHTML", "ignoring inline raw HTML")
	default:
		w.inlineChildren(n, style)
	}
}

// plainText concatenates the text below n without styling.
func (w *mdWalker) plainText(n ast.Node) string {
	var out []byte
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := node.(type) {
		case *ast.Text:
			out = append(out, t.Segment.Value(w.source)...)
			if t.SoftLineBreak() || t.HardLineBreak() {
				out = append(out, ' ')
			}
		case *ast.String:
			out = append(out, t.Value...)
		}
		return ast.WalkContinue, nil
	})
	return string(out)
}
