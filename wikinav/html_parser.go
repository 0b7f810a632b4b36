package wikinav

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skippedTags never contribute content.
var skippedTags = map[string]bool{
	"script": true, "style": true, "head": true, "noscript": true, "figure": true,
	"img": true, "link": true, "meta": true, "svg": true, "math": true, "template": true,
	"iframe": true, "audio": true, "video": true, "input": true, "button": true,
}

// skippedClasses mark MediaWiki chrome, citations and media wrappers.
var skippedClasses = map[string]bool{
	"mw-editsection": true, "reference": true, "noprint": true, "mw-empty-elt": true,
	"mw-references-wrap": true, "reflist": true, "references": true, "navbox": true,
	"metadata": true, "mw-file-description": true, "mw-file-element": true,
}

// containerTags are walked for their block children.
var containerTags = map[string]bool{
	"html": true, "body": true, "div": true, "section": true, "article": true, "main": true,
	"blockquote": true, "center": true, "header": true, "footer": true, "nav": true, "aside": true,
}

// inlineTags are accepted as inline content wherever they appear.
var inlineTags = map[string]bool{
	"a": true, "b": true, "strong": true, "i": true, "em": true, "code": true, "kbd": true,
	"tt": true, "samp": true, "var": true, "span": true, "sup": true, "sub": true, "small": true,
	"abbr": true, "cite": true, "q": true, "s": true, "u": true, "mark": true, "time": true,
	"bdi": true, "bdo": true, "font": true, "big": true, "del": true, "ins": true, "dfn": true,
	"wbr": true, "br": true, "label": true,
}

// HTMLParser parses MediaWiki article HTML.
type HTMLParser struct {
	opts ParserOptions
}

// NewHTMLParser creates an HTML parser.
func NewHTMLParser(opts ParserOptions) *HTMLParser {
	return &HTMLParser{opts: opts}
}

// Parse implements Parser.
func (p *HTMLParser) Parse(raw []byte, meta Metadata) (*Document, error) {
	if err := checkInput(raw); err != nil {
		return nil, err
	}

	root, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, malformed(err.Error())
	}

	w := &htmlWalker{b: newDocBuilder(meta, p.opts, 2)}
	w.blocks(contentRoot(root))
	w.b.flush(ElementParagraph, 0)

	doc := w.b.build()
	if doc.Title == "" {
		for _, e := range doc.Elements {
			if e.Kind == ElementHeading && e.Level == 1 {
				doc.Title = e.Text()
				break
			}
		}
	}
	return doc, nil
}

// contentRoot returns the MediaWiki parser output container, falling back to body.
func contentRoot(root *html.Node) *html.Node {
	if n := findNode(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && hasClass(n, "mw-parser-output")
	}); n != nil {
		return n
	}
	if n := findNode(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	}); n != nil {
		return n
	}
	return root
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func skipped(n *html.Node) bool {
	switch n.Type {
	case html.CommentNode, html.DoctypeNode:
		return true
	case html.ElementNode:
	default:
		return false
	}
	if skippedTags[n.Data] {
		return true
	}
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if skippedClasses[c] {
			return true
		}
	}
	return false
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// textContent returns the visible text below n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if skipped(n) {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// resolveHref turns an anchor href into a link target. Fragment-only and empty hrefs
// resolve to "".
func resolveHref(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	if strings.HasPrefix(href, "./") {
		return "/wiki/" + strings.TrimPrefix(href, "./")
	}
	return href
}

type htmlWalker struct {
	b *docBuilder
}

func (w *htmlWalker) blocks(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.block(c)
	}
}

func (w *htmlWalker) block(n *html.Node) {
	if skipped(n) {
		return
	}
	if n.Type == html.TextNode {
		w.b.text(n.Data, 0)
		return
	}
	if n.Type != html.ElementNode {
		return
	}

	tag := n.Data
	if level := headingLevel(tag); level > 0 {
		w.b.flush(ElementParagraph, 0)
		w.b.heading(level, textContent(n))
		return
	}

	switch {
	case tag == "p" || tag == "caption" || tag == "figcaption":
		w.b.flush(ElementParagraph, 0)
		w.inlineChildren(n, 0)
		w.b.flush(ElementParagraph, 0)
	case tag == "pre":
		w.b.flush(ElementParagraph, 0)
		w.inlineChildren(n, StyleCode)
		w.b.flush(ElementParagraph, 0)
	case tag == "ul" || tag == "ol" || tag == "dl":
		w.b.flush(ElementParagraph, 0)
		w.list(n, 0)
	case tag == "hr":
		w.b.flush(ElementParagraph, 0)
		w.b.divider()
	case containerTags[tag]:
		w.blocks(n)
	case inlineTags[tag]:
		w.inline(n, 0)
	default:
		w.b.flush(ElementParagraph, 0)
		w.b.warnOnce("element:"+tag, "rendering unknown element as text", "element", tag)
		w.inlineChildren(n, 0)
		w.b.flush(ElementParagraph, 0)
	}
}

// list emits one ListItem per li (or dt/dd); nested lists go one level deeper.
func (w *htmlWalker) list(n *html.Node, depth int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || skipped(c) {
			continue
		}
		switch c.Data {
		case "li", "dt":
			w.listItem(c, depth)
		case "dd":
			w.listItem(c, depth+1)
		case "ul", "ol", "dl":
			w.list(c, depth+1)
		}
	}
}

func (w *htmlWalker) listItem(n *html.Node, depth int) {
	style := Style(0)
	if n.Data == "dt" {
		style = StyleBold
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol" || c.Data == "dl") && !skipped(c) {
			w.b.flush(ElementListItem, depth)
			w.list(c, depth+1)
			continue
		}
		w.inline(c, style)
	}
	w.b.flush(ElementListItem, depth)
}

func (w *htmlWalker) inlineChildren(n *html.Node, style Style) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.inline(c, style)
	}
}

func (w *htmlWalker) inline(n *html.Node, style Style) {
	if skipped(n) {
		return
	}
	switch n.Type {
	case html.TextNode:
		w.b.text(n.Data, style)
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.Data {
	case "a":
		href, ok := attr(n, "href")
		if !ok {
			w.inlineChildren(n, style)
			return
		}
		mark := w.b.linkMark()
		w.inlineChildren(n, style)
		w.b.finishLink(mark, resolveHref(href))
	case "b", "strong", "dt", "th":
		w.inlineChildren(n, style|StyleBold)
	case "i", "em", "var", "dfn":
		w.inlineChildren(n, style|StyleItalic)
	case "code", "kbd", "tt", "samp":
		w.inlineChildren(n, style|StyleCode)
	case "br", "wbr":
		w.b.text(" ", style)
	default:
		if inlineTags[n.Data] {
			w.inlineChildren(n, style)
			return
		}
		// block-like content inside inline context keeps its words apart
		w.b.text(" ", style)
		w.inlineChildren(n, style)
		w.b.text(" ", style)
	}
}
