package loaders

import (
	"strings"

	"golang.org/x/net/html"
)

// SnippetSegment is a run of snippet text; Match marks the words that matched the query.
type SnippetSegment struct {
	Text  string
	Match bool
}

// SnippetSegments splits a search snippet into plain and matched runs. The API marks
// matches with <span class="searchmatch">; all other markup is dropped and entities are
// decoded.
func SnippetSegments(snippet string) []SnippetSegment {
	var out []SnippetSegment
	depth := 0
	matchDepth := -1

	appendText := func(text string, match bool) {
		if text == "" {
			return
		}
		if n := len(out); n > 0 && out[n-1].Match == match {
			out[n-1].Text += text
			return
		}
		out = append(out, SnippetSegment{Text: text, Match: match})
	}

	z := html.NewTokenizer(strings.NewReader(snippet))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return out
		case html.TextToken:
			appendText(string(z.Text()), matchDepth >= 0)
		case html.StartTagToken:
			tok := z.Token()
			depth++
			if tok.Data == "span" && matchDepth < 0 && hasSearchMatch(tok) {
				matchDepth = depth
			}
		case html.EndTagToken:
			if depth == matchDepth {
				matchDepth = -1
			}
			depth = max(depth-1, 0)
		}
	}
}

func hasSearchMatch(tok html.Token) bool {
	for _, a := range tok.Attr {
		if a.Key == "class" && strings.Contains(" "+a.Val+" ", " searchmatch ") {
			return true
		}
	}
	return false
}

// SnippetText returns the snippet without markup.
func SnippetText(snippet string) string {
	var sb strings.Builder
	for _, s := range SnippetSegments(snippet) {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
