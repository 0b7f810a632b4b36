package loaders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/boolean-maybe/wikinav/wikinav"
)

// Sentinel errors returned by the Wikipedia client.
var (
	// ErrNotFound is returned when the article does not exist.
	ErrNotFound = errors.New("article not found")
	// ErrAPI is returned for any other failure reported by the MediaWiki API.
	ErrAPI = errors.New("mediawiki api error")
)

// DefaultBaseURL is the MediaWiki API endpoint of the English Wikipedia.
const DefaultBaseURL = "https://en.wikipedia.org/w/api.php"

const wikiPrefix = "/wiki/"

// Ref identifies an article either by page id or by title.
type Ref struct {
	PageID int
	Title  string
}

func (r Ref) String() string {
	if r.PageID > 0 {
		return "page " + strconv.Itoa(r.PageID)
	}
	return r.Title
}

// IsZero reports whether the ref names no article.
func (r Ref) IsZero() bool { return r.PageID <= 0 && r.Title == "" }

// Article is the parse output of one article.
type Article struct {
	PageID int
	Title  string
	HTML   []byte
}

// SearchResult is one hit of a full-text search.
type SearchResult struct {
	PageID    int
	Title     string
	Snippet   string
	WordCount int
	Timestamp time.Time
}

// SearchPage is one page of search results. NextOffset is valid when More is true.
type SearchPage struct {
	Query      string
	TotalHits  int
	Results    []SearchResult
	NextOffset int
	More       bool
}

// Wikipedia fetches articles and search results from a MediaWiki API and implements
// wikinav.ContentProvider for wiki link targets.
type Wikipedia struct {
	// BaseURL is the api.php endpoint; empty means DefaultBaseURL.
	BaseURL string
	// UserAgent is sent with every request.
	UserAgent string
	// Client is used for requests; if nil, http.DefaultClient is used.
	Client *http.Client
	// Limit is the number of search results per page; zero means 10.
	Limit int
	// Logger receives request logging; if nil, log.Default() is used.
	Logger *log.Logger
}

func (w *Wikipedia) logger() *log.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return log.Default()
}

func (w *Wikipedia) baseURL() string {
	if w.BaseURL != "" {
		return w.BaseURL
	}
	return DefaultBaseURL
}

// ResolveTarget maps a wiki link target to an article ref. It accepts "/wiki/Title",
// "./Title", full article URLs and bare titles; fragments are dropped, underscores become
// spaces and percent escapes are decoded.
func ResolveTarget(target string) Ref {
	target = strings.TrimSpace(target)
	if u, err := url.Parse(target); err == nil && u.Scheme != "" && u.Host != "" {
		if id, err := strconv.Atoi(u.Query().Get("curid")); err == nil && id > 0 {
			return Ref{PageID: id}
		}
		if t := u.Query().Get("title"); t != "" {
			return Ref{Title: normalizeTitle(t)}
		}
		target = u.EscapedPath()
	}
	if i := strings.IndexByte(target, '#'); i >= 0 {
		target = target[:i]
	}
	switch {
	case strings.HasPrefix(target, wikiPrefix):
		target = strings.TrimPrefix(target, wikiPrefix)
	case strings.HasPrefix(target, "./"):
		target = strings.TrimPrefix(target, "./")
	}
	if decoded, err := url.PathUnescape(target); err == nil {
		target = decoded
	}
	return Ref{Title: normalizeTitle(target)}
}

func normalizeTitle(t string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(t, "_", " ")), " ")
}

// IsWikiTarget reports whether target is an internal wiki link rather than a file or an
// external URL.
func IsWikiTarget(target string) bool {
	if strings.HasPrefix(target, wikiPrefix) {
		return true
	}
	u, err := url.Parse(target)
	return err == nil && u.Host != "" && strings.HasPrefix(u.Path, wikiPrefix) &&
		strings.HasSuffix(u.Hostname(), ".wikipedia.org")
}

// WikiTarget returns the link target of an article title, e.g. "/wiki/Ken_Thompson".
func WikiTarget(title string) string {
	return wikiPrefix + url.PathEscape(strings.ReplaceAll(normalizeTitle(title), " ", "_"))
}

// DisplayTitle returns the human form of a link target, e.g. "Go (programming language)"
// for "/wiki/Go_(programming_language)".
func DisplayTitle(target string) string {
	if !IsWikiTarget(target) {
		return target
	}
	return ResolveTarget(target).String()
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type parseResponse struct {
	Parse *struct {
		Title  string `json:"title"`
		PageID int    `json:"pageid"`
		Text   string `json:"text"`
	} `json:"parse"`
	Error *apiError `json:"error"`
}

type searchResponse struct {
	Continue *struct {
		Offset int `json:"sroffset"`
	} `json:"continue"`
	Query *struct {
		SearchInfo struct {
			TotalHits int `json:"totalhits"`
		} `json:"searchinfo"`
		Search []struct {
			PageID    int       `json:"pageid"`
			Title     string    `json:"title"`
			Snippet   string    `json:"snippet"`
			WordCount int       `json:"wordcount"`
			Timestamp time.Time `json:"timestamp"`
		} `json:"search"`
	} `json:"query"`
	Error *apiError `json:"error"`
}

func (e *apiError) err() error {
	switch e.Code {
	case "missingtitle", "nosuchpageid", "invalidtitle", "missingpage":
		return fmt.Errorf("%w: %s", ErrNotFound, e.Info)
	}
	return fmt.Errorf("%w: %s: %s", ErrAPI, e.Code, e.Info)
}

// FetchArticle retrieves the parsed HTML of an article.
func (w *Wikipedia) FetchArticle(ctx context.Context, ref Ref) (*Article, error) {
	if ref.IsZero() {
		return nil, fmt.Errorf("%w: empty article reference", ErrNotFound)
	}
	params := url.Values{
		"action":             {"parse"},
		"format":             {"json"},
		"formatversion":      {"2"},
		"prop":               {"text"},
		"redirects":          {"1"},
		"disableeditsection": {"1"},
	}
	if ref.PageID > 0 {
		params.Set("pageid", strconv.Itoa(ref.PageID))
	} else {
		params.Set("page", ref.Title)
	}

	var resp parseResponse
	if err := w.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("fetch article %s: %w", ref, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("fetch article %s: %w", ref, resp.Error.err())
	}
	if resp.Parse == nil {
		return nil, fmt.Errorf("fetch article %s: %w: response has no parse output", ref, ErrAPI)
	}
	w.logger().Info("fetched article", "title", resp.Parse.Title, "pageid", resp.Parse.PageID)
	return &Article{PageID: resp.Parse.PageID, Title: resp.Parse.Title, HTML: []byte(resp.Parse.Text)}, nil
}

// Search runs a full-text search starting at offset.
func (w *Wikipedia) Search(ctx context.Context, query string, offset int) (*SearchPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrAPI)
	}
	limit := w.Limit
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"list":          {"search"},
		"srsearch":      {query},
		"srlimit":       {strconv.Itoa(limit)},
		"sroffset":      {strconv.Itoa(max(offset, 0))},
		"srinfo":        {"totalhits"},
		"srprop":        {"snippet|wordcount|timestamp"},
	}

	var resp searchResponse
	if err := w.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("search %q: %w", query, resp.Error.err())
	}

	page := &SearchPage{Query: query}
	if resp.Query != nil {
		page.TotalHits = resp.Query.SearchInfo.TotalHits
		for _, r := range resp.Query.Search {
			page.Results = append(page.Results, SearchResult{
				PageID:    r.PageID,
				Title:     r.Title,
				Snippet:   r.Snippet,
				WordCount: r.WordCount,
				Timestamp: r.Timestamp,
			})
		}
	}
	if resp.Continue != nil {
		page.NextOffset = resp.Continue.Offset
		page.More = true
	}
	w.logger().Debug("search finished", "query", query, "offset", offset, "results", len(page.Results))
	return page, nil
}

// FetchContent implements wikinav.ContentProvider.
func (w *Wikipedia) FetchContent(ctx context.Context, target string) (wikinav.Content, error) {
	ref := ResolveTarget(target)
	article, err := w.FetchArticle(ctx, ref)
	if err != nil {
		return wikinav.Content{}, err
	}
	return wikinav.Content{
		Data:   article.HTML,
		Format: wikinav.FormatHTML,
		Meta:   wikinav.Metadata{Title: article.Title, PageID: article.PageID, Source: target},
	}, nil
}

func (w *Wikipedia) get(ctx context.Context, params url.Values, out any) (err error) {
	endpoint := w.baseURL() + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if w.UserAgent != "" {
		req.Header.Set("User-Agent", w.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	client := w.Client
	if client == nil {
		client = http.DefaultClient
	}
	w.logger().Debug("api request", "url", endpoint)
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: server returned status %d", ErrAPI, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrAPI, err)
	}
	return nil
}
