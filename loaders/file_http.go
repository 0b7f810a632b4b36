package loaders

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/boolean-maybe/wikinav/wikinav"
)

// maxBodySize bounds the bytes read from a single HTTP response.
const maxBodySize = 16 << 20

// FileHTTP implements wikinav.ContentProvider for HTTP(S) URLs and local article files.
//
// Relative targets resolve against the last fetched file, so links between local
// Markdown articles work like they do on disk.
type FileHTTP struct {
	// SearchRoots are extra directories to try when resolving relative file links.
	SearchRoots []string

	// Client is used for HTTP(S) requests; if nil, http.DefaultClient is used.
	Client *http.Client

	// UserAgent is sent with HTTP(S) requests when set.
	UserAgent string

	// Logger receives debug output; if nil, log.Default() is used.
	Logger *log.Logger

	mu     sync.Mutex
	source string
}

// SetSource sets the path relative targets resolve against.
func (f *FileHTTP) SetSource(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.source = path
}

// Source returns the path of the last fetched file.
func (f *FileHTTP) Source() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.source
}

func (f *FileHTTP) logger() *log.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return log.Default()
}

// FetchContent implements wikinav.ContentProvider.
func (f *FileHTTP) FetchContent(ctx context.Context, target string) (wikinav.Content, error) {
	if target == "" {
		return wikinav.Content{}, nil
	}

	resolved, err := ResolveArticlePath(target, f.Source(), f.SearchRoots)
	if err != nil {
		return wikinav.Content{}, fmt.Errorf("failed to resolve path %q: %w", target, err)
	}
	f.logger().Debug("fetching content", "target", target, "resolved", resolved)

	if isHTTPURL(resolved) {
		return f.fetchFromWeb(ctx, resolved)
	}
	content, err := f.fetchFromLocal(resolved)
	if err != nil {
		return wikinav.Content{}, err
	}
	f.SetSource(resolved)
	return content, nil
}

func (f *FileHTTP) fetchFromWeb(ctx context.Context, url string) (content wikinav.Content, err error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return content, fmt.Errorf("failed to build request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return content, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return content, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		return content, fmt.Errorf("server returned non-200 status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return content, fmt.Errorf("failed to read response body: %w", err)
	}

	return wikinav.Content{
		Data:   body,
		Format: formatFromContentType(resp.Header.Get("Content-Type"), url, body),
		Meta:   wikinav.Metadata{Source: url},
	}, nil
}

func (f *FileHTTP) fetchFromLocal(path string) (wikinav.Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return wikinav.Content{}, fmt.Errorf("failed to read local file: %w", err)
	}
	return wikinav.Content{
		Data:   data,
		Format: FormatForPath(path, data),
		Meta:   wikinav.Metadata{Source: path},
	}, nil
}

// FormatForPath infers the markup format from a file extension, sniffing data when the
// extension is unknown.
func FormatForPath(path string, data []byte) wikinav.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return wikinav.FormatHTML
	case ".md", ".markdown", ".mdown", ".txt":
		return wikinav.FormatMarkdown
	}
	return sniffFormat(data)
}

func formatFromContentType(contentType, url string, body []byte) wikinav.Format {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "text/html", "application/xhtml+xml":
			return wikinav.FormatHTML
		case "text/markdown", "text/x-markdown":
			return wikinav.FormatMarkdown
		}
	}
	return FormatForPath(url, body)
}

func sniffFormat(data []byte) wikinav.Format {
	head := strings.ToLower(strings.TrimSpace(string(data[:min(len(data), 512)])))
	if strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html") ||
		strings.HasPrefix(head, "<div") || strings.HasPrefix(head, "<p") {
		return wikinav.FormatHTML
	}
	return wikinav.FormatMarkdown
}
