package wikinav

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for ContentFetcher operations.
var (
	// ErrNilView is returned when OnActivate is called without a view.
	ErrNilView = errors.New("nil article view")
	// ErrNotLink is returned when the activation carries no target.
	ErrNotLink = errors.New("activation has no link target")
	// ErrEmptyContent is returned when the provider hands back no bytes.
	ErrEmptyContent = errors.New("content is empty")
)

// Content is raw article markup handed over by a retrieval collaborator.
type Content struct {
	Data   []byte
	Format Format
	Meta   Metadata
}

// ContentProvider retrieves the raw markup behind a link target.
type ContentProvider interface {
	FetchContent(ctx context.Context, target string) (Content, error)
}

// ContentFetcher turns link targets into parsed Documents using a ContentProvider.
// It is UI-agnostic: a host calls Fetch off its UI goroutine and hands the result to
// ArticleView.Open on it, or uses OnActivate when both happen on one goroutine.
type ContentFetcher struct {
	provider ContentProvider
	opts     ParserOptions
}

// NewContentFetcher creates a ContentFetcher parsing with opts.
func NewContentFetcher(provider ContentProvider, opts ParserOptions) *ContentFetcher {
	return &ContentFetcher{provider: provider, opts: opts}
}

// Fetch retrieves and parses the article behind target.
func (cf *ContentFetcher) Fetch(ctx context.Context, target string) (*Document, error) {
	if target == "" {
		return nil, ErrNotLink
	}
	content, err := cf.provider.FetchContent(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("fetch content for %q: %w", target, err)
	}
	if len(content.Data) == 0 {
		return nil, ErrEmptyContent
	}
	if content.Meta.Source == "" {
		content.Meta.Source = target
	}

	doc, err := ParserFor(content.Format, cf.opts).Parse(content.Data, content.Meta)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", target, err)
	}
	return doc, nil
}

// OnActivate fetches the activated link and opens it in view, keeping the current
// article in the view's history. On error the view is left unchanged.
func (cf *ContentFetcher) OnActivate(ctx context.Context, view *ArticleView, a LinkActivation) error {
	if view == nil {
		return ErrNilView
	}
	if a.Target == "" {
		return ErrNotLink
	}
	doc, err := cf.Fetch(ctx, a.Target)
	if err != nil {
		return err
	}
	view.Open(doc)
	return nil
}
