package loaders

import (
	"context"

	"github.com/boolean-maybe/wikinav/wikinav"
)

// Router dispatches link targets: wiki links go to Wiki, everything else (local files and
// external URLs) to Files.
type Router struct {
	Wiki  wikinav.ContentProvider
	Files wikinav.ContentProvider
}

// FetchContent implements wikinav.ContentProvider.
func (r *Router) FetchContent(ctx context.Context, target string) (wikinav.Content, error) {
	if IsWikiTarget(target) && r.Wiki != nil {
		return r.Wiki.FetchContent(ctx, target)
	}
	if r.Files == nil {
		return wikinav.Content{}, ErrNotFound
	}
	return r.Files.FetchContent(ctx, target)
}
