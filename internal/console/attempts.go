package console

import (
	"context"
	"fmt"

	"github.com/koopa0/scout/internal/backend"
	"github.com/koopa0/scout/internal/log"
	"github.com/koopa0/scout/internal/pagecache"
)

// AttemptsBrowser is the paginated view over a connector's indexing
// history. Pages already in the batch cache display synchronously;
// anything else costs exactly one batch fetch.
type AttemptsBrowser struct {
	cache *pagecache.Cache[backend.IndexAttempt]
}

// NewAttemptsBrowser creates a browser for the given connector.
func NewAttemptsBrowser(client *backend.Client, connectorID int, opts pagecache.Options, logger log.Logger) (*AttemptsBrowser, error) {
	fetch := func(ctx context.Context, offset, limit int) ([]backend.IndexAttempt, int, error) {
		// Batch offsets are always limit-aligned, so the window maps
		// directly onto the backend's page_num/page_size contract.
		page, err := client.ListIndexAttempts(ctx, connectorID, offset/limit, limit)
		if err != nil {
			return nil, -1, err
		}
		return page.Items, page.TotalItems, nil
	}
	cache, err := pagecache.New(fetch, opts, logger)
	if err != nil {
		return nil, fmt.Errorf("creating attempts cache: %w", err)
	}
	return &AttemptsBrowser{cache: cache}, nil
}

// GoToPage requests display of the given 0-based page.
func (b *AttemptsBrowser) GoToPage(ctx context.Context, page int) error {
	return b.cache.GoToPage(ctx, page)
}

// CurrentPageData returns the rows of the displayed page.
func (b *AttemptsBrowser) CurrentPageData() []backend.IndexAttempt {
	return b.cache.CurrentPageData()
}

// CurrentPage returns the displayed page index.
func (b *AttemptsBrowser) CurrentPage() int { return b.cache.CurrentPage() }

// TotalPages returns the known page count (0 before the first load).
func (b *AttemptsBrowser) TotalPages() int { return b.cache.TotalPages() }

// IsLoading reports whether a fetch is in flight.
func (b *AttemptsBrowser) IsLoading() bool { return b.cache.IsLoading() }

// Err returns the most recent unrecovered fetch error.
func (b *AttemptsBrowser) Err() error { return b.cache.Err() }

// Refresh drops all cached batches so the next page request refetches.
func (b *AttemptsBrowser) Refresh() { b.cache.Invalidate() }
