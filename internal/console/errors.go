package console

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/koopa0/scout/internal/backend"
	"github.com/koopa0/scout/internal/log"
	"github.com/koopa0/scout/internal/pagecache"
)

// ErrorsBrowser is the paginated view over an index attempt's
// document-level failures.
//
// The errors endpoint does not always report a usable total count (counting
// failures is expensive server-side). When total_items is missing the
// browser approximates it from the page shape: a short page pins the exact
// total, a full page means at least one more page exists. The approximation
// converges to the true count as the user pages forward; it is a known
// trade-off, not a pagination bug.
type ErrorsBrowser struct {
	cache  *pagecache.Cache[backend.AttemptError]
	approx atomic.Bool
}

// NewErrorsBrowser creates a browser for the given index attempt.
func NewErrorsBrowser(client *backend.Client, attemptID int, opts pagecache.Options, logger log.Logger) (*ErrorsBrowser, error) {
	b := &ErrorsBrowser{}
	fetch := func(ctx context.Context, offset, limit int) ([]backend.AttemptError, int, error) {
		page, err := client.ListAttemptErrors(ctx, attemptID, offset/limit, limit)
		if err != nil {
			return nil, -1, err
		}
		total := page.TotalItems
		if total <= 0 {
			// An empty page is the shortest possible short page: it pins
			// the count at offset instead of feeding the server's zero to
			// the cache as a known total.
			total = approximateTotal(offset, limit, len(page.Items))
			b.approx.Store(len(page.Items) == limit)
		}
		return page.Items, total, nil
	}
	cache, err := pagecache.New(fetch, opts, logger)
	if err != nil {
		return nil, fmt.Errorf("creating errors cache: %w", err)
	}
	b.cache = cache
	return b, nil
}

// TotalIsApproximate reports whether the displayed total is an estimate.
// It turns false once a short final page pins the exact count.
func (b *ErrorsBrowser) TotalIsApproximate() bool {
	return b.approx.Load()
}

// approximateTotal estimates the collection size when the server omits it.
// A short or empty window is the end of the collection (exact count); a
// full window implies at least one more item beyond what was fetched.
func approximateTotal(offset, limit, got int) int {
	if got < limit {
		return offset + got
	}
	return offset + got + 1
}

// GoToPage requests display of the given 0-based page.
func (b *ErrorsBrowser) GoToPage(ctx context.Context, page int) error {
	return b.cache.GoToPage(ctx, page)
}

// CurrentPageData returns the rows of the displayed page.
func (b *ErrorsBrowser) CurrentPageData() []backend.AttemptError {
	return b.cache.CurrentPageData()
}

// CurrentPage returns the displayed page index.
func (b *ErrorsBrowser) CurrentPage() int { return b.cache.CurrentPage() }

// TotalPages returns the known (possibly approximated) page count.
func (b *ErrorsBrowser) TotalPages() int { return b.cache.TotalPages() }

// IsLoading reports whether a fetch is in flight.
func (b *ErrorsBrowser) IsLoading() bool { return b.cache.IsLoading() }

// Err returns the most recent unrecovered fetch error.
func (b *ErrorsBrowser) Err() error { return b.cache.Err() }
