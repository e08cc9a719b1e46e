// Package pagecache provides a lazily-populated page cache for remote
// ordered collections.
//
// The cache fetches pages in batches (several pages per network round trip),
// keyed by batch index. Requesting a page whose batch is already cached is
// synchronous and never touches the network; requesting an uncached page
// triggers exactly one fetch for the whole containing batch, with concurrent
// requests for the same batch coalesced into a single in-flight call.
//
// Display ordering is last-request-wins: when page requests overlap, the
// cache reflects the most recently requested page once its data arrives,
// regardless of the order in which the underlying fetches resolve.
//
// Thread Safety: all methods are safe for concurrent use.
package pagecache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/koopa0/scout/internal/log"
)

var (
	// ErrPageOutOfRange indicates a page request outside [0, TotalPages).
	// The request is a no-op; no cache or display state changes.
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrInvalidOptions indicates ItemsPerPage or PagesPerBatch below 1.
	ErrInvalidOptions = errors.New("invalid pagination options")

	// ErrInvalidated indicates the cache was invalidated while the
	// request's fetch was in flight. The fetched data was discarded and the
	// page was not applied; re-request it against the rebuilt cache.
	ErrInvalidated = errors.New("cache invalidated during fetch")
)

// FetchFunc loads one window of the remote collection.
// offset and limit are item counts, not page counts. Implementations must
// return the total number of items in the collection as reported by the
// server; a negative total means "unknown".
type FetchFunc[T any] func(ctx context.Context, offset, limit int) (items []T, totalItems int, err error)

// Options configures the page and batch geometry of a Cache.
type Options struct {
	// ItemsPerPage is the number of rows per displayed page. Must be >= 1.
	ItemsPerPage int

	// PagesPerBatch is the number of pages fetched per network round trip.
	// Must be >= 1. A batch is the unit of caching and invalidation.
	PagesPerBatch int
}

// batchFetch tracks a single in-flight batch load so that concurrent
// GoToPage calls into the same batch share one network request.
type batchFetch struct {
	done chan struct{} // closed when the fetch resolves
	err  error
}

// Cache is a paginated fetch cache over a remote ordered collection.
//
// The zero value is not usable - use New.
type Cache[T any] struct {
	fetch  FetchFunc[T]
	opts   Options
	logger log.Logger

	mu          sync.Mutex
	batches     map[int][]T // batch index -> concatenated batch items
	inflight    map[int]*batchFetch
	totalItems  int
	totalKnown  bool
	currentPage int
	currentData []T
	loading     int // number of GoToPage calls awaiting a fetch
	lastErr     error

	// reqToken identifies the most recent GoToPage call. A fetch whose
	// token is no longer the latest may still populate the batch cache,
	// but must not update the displayed page.
	reqToken uint64

	// generation is bumped by Invalidate so that fetches started against
	// the old cache cannot repopulate the new one.
	generation uint64
}

// New creates a Cache backed by the given fetch function.
func New[T any](fetch FetchFunc[T], opts Options, logger log.Logger) (*Cache[T], error) {
	if fetch == nil {
		return nil, errors.New("fetch function is required")
	}
	if opts.ItemsPerPage < 1 || opts.PagesPerBatch < 1 {
		return nil, fmt.Errorf("%w: items_per_page=%d pages_per_batch=%d",
			ErrInvalidOptions, opts.ItemsPerPage, opts.PagesPerBatch)
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Cache[T]{
		fetch:    fetch,
		opts:     opts,
		logger:   logger,
		batches:  make(map[int][]T),
		inflight: make(map[int]*batchFetch),
	}, nil
}

// GoToPage requests display of the given 0-based page.
//
// If the containing batch is cached the call is synchronous and returns nil
// without any network activity. Otherwise it blocks until the batch fetch
// resolves or ctx is canceled. When requests overlap, the displayed page is
// always the most recently requested one, never an earlier request that
// happened to resolve later.
//
// Out-of-range pages are rejected with ErrPageOutOfRange and change no state.
// If Invalidate runs while this call's fetch is in flight, the call returns
// ErrInvalidated instead of silently leaving the page unapplied.
func (c *Cache[T]) GoToPage(ctx context.Context, page int) error {
	c.mu.Lock()

	if page < 0 || (c.totalKnown && page >= c.totalPagesLocked()) {
		total := c.totalPagesLocked()
		c.mu.Unlock()
		c.logger.Warn("page request out of range", "page", page, "total_pages", total)
		return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, total)
	}

	// This call is now the latest request; earlier in-flight fetches may
	// still fill the cache but lose the right to update the display.
	c.reqToken++
	token := c.reqToken
	gen := c.generation

	batch := page / c.opts.PagesPerBatch
	if items, ok := c.batches[batch]; ok {
		c.applyPageLocked(page, items)
		c.mu.Unlock()
		return nil
	}

	fetch, joined := c.inflight[batch]
	if !joined {
		fetch = &batchFetch{done: make(chan struct{})}
		c.inflight[batch] = fetch
	}
	c.loading++
	c.mu.Unlock()

	if !joined {
		c.runBatchFetch(ctx, batch, fetch)
	}

	select {
	case <-fetch.done:
	case <-ctx.Done():
		c.finishLoad()
		return ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading--

	if fetch.err != nil {
		// Failed batches are not cached, so the next request retries.
		if token == c.reqToken {
			c.lastErr = fetch.err
		}
		return fetch.err
	}

	if gen != c.generation {
		// Invalidate orphaned this fetch; its data was dropped and the
		// requested page never applied.
		return fmt.Errorf("%w: page %d", ErrInvalidated, page)
	}

	if token != c.reqToken {
		// A later request supersedes this one; leave the display alone.
		c.logger.Debug("stale page response discarded", "page", page)
		return nil
	}

	if page >= c.totalPagesLocked() {
		// The fetch revealed the collection is shorter than requested.
		c.logger.Warn("page request out of range", "page", page, "total_pages", c.totalPagesLocked())
		return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, c.totalPagesLocked())
	}

	c.applyPageLocked(page, c.batches[batch])
	return nil
}

// runBatchFetch performs the network load for one batch and publishes the
// result to every waiter. The mutex is not held across the network call.
func (c *Cache[T]) runBatchFetch(ctx context.Context, batch int, fetch *batchFetch) {
	window := c.opts.PagesPerBatch * c.opts.ItemsPerPage
	offset := batch * window

	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	items, total, err := c.fetch(ctx, offset, window)

	c.mu.Lock()
	switch {
	case err != nil:
		fetch.err = err
		c.logger.Warn("batch fetch failed", "batch", batch, "error", err)
	case gen != c.generation:
		// Invalidate ran while the fetch was in flight; drop the result.
		c.logger.Debug("batch response discarded after invalidation", "batch", batch)
	default:
		c.batches[batch] = items
		if total >= 0 {
			c.totalItems = total
			c.totalKnown = true
		}
	}
	// Invalidate may have replaced the inflight map; only remove the entry
	// this fetch still owns.
	if c.inflight[batch] == fetch {
		delete(c.inflight, batch)
	}
	c.mu.Unlock()
	close(fetch.done)
}

func (c *Cache[T]) finishLoad() {
	c.mu.Lock()
	c.loading--
	c.mu.Unlock()
}

// applyPageLocked updates the displayed page from cached batch items.
// Caller must hold c.mu.
func (c *Cache[T]) applyPageLocked(page int, batchItems []T) {
	start := (page % c.opts.PagesPerBatch) * c.opts.ItemsPerPage
	end := min(start+c.opts.ItemsPerPage, len(batchItems))
	if start > len(batchItems) {
		start, end = 0, 0
	}
	c.currentPage = page
	c.currentData = batchItems[start:end]
	c.lastErr = nil
}

// CurrentPageData returns a copy of the rows of the displayed page.
// Empty while nothing has loaded yet or the collection is empty.
func (c *Cache[T]) CurrentPageData() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.currentData))
	copy(out, c.currentData)
	return out
}

// CurrentPage returns the 0-based index of the displayed page.
func (c *Cache[T]) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPage
}

// TotalPages returns the page count derived from the server-reported item
// total, or 0 when the total is unknown or zero.
func (c *Cache[T]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPagesLocked()
}

func (c *Cache[T]) totalPagesLocked() int {
	if !c.totalKnown || c.totalItems <= 0 {
		return 0
	}
	return (c.totalItems + c.opts.ItemsPerPage - 1) / c.opts.ItemsPerPage
}

// TotalItems returns the server-reported item total and whether it is known.
func (c *Cache[T]) TotalItems() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalItems, c.totalKnown
}

// IsLoading reports whether any page request is awaiting a fetch.
func (c *Cache[T]) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading > 0
}

// Err returns the error of the most recent failed fetch, if the failure has
// not been superseded by a successful page display.
func (c *Cache[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Invalidate discards every cached batch and the displayed page. Responses
// from fetches still in flight will not repopulate the display. Used when
// the endpoint or its filters change, to prevent cross-endpoint pollution.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = make(map[int][]T)
	// Requests made after this point must not join orphaned fetches; their
	// waiters get ErrInvalidated and new requests start fresh.
	c.inflight = make(map[int]*batchFetch)
	c.totalItems = 0
	c.totalKnown = false
	c.currentPage = 0
	c.currentData = nil
	c.lastErr = nil
	c.reqToken++   // in-flight responses lose display rights
	c.generation++ // in-flight responses cannot repopulate the cache
}
