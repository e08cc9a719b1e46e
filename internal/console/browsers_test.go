package console_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/koopa0/scout/internal/backend"
	"github.com/koopa0/scout/internal/console"
	"github.com/koopa0/scout/internal/pagecache"
	"github.com/koopa0/scout/internal/testutil"
)

func seedFakeAttempts(f *testutil.FakeBackend, n int) {
	now := time.Now().UTC().Format(time.RFC3339)
	for i := range n {
		f.Attempts = append(f.Attempts, map[string]any{
			"id":           i,
			"connector_id": 1,
			"status":       "success",
			"time_updated": now,
		})
	}
}

func seedFakeErrors(f *testutil.FakeBackend, n int) {
	now := time.Now().UTC().Format(time.RFC3339)
	for i := range n {
		f.AttemptErrors = append(f.AttemptErrors, map[string]any{
			"id":               i,
			"index_attempt_id": 1,
			"document_id":      fmt.Sprintf("doc-%d", i),
			"failure_message":  "embedding failed",
			"is_resolved":      false,
			"time_created":     now,
		})
	}
}

func TestAttemptsBrowser(t *testing.T) {
	t.Parallel()

	f := testutil.NewFakeBackend(t)
	seedFakeAttempts(f, 23)
	client, err := backend.New(backend.Config{BaseURL: f.URL()}, testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}

	browser, err := console.NewAttemptsBrowser(client, 1,
		pagecache.Options{ItemsPerPage: 10, PagesPerBatch: 1}, testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := browser.GoToPage(ctx, 2); err != nil {
		t.Fatal(err)
	}
	rows := browser.CurrentPageData()
	if len(rows) != 3 {
		t.Fatalf("last page has %d rows, want 3", len(rows))
	}
	if rows[0].ID != 20 {
		t.Errorf("first row of page 2 has ID %d, want 20", rows[0].ID)
	}
	if got := browser.TotalPages(); got != 3 {
		t.Errorf("TotalPages() = %d, want 3", got)
	}

	// Refresh drops the cache; the next request hits the network again.
	before := f.Requests("GET", "/api/manage/admin/connector/{id}/index-attempts")
	browser.Refresh()
	if err := browser.GoToPage(ctx, 0); err != nil {
		t.Fatal(err)
	}
	after := f.Requests("GET", "/api/manage/admin/connector/{id}/index-attempts")
	if after != before+1 {
		t.Errorf("post-Refresh request count went %d -> %d, want +1", before, after)
	}
}

func TestErrorsBrowserApproximateTotal(t *testing.T) {
	t.Parallel()

	f := testutil.NewFakeBackend(t)
	f.OmitErrorTotal = true
	seedFakeErrors(f, 12)
	client, err := backend.New(backend.Config{BaseURL: f.URL()}, testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}

	browser, err := console.NewErrorsBrowser(client, 1,
		pagecache.Options{ItemsPerPage: 5, PagesPerBatch: 1}, testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	// A full first page only proves at least one more item exists.
	if err := browser.GoToPage(ctx, 0); err != nil {
		t.Fatal(err)
	}
	if !browser.TotalIsApproximate() {
		t.Error("TotalIsApproximate() = false on a full page without a server total")
	}
	if got := browser.TotalPages(); got != 2 {
		t.Errorf("TotalPages() = %d after page 0, want 2 (approximate)", got)
	}

	// Paging forward refines the estimate.
	if err := browser.GoToPage(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if got := browser.TotalPages(); got != 3 {
		t.Errorf("TotalPages() = %d after page 1, want 3 (approximate)", got)
	}

	// The short final page pins the exact count.
	if err := browser.GoToPage(ctx, 2); err != nil {
		t.Fatal(err)
	}
	if browser.TotalIsApproximate() {
		t.Error("TotalIsApproximate() = true after the final page")
	}
	if got := len(browser.CurrentPageData()); got != 2 {
		t.Errorf("final page has %d rows, want 2", got)
	}
	if got := browser.TotalPages(); got != 3 {
		t.Errorf("TotalPages() = %d after final page, want 3 (exact)", got)
	}
}

func TestErrorsBrowserTotalOnPageBoundary(t *testing.T) {
	t.Parallel()

	f := testutil.NewFakeBackend(t)
	f.OmitErrorTotal = true
	seedFakeErrors(f, 10)
	client, err := backend.New(backend.Config{BaseURL: f.URL()}, testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}

	browser, err := console.NewErrorsBrowser(client, 1,
		pagecache.Options{ItemsPerPage: 5, PagesPerBatch: 1}, testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	// Two full pages: the estimate still promises a third.
	for page := range 2 {
		if err := browser.GoToPage(ctx, page); err != nil {
			t.Fatal(err)
		}
	}
	if got := browser.TotalPages(); got != 3 {
		t.Fatalf("TotalPages() = %d after two full pages, want 3 (approximate)", got)
	}

	// The promised page is empty. That pins the exact count at 10 items
	// rather than collapsing the total to zero.
	if err := browser.GoToPage(ctx, 2); !errors.Is(err, pagecache.ErrPageOutOfRange) {
		t.Fatalf("empty trailing page: expected ErrPageOutOfRange, got %v", err)
	}
	if got := browser.TotalPages(); got != 2 {
		t.Errorf("TotalPages() = %d after empty trailing page, want 2", got)
	}
	if browser.TotalIsApproximate() {
		t.Error("TotalIsApproximate() = true after the count was pinned")
	}
	if got := browser.CurrentPage(); got != 1 {
		t.Errorf("rejected request moved CurrentPage to %d", got)
	}
	if got := len(browser.CurrentPageData()); got != 5 {
		t.Errorf("displayed page has %d rows, want 5", got)
	}
}

func TestErrorsBrowserServerTotal(t *testing.T) {
	t.Parallel()

	f := testutil.NewFakeBackend(t)
	seedFakeErrors(f, 7)
	client, err := backend.New(backend.Config{BaseURL: f.URL()}, testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}

	browser, err := console.NewErrorsBrowser(client, 1,
		pagecache.Options{ItemsPerPage: 5, PagesPerBatch: 1}, testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}

	if err := browser.GoToPage(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	if browser.TotalIsApproximate() {
		t.Error("TotalIsApproximate() = true with a server-reported total")
	}
	if got := browser.TotalPages(); got != 2 {
		t.Errorf("TotalPages() = %d, want 2", got)
	}
}
