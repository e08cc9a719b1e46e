package backend

import (
	"context"
	"fmt"
	"net/http"
)

// ListIndexAttempts returns one page of a connector's indexing history.
// pageNum is 0-based.
func (c *Client) ListIndexAttempts(ctx context.Context, connectorID, pageNum, pageSize int) (*Page[IndexAttempt], error) {
	var page Page[IndexAttempt]
	path := fmt.Sprintf("/api/manage/admin/connector/%d/index-attempts", connectorID)
	if err := c.makeRequest(ctx, http.MethodGet, path, pageQuery(pageNum, pageSize), nil, &page); err != nil {
		return nil, fmt.Errorf("listing index attempts: %w", err)
	}
	return &page, nil
}

// ListAttemptErrors returns one page of document-level failures for an
// index attempt. The endpoint does not always report a usable total_items;
// callers handle a zero or missing total (see console.ErrorsBrowser).
func (c *Client) ListAttemptErrors(ctx context.Context, attemptID, pageNum, pageSize int) (*Page[AttemptError], error) {
	var page Page[AttemptError]
	path := fmt.Sprintf("/api/manage/admin/index-attempt/%d/errors", attemptID)
	if err := c.makeRequest(ctx, http.MethodGet, path, pageQuery(pageNum, pageSize), nil, &page); err != nil {
		return nil, fmt.Errorf("listing attempt errors: %w", err)
	}
	return &page, nil
}
