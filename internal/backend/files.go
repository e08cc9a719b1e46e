package backend

import (
	"context"
	"fmt"
	"net/http"
)

// ListConnectorFiles returns every file tracked by a file connector.
func (c *Client) ListConnectorFiles(ctx context.Context, connectorID int) ([]ConnectorFile, error) {
	var files []ConnectorFile
	path := fmt.Sprintf("/api/manage/admin/connector/%d/files", connectorID)
	if err := c.makeRequest(ctx, http.MethodGet, path, nil, nil, &files); err != nil {
		return nil, fmt.Errorf("listing connector files: %w", err)
	}
	return files, nil
}

// UpdateConnectorFiles submits the changed file rows along with the IDs of
// removed files. Removing every file is destructive; callers confirm with
// the user before reaching this point.
func (c *Client) UpdateConnectorFiles(ctx context.Context, connectorID int, changed []ConnectorFile, removedIDs []int) error {
	path := fmt.Sprintf("/api/manage/admin/connector/%d/files", connectorID)
	body := struct {
		Changed []ConnectorFile `json:"changed"`
		Removed []int           `json:"removed"`
	}{Changed: changed, Removed: removedIDs}
	if err := c.makeRequest(ctx, http.MethodPut, path, nil, body, nil); err != nil {
		return fmt.Errorf("updating connector files: %w", err)
	}
	return nil
}
