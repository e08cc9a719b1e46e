package backend

import (
	"context"
	"fmt"
	"net/http"
)

// GetAssistant returns one assistant definition.
func (c *Client) GetAssistant(ctx context.Context, id int) (*Assistant, error) {
	var assistant Assistant
	path := fmt.Sprintf("/api/admin/assistant/%d", id)
	if err := c.makeRequest(ctx, http.MethodGet, path, nil, nil, &assistant); err != nil {
		return nil, fmt.Errorf("getting assistant: %w", err)
	}
	return &assistant, nil
}

// UpdateAssistant submits an edited assistant definition and returns the
// server's canonical version.
func (c *Client) UpdateAssistant(ctx context.Context, assistant Assistant) (*Assistant, error) {
	var updated Assistant
	path := fmt.Sprintf("/api/admin/assistant/%d", assistant.ID)
	if err := c.makeRequest(ctx, http.MethodPatch, path, nil, assistant, &updated); err != nil {
		return nil, fmt.Errorf("updating assistant: %w", err)
	}
	return &updated, nil
}
