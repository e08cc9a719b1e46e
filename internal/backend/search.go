package backend

import (
	"context"
	"fmt"
	"net/http"
)

const searchSettingsPath = "/api/search-settings"

// GetSearchSettings returns the current embedding-model configuration.
func (c *Client) GetSearchSettings(ctx context.Context) (*SearchSettings, error) {
	var settings SearchSettings
	if err := c.makeRequest(ctx, http.MethodGet, searchSettingsPath+"/current", nil, nil, &settings); err != nil {
		return nil, fmt.Errorf("getting search settings: %w", err)
	}
	return &settings, nil
}

// UpdateSearchSettings replaces the embedding-model configuration.
// Changing the model triggers a re-embedding run on the backend.
func (c *Client) UpdateSearchSettings(ctx context.Context, settings SearchSettings) (*SearchSettings, error) {
	var updated SearchSettings
	if err := c.makeRequest(ctx, http.MethodPost, searchSettingsPath, nil, settings, &updated); err != nil {
		return nil, fmt.Errorf("updating search settings: %w", err)
	}
	return &updated, nil
}
