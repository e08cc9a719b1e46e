package backend

import (
	"context"
	"fmt"
	"net/http"
)

const entityTypesPath = "/api/admin/kg/entity-types"

// GetEntityTypes returns every knowledge-graph entity type definition.
func (c *Client) GetEntityTypes(ctx context.Context) ([]EntityType, error) {
	var types []EntityType
	if err := c.makeRequest(ctx, http.MethodGet, entityTypesPath, nil, nil, &types); err != nil {
		return nil, fmt.Errorf("getting entity types: %w", err)
	}
	return types, nil
}

// UpdateEntityTypes submits only the changed entity-type rows. The write
// is atomic on the server: all rows apply or none do. The response carries
// the canonical updated rows, which take precedence over local state.
func (c *Client) UpdateEntityTypes(ctx context.Context, changed []EntityType) ([]EntityType, error) {
	var updated []EntityType
	if err := c.makeRequest(ctx, http.MethodPut, entityTypesPath, nil, changed, &updated); err != nil {
		return nil, fmt.Errorf("updating entity types: %w", err)
	}
	return updated, nil
}
