package stake

import (
	"context"

	"github.com/gregtusar/stake/pkg/models"
)

type EquitiesClient struct {
	c *Client
}

// List returns the positions currently held.
func (e *EquitiesClient) List(ctx context.Context) (*models.EquityPositions, error) {
	ex, err := e.c.session()
	if err != nil {
		return nil, err
	}
	endpoint, err := ex.apiURL("equity positions", ex.Endpoints.EquityPositions)
	if err != nil {
		return nil, err
	}

	var positions models.EquityPositions
	if err := e.c.get(ctx, endpoint, nil, &positions); err != nil {
		return nil, err
	}
	return &positions, nil
}
