package stake

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/gregtusar/stake/pkg/models"
)

type MarketClient struct {
	c *Client
}

// Get returns the current market status. The US endpoint wraps it in a
// "response" object.
func (m *MarketClient) Get(ctx context.Context) (*models.MarketStatus, error) {
	ex, err := m.c.session()
	if err != nil {
		return nil, err
	}
	endpoint, err := ex.apiURL("market status", ex.Endpoints.MarketStatus)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := m.c.get(ctx, endpoint, nil, &raw); err != nil {
		return nil, err
	}

	var envelope struct {
		Response *models.MarketStatus `json:"response"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Response != nil {
		return envelope.Response, nil
	}
	var status models.MarketStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, errors.Wrap(err, "failed to decode market status")
	}
	return &status, nil
}

func (m *MarketClient) IsOpen(ctx context.Context) (bool, error) {
	status, err := m.Get(ctx)
	if err != nil {
		return false, err
	}
	return status.IsOpen(), nil
}
