package stake

import (
	"context"

	"github.com/gregtusar/stake/pkg/models"
)

type FxClient struct {
	c *Client
}

// Convert quotes a currency conversion. No money moves.
func (f *FxClient) Convert(ctx context.Context, req models.FxConversionRequest) (*models.FxConversion, error) {
	ex, err := f.c.session()
	if err != nil {
		return nil, err
	}
	switch {
	case req.FromAmount <= 0:
		return nil, invalid("fromAmount", "must be positive")
	case req.FromCurrency == "" || req.ToCurrency == "":
		return nil, invalid("currency", "both currencies are required")
	case req.FromCurrency == req.ToCurrency:
		return nil, invalid("currency", "cannot convert %s to itself", req.FromCurrency)
	}
	endpoint, err := ex.apiURL("fx conversion", ex.Endpoints.Rate)
	if err != nil {
		return nil, err
	}

	var conversion models.FxConversion
	if err := f.c.post(ctx, endpoint, req, &conversion); err != nil {
		return nil, err
	}
	return &conversion, nil
}
