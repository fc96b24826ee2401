package stake

import (
	"context"
	"errors"
	"strings"

	"github.com/gregtusar/stake/pkg/models"
)

// ProductsClient looks up tradeable products. Nothing is cached.
type ProductsClient struct {
	c *Client
}

// Get returns the product for symbol, or nil when the broker does not know
// it.
func (p *ProductsClient) Get(ctx context.Context, symbol string) (*models.Product, error) {
	ex, err := p.c.session()
	if err != nil {
		return nil, err
	}
	symbol = models.NormalizeTicker(symbol)
	if symbol == "" {
		return nil, invalid("symbol", "must not be empty")
	}
	endpoint, err := ex.apiURL("product lookup", ex.Endpoints.Product, "symbol", symbol)
	if err != nil {
		return nil, err
	}

	if ex.Shape.EnvelopedProducts {
		var resp struct {
			Products []models.Product `json:"products"`
		}
		if err := p.c.get(ctx, endpoint, nil, &resp); err != nil {
			return nil, notFoundAsNil(err)
		}
		if len(resp.Products) == 0 {
			return nil, nil
		}
		return &resp.Products[0], nil
	}

	var product models.Product
	if err := p.c.get(ctx, endpoint, nil, &product); err != nil {
		return nil, notFoundAsNil(err)
	}
	if product.Symbol == "" {
		return nil, nil
	}
	return &product, nil
}

// Search returns instruments whose name or symbol matches keyword.
func (p *ProductsClient) Search(ctx context.Context, keyword string) ([]models.Instrument, error) {
	ex, err := p.c.session()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(keyword) == "" {
		return nil, invalid("keyword", "must not be empty")
	}
	endpoint, err := ex.apiURL("product search", ex.Endpoints.ProductSuggestions, "keyword", strings.TrimSpace(keyword))
	if err != nil {
		return nil, err
	}

	var resp struct {
		Instruments []models.Instrument `json:"instruments"`
	}
	if err := p.c.get(ctx, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Instruments, nil
}

func (p *ProductsClient) FromInstrument(ctx context.Context, instrument models.Instrument) (*models.Product, error) {
	return p.Get(ctx, instrument.Symbol)
}

// InstrumentID resolves symbol to the identifier trades are placed against.
func (p *ProductsClient) InstrumentID(ctx context.Context, symbol string) (string, error) {
	ex, err := p.c.session()
	if err != nil {
		return "", err
	}

	if !ex.Shape.ResolveInstrumentBySymbol {
		product, err := p.Get(ctx, symbol)
		if err != nil {
			return "", err
		}
		if product == nil {
			return "", invalid("symbol", "unknown symbol %q", symbol)
		}
		return product.ID.String(), nil
	}

	symbol = models.NormalizeTicker(symbol)
	if symbol == "" {
		return "", invalid("symbol", "must not be empty")
	}
	endpoint, err := ex.apiURL("instrument lookup", ex.Endpoints.InstrumentFromSymbol, "symbol", symbol)
	if err != nil {
		return "", err
	}
	var resp struct {
		InstrumentID string `json:"instrumentId"`
	}
	if err := p.c.post(ctx, endpoint, struct{}{}, &resp); err != nil {
		if notFoundAsNil(err) == nil {
			return "", invalid("symbol", "unknown symbol %q", symbol)
		}
		return "", err
	}
	if resp.InstrumentID == "" {
		return "", invalid("symbol", "unknown symbol %q", symbol)
	}
	return resp.InstrumentID, nil
}

// notFoundAsNil swallows a 404 so lookups can report absence as a nil value.
func notFoundAsNil(err error) error {
	var failed *RequestFailedError
	if errors.As(err, &failed) && failed.IsNotFound() {
		return nil
	}
	return err
}
