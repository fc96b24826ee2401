package stake

import (
	"context"
	"strconv"
	"strings"

	"github.com/gregtusar/stake/pkg/models"
)

// OrdersClient manages pending orders: limit and stop orders that have not
// been filled yet.
type OrdersClient struct {
	c *Client
}

func (o *OrdersClient) List(ctx context.Context) ([]models.Order, error) {
	ex, err := o.c.session()
	if err != nil {
		return nil, err
	}
	endpoint, err := ex.apiURL("list orders", ex.Endpoints.Orders)
	if err != nil {
		return nil, err
	}

	if ex.Shape.ASXPayloads {
		var raw []asxOrder
		if err := o.c.get(ctx, endpoint, nil, &raw); err != nil {
			return nil, err
		}
		orders := make([]models.Order, 0, len(raw))
		for _, r := range raw {
			orders = append(orders, r.toModel())
		}
		return orders, nil
	}

	var raw []usOrder
	if err := o.c.get(ctx, endpoint, nil, &raw); err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(raw))
	for _, r := range raw {
		orders = append(orders, r.toModel())
	}
	return orders, nil
}

// Cancel cancels the pending order and reports whether the broker accepted
// the cancellation.
func (o *OrdersClient) Cancel(ctx context.Context, orderID string) (bool, error) {
	ex, err := o.c.session()
	if err != nil {
		return false, err
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return false, invalid("orderId", "must not be empty")
	}
	endpoint, err := ex.apiURL("cancel order", ex.Endpoints.CancelOrder, "orderId", orderID)
	if err != nil {
		return false, err
	}

	if ex.Shape.CancelWithPost {
		if err := o.c.post(ctx, endpoint, struct{}{}, nil); err != nil {
			return false, err
		}
		return true, nil
	}
	return o.c.delete(ctx, endpoint, nil, nil)
}

func (o *OrdersClient) CancelOrder(ctx context.Context, order models.Order) (bool, error) {
	return o.Cancel(ctx, order.ID)
}

// Brokerage quotes the fee for an order of orderAmount dollars.
func (o *OrdersClient) Brokerage(ctx context.Context, orderAmount float64) (*models.Brokerage, error) {
	ex, err := o.c.session()
	if err != nil {
		return nil, err
	}
	endpoint, err := ex.apiURL("brokerage", ex.Endpoints.Brokerage,
		"orderAmount", strconv.FormatFloat(orderAmount, 'f', -1, 64))
	if err != nil {
		return nil, err
	}
	if orderAmount <= 0 {
		return nil, invalid("orderAmount", "must be positive")
	}

	var brokerage models.Brokerage
	if err := o.c.get(ctx, endpoint, nil, &brokerage); err != nil {
		return nil, err
	}
	return &brokerage, nil
}
