package stake

import (
	"context"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gregtusar/stake/pkg/models"
)

const (
	// MinStopBuyCash is the smallest cash amount the broker accepts for a
	// stop buy.
	MinStopBuyCash = 10.0

	DefaultVerifyLookback = 10

	unverifiableReason = "could not confirm the trade"
)

// TradesClient submits buy and sell orders and checks that the broker
// actually recorded them.
type TradesClient struct {
	c *Client
}

func (t *TradesClient) Buy(ctx context.Context, req models.TradeRequest) (*models.Trade, error) {
	if req.Side != models.SideBuy {
		return nil, invalid("side", "expected %s, got %q", models.SideBuy, req.Side)
	}
	return t.Submit(ctx, req)
}

func (t *TradesClient) Sell(ctx context.Context, req models.TradeRequest) (*models.Trade, error) {
	if req.Side != models.SideSell {
		return nil, invalid("side", "expected %s, got %q", models.SideSell, req.Side)
	}
	return t.Submit(ctx, req)
}

// Submit validates req, places the order and verifies it against the
// account's recent activity. A confirmed trade is returned with
// VerdictConfirmed; a rejected or unverifiable one as *TradeFailedError.
//
// Submission is not idempotent: no idempotency key is sent, so retrying
// after a transport error may place the order twice. Check Orders.List or
// Transactions.List before resubmitting.
func (t *TradesClient) Submit(ctx context.Context, req models.TradeRequest) (*models.Trade, error) {
	ex, err := t.c.session()
	if err != nil {
		return nil, err
	}
	req.Symbol = strings.TrimSpace(req.Symbol)
	req.InstrumentID = strings.TrimSpace(req.InstrumentID)
	if err := validateTrade(ex, req); err != nil {
		return nil, err
	}

	var trade *models.Trade
	if ex.Shape.ASXPayloads {
		trade, err = t.submitASX(ctx, ex, req)
	} else {
		trade, err = t.submitUS(ctx, ex, req)
	}
	if err != nil {
		return nil, err
	}

	t.c.logger.WithFields(logrus.Fields{
		"order_id": trade.OrderID,
		"symbol":   trade.Symbol,
		"side":     trade.Side,
		"type":     trade.Type,
	}).Info("Trade submitted")

	return t.verify(ctx, ex, trade)
}

// Verify re-checks a previously submitted trade against the account's recent
// activity.
func (t *TradesClient) Verify(ctx context.Context, trade *models.Trade) (*models.Trade, error) {
	ex, err := t.c.session()
	if err != nil {
		return nil, err
	}
	if trade == nil {
		return nil, invalid("trade", "must not be nil")
	}
	return t.verify(ctx, ex, trade)
}

func validateTrade(ex ExchangeConfig, req models.TradeRequest) error {
	if req.Side != models.SideBuy && req.Side != models.SideSell {
		return invalid("side", "unknown side %q", req.Side)
	}
	if req.Symbol == "" && req.InstrumentID == "" {
		return invalid("symbol", "a symbol or instrument id is required")
	}

	switch req.Type {
	case models.OrderTypeMarket:
	case models.OrderTypeLimit:
		if req.LimitPrice <= 0 {
			return invalid("limitPrice", "limit orders need a positive limit price")
		}
	case models.OrderTypeStop:
		if !ex.Shape.StopOrders {
			return invalid("type", "stop orders are not supported on the %s exchange", ex.Name)
		}
		if req.StopPrice <= 0 {
			return invalid("stopPrice", "stop orders need a positive stop price")
		}
	default:
		return invalid("type", "unknown order type %q", req.Type)
	}

	if ex.Shape.WholeUnits {
		if req.Quantity != math.Trunc(req.Quantity) {
			return invalid("units", "must be a whole number, got %v", req.Quantity)
		}
		if req.Units() < 1 {
			return invalid("units", "at least one whole unit is required")
		}
		if req.Price < 0 {
			return invalid("price", "must not be negative")
		}
		return nil
	}

	if req.Side == models.SideBuy {
		switch req.Type {
		case models.OrderTypeMarket:
			if req.AmountCash <= 0 {
				return invalid("amountCash", "market buys need a positive cash amount")
			}
		case models.OrderTypeStop:
			if req.AmountCash < MinStopBuyCash {
				return invalid("amountCash", "stop buys need at least $%.0f", MinStopBuyCash)
			}
		case models.OrderTypeLimit:
			if req.Quantity <= 0 {
				return invalid("quantity", "must be positive")
			}
		}
		return nil
	}

	if req.Quantity <= 0 {
		return invalid("quantity", "must be positive")
	}
	return nil
}

func (t *TradesClient) submitUS(ctx context.Context, ex ExchangeConfig, req models.TradeRequest) (*models.Trade, error) {
	template := ex.Endpoints.Buy
	if req.Side == models.SideSell {
		template = ex.Endpoints.Sell
	}
	endpoint, err := ex.apiURL(strings.ToLower(string(req.Side)), template)
	if err != nil {
		return nil, err
	}

	itemID := req.InstrumentID
	if itemID == "" {
		product, err := t.c.Products.Get(ctx, req.Symbol)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, invalid("symbol", "unknown symbol %q", req.Symbol)
		}
		itemID = product.ID.String()
		if req.Symbol == "" {
			req.Symbol = product.Symbol
		}
	}

	userID := ""
	if u := t.c.User(); u != nil {
		userID = u.ID
	}

	var acks []usTradeResponse
	if err := t.c.post(ctx, endpoint, newUSTradeRequest(userID, itemID, req), &acks); err != nil {
		return nil, err
	}
	if len(acks) == 0 {
		return nil, &TradeFailedError{Verdict: models.VerdictUnverifiable, Reason: "empty acknowledgment"}
	}
	return acks[0].toModel(req), nil
}

func (t *TradesClient) submitASX(ctx context.Context, ex ExchangeConfig, req models.TradeRequest) (*models.Trade, error) {
	template := ex.Endpoints.Buy
	if req.Side == models.SideSell {
		template = ex.Endpoints.Sell
	}
	endpoint, err := ex.apiURL(strings.ToLower(string(req.Side)), template)
	if err != nil {
		return nil, err
	}

	code := req.InstrumentID
	if code == "" {
		if code, err = t.c.Products.InstrumentID(ctx, req.Symbol); err != nil {
			return nil, err
		}
	}

	price := req.Price
	if req.Type == models.OrderTypeLimit {
		price = req.LimitPrice
	}
	if req.Type == models.OrderTypeMarket && price == 0 && ex.Shape.QuoteMarketOrders {
		if price, err = t.quote(ctx, req); err != nil {
			return nil, err
		}
	}

	var resp struct {
		Order asxOrder `json:"order"`
	}
	if err := t.c.post(ctx, endpoint, newASXTradeRequest(code, price, req), &resp); err != nil {
		return nil, err
	}
	return resp.Order.toTrade(req), nil
}

// quote prices a market order at the ask for buys and the bid for sells.
func (t *TradesClient) quote(ctx context.Context, req models.TradeRequest) (float64, error) {
	if req.Symbol == "" {
		return 0, invalid("price", "market orders need a price or a symbol to quote")
	}
	product, err := t.c.Products.Get(ctx, req.Symbol)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, invalid("symbol", "unknown symbol %q", req.Symbol)
	}

	side := product.Ask
	if req.Side == models.SideSell {
		side = product.Bid
	}
	switch {
	case side.Valid && side.Value > 0:
		return side.Value, nil
	case product.LastPrice() > 0:
		return product.LastPrice(), nil
	}
	return 0, invalid("price", "no quote available for %s", req.Symbol)
}

func (t *TradesClient) verify(ctx context.Context, ex ExchangeConfig, trade *models.Trade) (*models.Trade, error) {
	entry := t.c.logger.WithField("order_id", trade.OrderID)

	unverifiable := func() error {
		trade.Verdict = models.VerdictUnverifiable
		return &TradeFailedError{
			OrderID: trade.OrderID,
			Verdict: models.VerdictUnverifiable,
			Reason:  unverifiableReason,
			Trade:   trade,
		}
	}

	if trade.OrderID == "" {
		entry.Warn("Trade acknowledgment carried no order id")
		return nil, unverifiable()
	}

	var (
		statuses []string
		found    bool
		err      error
	)
	if ex.Shape.ASXPayloads {
		statuses, found, err = t.lookupASX(ctx, trade.OrderID)
	} else {
		statuses, found, err = t.lookupUS(ctx, trade.OrderID)
	}
	if err != nil {
		entry.WithError(err).Warn("Trade verification lookup failed")
		return nil, unverifiable()
	}
	if !found {
		entry.Warn("Trade not found in recent activity")
		return nil, unverifiable()
	}

	if reason, rejected := matchRejection(ex, statuses); rejected {
		trade.Verdict = models.VerdictRejected
		trade.RejectReason = reason
		entry.WithField("reason", reason).Warn("Trade rejected")
		return nil, &TradeFailedError{
			OrderID: trade.OrderID,
			Verdict: models.VerdictRejected,
			Reason:  reason,
			Trade:   trade,
		}
	}

	trade.Verdict = models.VerdictConfirmed
	entry.Debug("Trade confirmed")
	return trade, nil
}

func (t *TradesClient) lookupUS(ctx context.Context, orderID string) ([]string, bool, error) {
	txs, err := t.c.Transactions.List(ctx, models.TransactionFilter{
		Limit:     t.c.verifyLookback,
		Direction: models.DirectionPrev,
	})
	if err != nil {
		return nil, false, err
	}
	for _, tx := range txs.Transactions {
		if tx.OrderID == orderID {
			return []string{tx.Reason}, true, nil
		}
	}
	return nil, false, nil
}

// lookupASX checks the pending orders first, then the trade activity.
func (t *TradesClient) lookupASX(ctx context.Context, orderID string) ([]string, bool, error) {
	orders, err := t.c.Orders.List(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, o := range orders {
		if o.ID == orderID {
			return []string{o.Status, o.CompletionType}, true, nil
		}
	}

	txs, err := t.c.Transactions.List(ctx, models.TransactionFilter{
		Limit: t.c.verifyLookback,
		Sort:  []models.Sort{{Attribute: "placedTimestamp", Direction: models.SortDesc}},
	})
	if err != nil {
		return nil, false, err
	}
	for _, tx := range txs.Transactions {
		if tx.OrderID == orderID {
			return []string{tx.Status, tx.CompletionType, tx.Reason}, true, nil
		}
	}
	return nil, false, nil
}

// matchRejection returns the first status text the exchange's rejection
// pattern matches.
func matchRejection(ex ExchangeConfig, statuses []string) (string, bool) {
	if ex.RejectionPattern == nil {
		return "", false
	}
	for _, s := range statuses {
		if s != "" && ex.RejectionPattern.MatchString(s) {
			return s, true
		}
	}
	return "", false
}
