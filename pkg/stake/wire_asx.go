package stake

import (
	"time"

	"github.com/gregtusar/stake/pkg/models"
)

const asxMarketToLimit = "MARKET_TO_LIMIT"

func asxOrderType(t string) models.OrderType {
	if t == asxMarketToLimit {
		return models.OrderTypeMarket
	}
	return models.OrderType(t)
}

type asxOrder struct {
	ID                    string           `json:"id"`
	InstrumentCode        string           `json:"instrumentCode"`
	InstrumentID          string           `json:"instrumentId"`
	Side                  string           `json:"side"`
	Type                  string           `json:"type"`
	OrderStatus           string           `json:"orderStatus"`
	OrderCompletionType   string           `json:"orderCompletionType"`
	AveragePrice          models.NullFloat `json:"averagePrice"`
	LimitPrice            models.NullFloat `json:"limitPrice"`
	FilledUnits           models.Float     `json:"filledUnits"`
	UnitsRemaining        models.NullFloat `json:"unitsRemaining"`
	EstimatedBrokerage    models.NullFloat `json:"estimatedBrokerage"`
	EstimatedExchangeFees models.NullFloat `json:"estimatedExchangeFees"`
	Broker                string           `json:"broker"`
	Validity              models.Validity  `json:"validity"`
	ValidityDate          models.Timestamp `json:"validityDate"`
	PlacedTimestamp       models.Timestamp `json:"placedTimestamp"`
	CompletedTimestamp    models.Timestamp `json:"completedTimestamp"`
	ExpiresAt             models.Timestamp `json:"expiresAt"`
}

func (o asxOrder) toModel() models.Order {
	return models.Order{
		ID:                    o.ID,
		Symbol:                o.InstrumentCode,
		InstrumentID:          o.InstrumentID,
		Side:                  models.ParseSide(o.Side),
		Type:                  asxOrderType(o.Type),
		Status:                o.OrderStatus,
		CompletionType:        o.OrderCompletionType,
		Price:                 o.LimitPrice,
		LimitPrice:            o.LimitPrice,
		AveragePrice:          o.AveragePrice,
		Quantity:              o.FilledUnits + models.Float(o.UnitsRemaining.Value),
		FilledQuantity:        o.FilledUnits,
		RemainingQuantity:     o.UnitsRemaining,
		EstimatedBrokerage:    o.EstimatedBrokerage,
		EstimatedExchangeFees: o.EstimatedExchangeFees,
		Broker:                o.Broker,
		Validity:              o.Validity,
		ValidityDate:          o.ValidityDate,
		PlacedAt:              o.PlacedTimestamp,
		CompletedAt:           o.CompletedTimestamp,
		ExpiresAt:             o.ExpiresAt,
	}
}

func (o asxOrder) toTrade(req models.TradeRequest) *models.Trade {
	order := o.toModel()
	symbol := order.Symbol
	if symbol == "" {
		symbol = req.Symbol
	}
	side := order.Side
	if side == "" {
		side = req.Side
	}
	return &models.Trade{
		OrderID:    order.ID,
		ItemID:     order.InstrumentID,
		Symbol:     symbol,
		Side:       side,
		Type:       req.Type,
		Quantity:   models.Float(req.Units()),
		LimitPrice: order.LimitPrice,
		Status:     order.Status,
		PlacedAt:   order.PlacedAt,
		Verdict:    models.VerdictPending,
	}
}

// asxTradeRequest is the order placement payload.
type asxTradeRequest struct {
	InstrumentCode string          `json:"instrumentCode"`
	Units          int64           `json:"units"`
	Price          float64         `json:"price,omitempty"`
	Side           models.Side     `json:"side"`
	Type           string          `json:"type"`
	Validity       models.Validity `json:"validity"`
	ValidityDate   string          `json:"validityDate,omitempty"`
}

func newASXTradeRequest(instrumentCode string, price float64, req models.TradeRequest) asxTradeRequest {
	orderType := string(req.Type)
	if req.Type == models.OrderTypeMarket {
		orderType = asxMarketToLimit
	}
	validity := req.Validity
	if validity == "" {
		validity = models.ValidityGoodTillCanceled
	}
	body := asxTradeRequest{
		InstrumentCode: instrumentCode,
		Units:          req.Units(),
		Price:          price,
		Side:           req.Side,
		Type:           orderType,
		Validity:       validity,
	}
	if !req.ValidityDate.IsZero() {
		body.ValidityDate = req.ValidityDate.Format(time.DateOnly)
	}
	return body
}

// asxTransaction is a trade activity entry; its id is the order id.
type asxTransaction struct {
	models.Transaction
	ID string `json:"id"`
}

func (t asxTransaction) toModel() models.Transaction {
	tx := t.Transaction
	if tx.OrderID == "" {
		tx.OrderID = t.ID
	}
	if tx.Symbol == "" {
		tx.Symbol = tx.InstrumentCode
	}
	return tx
}

type asxTransactions struct {
	Items []asxTransaction `json:"items"`
	models.Page
}

// asxInFlight maps a pending funding record onto the in-flight shape.
func asxInFlight(r models.FundingRecord) models.FundsInFlight {
	inserted := ""
	if !r.InsertedAt.IsZero() {
		inserted = r.InsertedAt.Format(time.RFC3339)
	}
	return models.FundsInFlight{
		Type:            string(r.Action),
		TransactionType: string(r.Side),
		InsertDateTime:  inserted,
		FromAmount:      models.Float(r.Amount.Value),
		ToAmount:        models.Float(r.Amount.Value),
	}
}
