package stake

import (
	"strconv"
	"strings"

	"github.com/gregtusar/stake/pkg/models"
)

// usOrderTypes maps the numeric order type of the US order book.
var usOrderTypes = map[int]models.OrderType{
	1: models.OrderTypeMarket,
	2: models.OrderTypeLimit,
	3: models.OrderTypeStop,
}

type usOrder struct {
	OrderNo          string           `json:"orderNo"`
	OrderID          string           `json:"orderID"`
	OrderCashAmt     models.NullFloat `json:"orderCashAmt"`
	Symbol           string           `json:"symbol"`
	Price            models.NullFloat `json:"price"`
	StopPrice        models.NullFloat `json:"stopPrice"`
	LimitPrice       models.NullFloat `json:"limitPrice"`
	Side             string           `json:"side"`
	OrderType        int              `json:"orderType"`
	CumQty           models.Float     `json:"cumQty"`
	CreatedWhen      models.Timestamp `json:"createdWhen"`
	OrderStatus      *int             `json:"orderStatus"`
	OrderQty         models.Float     `json:"orderQty"`
	Description      string           `json:"description"`
	InstrumentID     string           `json:"instrumentID"`
	InstrumentSymbol string           `json:"instrumentSymbol"`
	InstrumentName   string           `json:"instrumentName"`
}

func (o usOrder) toModel() models.Order {
	symbol := o.Symbol
	if symbol == "" {
		symbol = o.InstrumentSymbol
	}
	status := ""
	if o.OrderStatus != nil {
		status = strconv.Itoa(*o.OrderStatus)
	}
	remaining := float64(o.OrderQty - o.CumQty)
	if remaining < 0 {
		remaining = 0
	}
	return models.Order{
		ID:                o.OrderID,
		OrderNo:           o.OrderNo,
		Symbol:            symbol,
		Name:              o.InstrumentName,
		Description:       o.Description,
		InstrumentID:      o.InstrumentID,
		Side:              models.ParseSide(o.Side),
		Type:              usOrderTypes[o.OrderType],
		Status:            status,
		Price:             o.Price,
		LimitPrice:        o.LimitPrice,
		StopPrice:         o.StopPrice,
		Quantity:          o.OrderQty,
		FilledQuantity:    o.CumQty,
		RemainingQuantity: models.NewNullFloat(remaining),
		CashAmount:        o.OrderCashAmt,
		PlacedAt:          o.CreatedWhen,
	}
}

// usTradeRequest is the quickBuy / sellorders payload.
type usTradeRequest struct {
	UserID     string  `json:"userId"`
	ItemID     string  `json:"itemId"`
	ItemType   string  `json:"itemType"`
	OrderType  string  `json:"orderType"`
	AmountCash float64 `json:"amountCash,omitempty"`
	Price      float64 `json:"price,omitempty"`
	LimitPrice float64 `json:"limitPrice,omitempty"`
	StopPrice  float64 `json:"stopPrice,omitempty"`
	Quantity   float64 `json:"quantity,omitempty"`
	Comments   string  `json:"comments,omitempty"`
}

func newUSTradeRequest(userID, itemID string, req models.TradeRequest) usTradeRequest {
	body := usTradeRequest{
		UserID:     userID,
		ItemID:     itemID,
		ItemType:   "instrument",
		OrderType:  strings.ToLower(string(req.Type)),
		LimitPrice: req.LimitPrice,
		StopPrice:  req.StopPrice,
		Price:      req.Price,
		Comments:   req.Comments,
	}
	switch {
	case req.Side == models.SideBuy && req.Type == models.OrderTypeMarket:
		body.AmountCash = req.AmountCash
	case req.Side == models.SideBuy && req.Type == models.OrderTypeStop:
		// quickBuy reads the trigger from price
		body.AmountCash = req.AmountCash
		body.Price = req.StopPrice
	default:
		body.Quantity = req.Quantity
	}
	return body
}

type usTradeResponse struct {
	ID                string           `json:"id"`
	ItemID            string           `json:"itemId"`
	Name              string           `json:"name"`
	Quantity          models.Float     `json:"quantity"`
	AmountCash        models.NullFloat `json:"amountCash"`
	LimitPrice        models.NullFloat `json:"limitPrice"`
	StopPrice         models.NullFloat `json:"stopPrice"`
	EffectivePrice    models.NullFloat `json:"effectivePrice"`
	Commission        models.NullFloat `json:"commission"`
	InsertedDate      models.Timestamp `json:"insertedDate"`
	Side              string           `json:"side"`
	Status            *int             `json:"status"`
	OrderRejectReason string           `json:"orderRejectReason"`
	Symbol            string           `json:"symbol"`
	DWOrderID         string           `json:"dwOrderId"`
}

func (r usTradeResponse) toModel(req models.TradeRequest) *models.Trade {
	orderID := r.DWOrderID
	if orderID == "" {
		orderID = r.ID
	}
	symbol := r.Symbol
	if symbol == "" {
		symbol = req.Symbol
	}
	side := req.Side
	if r.Side != "" {
		side = models.ParseSide(r.Side)
	}
	status := ""
	if r.Status != nil {
		status = strconv.Itoa(*r.Status)
	}
	return &models.Trade{
		OrderID:        orderID,
		ItemID:         r.ItemID,
		Symbol:         symbol,
		Name:           r.Name,
		Side:           side,
		Type:           req.Type,
		Quantity:       r.Quantity,
		AmountCash:     r.AmountCash,
		LimitPrice:     r.LimitPrice,
		StopPrice:      r.StopPrice,
		EffectivePrice: r.EffectivePrice,
		Commission:     r.Commission,
		Status:         status,
		RejectReason:   r.OrderRejectReason,
		PlacedAt:       r.InsertedDate,
		Verdict:        models.VerdictPending,
	}
}

// usTransactionQuery is the body of the account transaction and history
// listings.
type usTransactionQuery struct {
	To        string                      `json:"to"`
	From      string                      `json:"from"`
	Limit     int                         `json:"limit"`
	Offset    int                         `json:"offset"`
	Direction models.TransactionDirection `json:"direction"`
}

type usHistoryEntry struct {
	Reference     string `json:"reference"`
	ReferenceType string `json:"referenceType"`
}

const usFundingReference = "Funding"
