package models

import (
	"time"
)

// TradeRequest is one of Market|Limit|Stop x Buy|Sell. Build it with the
// constructors below; Side and Type are the tag the submission dispatches on.
type TradeRequest struct {
	Side Side
	Type OrderType

	// Symbol or InstrumentID must be set. When only the symbol is known the
	// client resolves the instrument id before submitting.
	Symbol       string
	InstrumentID string

	// Quantity is the number of units for limit buys and every sell. The
	// ASX exchange trades in whole units only.
	Quantity float64
	// AmountCash is the dollar amount for US market and stop buys.
	AmountCash float64

	LimitPrice float64
	StopPrice  float64
	// Price is the reference price for ASX market orders. When zero the
	// client quotes it from the current ask (buy) or bid (sell).
	Price float64

	Comments     string
	Validity     Validity
	ValidityDate time.Time
}

func MarketBuy(symbol string, amountCash float64) TradeRequest {
	return TradeRequest{Side: SideBuy, Type: OrderTypeMarket, Symbol: symbol, AmountCash: amountCash}
}

func LimitBuy(symbol string, limitPrice, quantity float64) TradeRequest {
	return TradeRequest{Side: SideBuy, Type: OrderTypeLimit, Symbol: symbol, LimitPrice: limitPrice, Quantity: quantity}
}

// StopBuy triggers a market buy of amountCash once the price reaches stopPrice.
func StopBuy(symbol string, stopPrice, amountCash float64) TradeRequest {
	return TradeRequest{Side: SideBuy, Type: OrderTypeStop, Symbol: symbol, StopPrice: stopPrice, AmountCash: amountCash}
}

func MarketSell(symbol string, quantity float64) TradeRequest {
	return TradeRequest{Side: SideSell, Type: OrderTypeMarket, Symbol: symbol, Quantity: quantity}
}

func LimitSell(symbol string, limitPrice, quantity float64) TradeRequest {
	return TradeRequest{Side: SideSell, Type: OrderTypeLimit, Symbol: symbol, LimitPrice: limitPrice, Quantity: quantity}
}

func StopSell(symbol string, stopPrice, quantity float64) TradeRequest {
	return TradeRequest{Side: SideSell, Type: OrderTypeStop, Symbol: symbol, StopPrice: stopPrice, Quantity: quantity}
}

// Units is the whole-unit quantity sent to exchanges that do not accept
// fractional shares.
func (r TradeRequest) Units() int64 {
	return int64(r.Quantity)
}

// Verdict is the outcome of the post-submission verification pass.
type Verdict string

const (
	VerdictPending      Verdict = "PENDING"
	VerdictConfirmed    Verdict = "CONFIRMED"
	VerdictRejected     Verdict = "REJECTED"
	VerdictUnverifiable Verdict = "UNVERIFIABLE"
)

// Trade is the broker's acknowledgment of a submitted trade request.
type Trade struct {
	OrderID        string    `json:"orderId"`
	ItemID         string    `json:"itemId,omitempty"`
	Symbol         string    `json:"symbol"`
	Name           string    `json:"name,omitempty"`
	Side           Side      `json:"side"`
	Type           OrderType `json:"type"`
	Quantity       Float     `json:"quantity"`
	AmountCash     NullFloat `json:"amountCash"`
	LimitPrice     NullFloat `json:"limitPrice"`
	StopPrice      NullFloat `json:"stopPrice"`
	EffectivePrice NullFloat `json:"effectivePrice"`
	Commission     NullFloat `json:"commission"`
	Status         string    `json:"status,omitempty"`
	RejectReason   string    `json:"rejectReason,omitempty"`
	PlacedAt       Timestamp `json:"placedAt"`
	Verdict        Verdict   `json:"verdict"`
}
