package models

import (
	"time"
)

type TransactionDirection string

const (
	DirectionPrev TransactionDirection = "prev"
	DirectionNext TransactionDirection = "next"
)

// TransactionFilter selects a window of the transaction history. The US
// exchange honours From/To/Direction, the ASX exchange Sort; both page with
// Limit/Offset.
type TransactionFilter struct {
	From      time.Time
	To        time.Time
	Limit     int
	Offset    int
	Direction TransactionDirection
	Sort      []Sort
}

// TransactionInstrument is the instrument a US ledger entry refers to.
type TransactionInstrument struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Transaction is a historical ledger entry (fill, dividend, fee, transfer).
type Transaction struct {
	OrderID    string                 `json:"orderID,omitempty"`
	OrderNo    string                 `json:"orderNo,omitempty"`
	Symbol     string                 `json:"symbol,omitempty"`
	Instrument *TransactionInstrument `json:"instrument,omitempty"`
	// Reason carries the broker's free-text status for the entry, used by
	// trade verification.
	Reason string    `json:"updatedReason,omitempty"`
	When   Timestamp `json:"tranWhen"`

	AccountAmount     Float          `json:"accountAmount"`
	AccountBalance    Float          `json:"accountBalance"`
	AccountType       string         `json:"accountType,omitempty"`
	Comment           string         `json:"comment,omitempty"`
	Dividend          map[string]any `json:"dividend,omitempty"`
	DividendTax       map[string]any `json:"dividendTax,omitempty"`
	MergerAcquisition map[string]any `json:"mergerAcquisition,omitempty"`
	DNB               bool           `json:"dnb,omitempty"`
	FeeBase           Float          `json:"feeBase"`
	FeeExchange       Float          `json:"feeExchange"`
	FeeSec            Float          `json:"feeSec"`
	FeeTaf            Float          `json:"feeTaf"`
	FeeXtraShares     Float          `json:"feeXtraShares"`
	FillPx            Float          `json:"fillPx"`
	FillQty           Float          `json:"fillQty"`
	FinTranID         string         `json:"finTranID,omitempty"`
	FinTranTypeID     string         `json:"finTranTypeID,omitempty"`
	PositionDelta     NullFloat      `json:"positionDelta"`
	SendCommission    bool           `json:"sendCommissionToInteliclear,omitempty"`
	SystemAmount      Float          `json:"systemAmount"`
	TranAmount        Float          `json:"tranAmount"`
	TranSource        string         `json:"tranSource,omitempty"`
	WLPAmount         Float          `json:"wlpAmount"`
	WLPFinTranTypeID  string         `json:"wlpFinTranTypeID,omitempty"`

	// ASX trade activity fields
	Side                 Side      `json:"side,omitempty"`
	Type                 string    `json:"type,omitempty"`
	Status               string    `json:"orderStatus,omitempty"`
	CompletionType       string    `json:"orderCompletionType,omitempty"`
	Units                NullFloat `json:"units"`
	AveragePrice         NullFloat `json:"averagePrice"`
	EffectivePrice       NullFloat `json:"effectivePrice"`
	LimitPrice           NullFloat `json:"limitPrice"`
	Consideration        NullFloat `json:"consideration"`
	UserBrokerageFees    NullFloat `json:"userBrokerageFees"`
	BrokerOrderID        int64     `json:"brokerOrderId,omitempty"`
	ContractNoteNumber   int64     `json:"contractNoteNumber,omitempty"`
	ContractNoteNumbers  []int64   `json:"contractNoteNumbers,omitempty"`
	ContractNoteReceived bool      `json:"contractNoteReceived,omitempty"`
	InstrumentCode       string    `json:"instrumentCode,omitempty"`
	ExecutionDate        Timestamp `json:"executionDate"`
	PlacedAt             Timestamp `json:"placedTimestamp"`
	CompletedAt          Timestamp `json:"completedTimestamp"`
}

// Transactions is a page of the transaction history.
type Transactions struct {
	Transactions []Transaction `json:"items"`
	Page
}
