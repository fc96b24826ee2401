package models

// Order is a pending (unfilled or partially filled) order. Both exchanges
// are mapped onto this shape.
type Order struct {
	ID                    string    `json:"id"`
	OrderNo               string    `json:"orderNo,omitempty"`
	Symbol                string    `json:"symbol"`
	Name                  string    `json:"name,omitempty"`
	Description           string    `json:"description,omitempty"`
	InstrumentID          string    `json:"instrumentId,omitempty"`
	Side                  Side      `json:"side"`
	Type                  OrderType `json:"type"`
	Status                string    `json:"status,omitempty"`
	CompletionType        string    `json:"completionType,omitempty"`
	Price                 NullFloat `json:"price"`
	LimitPrice            NullFloat `json:"limitPrice"`
	StopPrice             NullFloat `json:"stopPrice"`
	AveragePrice          NullFloat `json:"averagePrice"`
	Quantity              Float     `json:"quantity"`
	FilledQuantity        Float     `json:"filledQuantity"`
	RemainingQuantity     NullFloat `json:"remainingQuantity"`
	CashAmount            NullFloat `json:"cashAmount"`
	EstimatedBrokerage    NullFloat `json:"estimatedBrokerage"`
	EstimatedExchangeFees NullFloat `json:"estimatedExchangeFees"`
	Broker                string    `json:"broker,omitempty"`
	Validity              Validity  `json:"validity,omitempty"`
	ValidityDate          Timestamp `json:"validityDate"`
	PlacedAt              Timestamp `json:"placedAt"`
	CompletedAt           Timestamp `json:"completedAt"`
	ExpiresAt             Timestamp `json:"expiresAt"`
}

// Brokerage is the fee quote for a hypothetical order.
type Brokerage struct {
	BrokerageFee          NullFloat `json:"brokerageFee"`
	BrokerageDiscount     NullFloat `json:"brokerageDiscount"`
	FixedFee              NullFloat `json:"fixedFee"`
	VariableFeePercentage NullFloat `json:"variableFeePercentage"`
	VariableLimit         NullFloat `json:"variableLimit"`
}
