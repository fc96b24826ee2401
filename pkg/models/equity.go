package models

type EquityCategory string

const (
	EquityCategoryETF   EquityCategory = "ETF"
	EquityCategoryStock EquityCategory = "Stock"
)

// EquityPosition is one owned position in the portfolio.
type EquityPosition struct {
	InstrumentID           string         `json:"instrumentID"`
	Symbol                 string         `json:"symbol"`
	Name                   string         `json:"name"`
	EncodedName            string         `json:"encodedName,omitempty"`
	URLImage               string         `json:"urlImage,omitempty"`
	Category               EquityCategory `json:"category,omitempty"`
	Side                   string         `json:"side,omitempty"`
	Period                 string         `json:"period,omitempty"`
	OpenQty                Float          `json:"openQty"`
	AvailableForTradingQty Float          `json:"availableForTradingQty"`
	AvgPrice               Float          `json:"avgPrice"`
	AveragePrice           Float          `json:"averagePrice"`
	AskPrice               NullFloat      `json:"askPrice"`
	BidPrice               NullFloat      `json:"bidPrice"`
	CostBasis              Float          `json:"costBasis"`
	DailyReturnValue       Float          `json:"dailyReturnValue"`
	LastTrade              Float          `json:"lastTrade"`
	MarketPrice            Float          `json:"mktPrice"`
	MarketValue            Float          `json:"marketValue"`
	PriorClose             Float          `json:"priorClose"`
	ReturnOnStock          NullFloat      `json:"returnOnStock"`
	UnrealizedDayPLPercent Float          `json:"unrealizedDayPLPercent"`
	UnrealizedDayPL        Float          `json:"unrealizedDayPL"`
	UnrealizedPLPercent    NullFloat      `json:"unrealizedPLPercent"`
	UnrealizedPL           Float          `json:"unrealizedPL"`
	YearlyReturnPercentage NullFloat      `json:"yearlyReturnPercentage"`
	YearlyReturnValue      NullFloat      `json:"yearlyReturnValue"`
	RecentAnnouncement     bool           `json:"recentAnnouncement,omitempty"`
	Sensitive              bool           `json:"sensitive,omitempty"`
}

// AverageCost returns the average purchase price whichever exchange
// spelling carried it.
func (e EquityPosition) AverageCost() float64 {
	if e.AvgPrice != 0 {
		return float64(e.AvgPrice)
	}
	return float64(e.AveragePrice)
}

// EquityPositions is a page of the user's portfolio.
type EquityPositions struct {
	EquityPositions []EquityPosition `json:"equityPositions"`
	EquityValue     Float            `json:"equityValue"`
	PricesOnly      bool             `json:"pricesOnly,omitempty"`
	PageNum         int              `json:"pageNum,omitempty"`
	HasNext         bool             `json:"hasNext,omitempty"`
}

// Value sums the market value of every position.
func (e EquityPositions) Value() float64 {
	if e.EquityValue != 0 {
		return float64(e.EquityValue)
	}
	var total float64
	for _, p := range e.EquityPositions {
		total += float64(p.MarketValue)
	}
	return total
}
