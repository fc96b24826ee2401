package models

import (
	"github.com/google/uuid"
)

// Instrument is a lightweight reference to a tradeable security.
type Instrument struct {
	InstrumentID       string `json:"instrumentId"`
	Symbol             string `json:"symbol"`
	Name               string `json:"name,omitempty"`
	EncodedName        string `json:"encodedName,omitempty"`
	ImageURL           string `json:"imageUrl,omitempty"`
	Type               string `json:"type,omitempty"`
	RecentAnnouncement bool   `json:"recentAnnouncement,omitempty"`
	Sensitive          bool   `json:"sensitive,omitempty"`
}

// Product is the quote and metadata record for an instrument. The US
// exchange fills the descriptive fields, the ASX exchange the quote fields.
type Product struct {
	ID                     uuid.UUID    `json:"id"`
	InstrumentTypeID       string       `json:"instrumentTypeID,omitempty"`
	Symbol                 string       `json:"symbol"`
	Name                   string       `json:"name,omitempty"`
	Description            string       `json:"description,omitempty"`
	Category               string       `json:"category,omitempty"`
	CurrencyID             string       `json:"currencyID,omitempty"`
	URLImage               string       `json:"urlImage,omitempty"`
	Sector                 string       `json:"sector,omitempty"`
	ParentID               string       `json:"parentID,omitempty"`
	DailyReturn            Float        `json:"dailyReturn"`
	DailyReturnPercentage  Float        `json:"dailyReturnPercentage"`
	LastTraded             Float        `json:"lastTraded"`
	MonthlyReturn          Float        `json:"monthlyReturn"`
	YearlyReturnPercentage NullFloat    `json:"yearlyReturnPercentage"`
	YearlyReturnValue      NullFloat    `json:"yearlyReturnValue"`
	Popularity             int          `json:"popularity,omitempty"`
	Watched                int          `json:"watched,omitempty"`
	News                   int          `json:"news,omitempty"`
	Bought                 int          `json:"bought,omitempty"`
	Viewed                 int          `json:"viewed,omitempty"`
	ProductType            string       `json:"productType,omitempty"`
	TradeStatus            *int         `json:"tradeStatus,omitempty"`
	EncodedName            string       `json:"encodedName,omitempty"`
	Period                 string       `json:"period,omitempty"`
	InceptionDate          string       `json:"inceptionDate,omitempty"`
	InstrumentTags         []any        `json:"instrumentTags,omitempty"`
	ChildInstruments       []Instrument `json:"childInstruments,omitempty"`

	// ASX quote fields
	MarketStatus        string    `json:"marketStatus,omitempty"`
	LastTrade           NullFloat `json:"lastTrade"`
	LastTradedExchange  string    `json:"lastTradedExchange,omitempty"`
	LastTradedTimestamp int64     `json:"lastTradedTimestamp,omitempty"`
	Bid                 NullFloat `json:"bid"`
	Ask                 NullFloat `json:"ask"`
	PriorClose          NullFloat `json:"priorClose"`
	Open                NullFloat `json:"open"`
	High                NullFloat `json:"high"`
	Low                 NullFloat `json:"low"`
	PointsChange        NullFloat `json:"pointsChange"`
	PercentageChange    NullFloat `json:"percentageChange"`
	OutOfMarketPrice    NullFloat `json:"outOfMarketPrice"`
	OutOfMarketQuantity int64     `json:"outOfMarketQuantity,omitempty"`
	OutOfMarketSurplus  int64     `json:"outOfMarketSurplus,omitempty"`
}

// LastPrice is the most recent traded price regardless of exchange.
func (p Product) LastPrice() float64 {
	if p.LastTrade.Valid {
		return p.LastTrade.Value
	}
	return float64(p.LastTraded)
}

// Instrument returns the lightweight reference for this product.
func (p Product) Instrument() Instrument {
	id := ""
	if p.ID != uuid.Nil {
		id = p.ID.String()
	}
	return Instrument{
		InstrumentID: id,
		Symbol:       p.Symbol,
		Name:         p.Name,
		EncodedName:  p.EncodedName,
		ImageURL:     p.URLImage,
	}
}
