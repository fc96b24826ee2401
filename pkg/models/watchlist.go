package models

import (
	"strings"
)

// Watchlist is a named, ordered collection of instruments owned by the user.
type Watchlist struct {
	ID          string       `json:"watchlistId"`
	Name        string       `json:"name"`
	Count       int          `json:"count"`
	TimeStamp   Timestamp    `json:"timeStamp"`
	CreatedAt   Timestamp    `json:"createdAt"`
	UpdatedAt   Timestamp    `json:"updatedAt"`
	Instruments []Instrument `json:"instruments,omitempty"`
}

// Tickers returns the member symbols in watchlist order.
func (w Watchlist) Tickers() []string {
	tickers := make([]string, 0, len(w.Instruments))
	for _, i := range w.Instruments {
		tickers = append(tickers, i.Symbol)
	}
	return tickers
}

// Contains reports whether ticker is a member, ignoring case.
func (w Watchlist) Contains(ticker string) bool {
	key := NormalizeTicker(ticker)
	for _, i := range w.Instruments {
		if NormalizeTicker(i.Symbol) == key {
			return true
		}
	}
	return false
}

func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
