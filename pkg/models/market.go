package models

const MarketOpen = "open"

type Status struct {
	Current  string `json:"current"`
	Next     string `json:"next,omitempty"`
	ChangeAt string `json:"change_at,omitempty"`
}

// MarketStatus reports whether the exchange is currently trading.
type MarketStatus struct {
	Status          Status    `json:"status"`
	Message         string    `json:"message,omitempty"`
	Error           string    `json:"error,omitempty"`
	Date            Timestamp `json:"date"`
	UnixTime        Timestamp `json:"unixtime"`
	LastTradingDate Timestamp `json:"lastTradingDate"`
	ElapsedTime     int64     `json:"elapsedtime,omitempty"`
	VersionNumber   string    `json:"versionNumber,omitempty"`
}

func (m MarketStatus) IsOpen() bool {
	return m.Status.Current == MarketOpen
}
