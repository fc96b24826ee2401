package models

import (
	"time"
)

const DefaultRatingsLimit = 50

type RatingsRequest struct {
	Symbols []string
	// Limit caps the number of ratings returned; zero means DefaultRatingsLimit.
	Limit int
}

// Rating is an analyst rating for a symbol. Fields the provider leaves
// blank are nil.
type Rating struct {
	ID            string    `json:"id,omitempty"`
	Symbol        string    `json:"ticker"`
	Exchange      string    `json:"exchange,omitempty"`
	Name          string    `json:"name,omitempty"`
	Analyst       string    `json:"analyst,omitempty"`
	AnalystName   string    `json:"analyst_name,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	URL           string    `json:"url,omitempty"`
	URLCalendar   string    `json:"url_calendar,omitempty"`
	URLNews       string    `json:"url_news,omitempty"`
	Importance    int       `json:"importance,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Updated       time.Time `json:"updated"`
	ActionPT      string    `json:"action_pt,omitempty"`
	ActionCompany string    `json:"action_company,omitempty"`
	RatingCurrent *string   `json:"rating_current"`
	PTCurrent     *float64  `json:"pt_current"`
	RatingPrior   *string   `json:"rating_prior"`
	PTPrior       *float64  `json:"pt_prior"`
}
