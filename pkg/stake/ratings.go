package stake

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/gregtusar/stake/pkg/models"
)

// noDataMessage is what the research endpoints return instead of an empty
// list.
const noDataMessage = "No data returned"

// RatingsClient lists analyst ratings. US only.
type RatingsClient struct {
	c *Client
}

type ratingWire struct {
	models.Rating
	Updated       models.Timestamp `json:"updated"`
	RatingCurrent string           `json:"rating_current"`
	RatingPrior   string           `json:"rating_prior"`
	PTCurrent     models.NullFloat `json:"pt_current"`
	PTPrior       models.NullFloat `json:"pt_prior"`
}

func (w ratingWire) toModel() models.Rating {
	r := w.Rating
	r.Updated = w.Updated.Time
	r.RatingCurrent = blankAsNil(w.RatingCurrent)
	r.RatingPrior = blankAsNil(w.RatingPrior)
	r.PTCurrent = nullAsNil(w.PTCurrent)
	r.PTPrior = nullAsNil(w.PTPrior)
	return r
}

func (r *RatingsClient) List(ctx context.Context, req models.RatingsRequest) ([]models.Rating, error) {
	ex, err := r.c.session()
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(req.Symbols))
	for _, s := range req.Symbols {
		if s = models.NormalizeTicker(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	limit := req.Limit
	if limit <= 0 {
		limit = models.DefaultRatingsLimit
	}
	endpoint, err := ex.apiURL("ratings", ex.Endpoints.Ratings,
		"symbols", strings.Join(symbols, ","), "limit", strconv.Itoa(limit))
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, invalid("symbols", "at least one symbol is required")
	}

	var raw json.RawMessage
	if err := r.c.get(ctx, endpoint, nil, &raw); err != nil {
		return nil, notFoundAsNil(err)
	}
	if noData(raw) {
		return []models.Rating{}, nil
	}

	var resp struct {
		Ratings []ratingWire `json:"ratings"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode ratings")
	}
	ratings := make([]models.Rating, 0, len(resp.Ratings))
	for _, w := range resp.Ratings {
		ratings = append(ratings, w.toModel())
	}
	return ratings, nil
}

// StatementsClient lists quarterly financial statements. US only.
type StatementsClient struct {
	c *Client
}

func (s *StatementsClient) List(ctx context.Context, req models.StatementRequest) ([]models.Statement, error) {
	ex, err := s.c.session()
	if err != nil {
		return nil, err
	}
	symbol := models.NormalizeTicker(req.Symbol)
	start := req.StartDate
	if start.IsZero() {
		start = time.Now().Add(-DefaultHistoryWindow)
	}
	endpoint, err := ex.apiURL("statements", ex.Endpoints.Statements,
		"symbol", symbol, "date", start.Format(time.DateOnly))
	if err != nil {
		return nil, err
	}
	if symbol == "" {
		return nil, invalid("symbol", "must not be empty")
	}

	var raw json.RawMessage
	if err := s.c.get(ctx, endpoint, nil, &raw); err != nil {
		return nil, notFoundAsNil(err)
	}
	if noData(raw) {
		return []models.Statement{}, nil
	}

	var statements []models.Statement
	if err := json.Unmarshal(raw, &statements); err != nil {
		return nil, errors.Wrap(err, "failed to decode statements")
	}
	return statements, nil
}

func noData(raw json.RawMessage) bool {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return true
	}
	var msg struct {
		Message string `json:"message"`
	}
	return json.Unmarshal(raw, &msg) == nil && msg.Message == noDataMessage
}

func blankAsNil(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func nullAsNil(n models.NullFloat) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
