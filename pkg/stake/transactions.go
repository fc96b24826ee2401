package stake

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/gregtusar/stake/pkg/models"
)

// DefaultHistoryWindow is how far back listings reach when the filter
// leaves From unset.
const DefaultHistoryWindow = 365 * 24 * time.Hour

type TransactionsClient struct {
	c *Client
}

// List returns the executed transactions matching filter. A zero filter
// returns the last year of activity, newest first.
func (t *TransactionsClient) List(ctx context.Context, filter models.TransactionFilter) (*models.Transactions, error) {
	ex, err := t.c.session()
	if err != nil {
		return nil, err
	}
	endpoint, err := ex.apiURL("list transactions", ex.Endpoints.Transactions)
	if err != nil {
		return nil, err
	}
	filter = transactionDefaults(filter, ex.TransactionLimit, time.Now())
	if filter.From.After(filter.To) {
		return nil, invalid("from", "must not be after to")
	}

	if ex.Shape.ASXPayloads {
		var resp asxTransactions
		if err := t.c.get(ctx, endpoint, pagedQuery(filter.Limit, filter.Offset, filter.Sort), &resp); err != nil {
			return nil, err
		}
		out := &models.Transactions{
			Transactions: make([]models.Transaction, 0, len(resp.Items)),
			Page:         resp.Page,
		}
		for _, item := range resp.Items {
			out.Transactions = append(out.Transactions, item.toModel())
		}
		return out, nil
	}

	var raw []models.Transaction
	if err := t.c.post(ctx, endpoint, usQuery(filter), &raw); err != nil {
		return nil, err
	}
	for i := range raw {
		if raw[i].Symbol == "" && raw[i].Instrument != nil {
			raw[i].Symbol = raw[i].Instrument.Symbol
		}
	}
	return &models.Transactions{Transactions: raw}, nil
}

func transactionDefaults(f models.TransactionFilter, limit int, now time.Time) models.TransactionFilter {
	if f.To.IsZero() {
		f.To = now
	}
	if f.From.IsZero() {
		f.From = f.To.Add(-DefaultHistoryWindow)
	}
	if f.Limit <= 0 {
		f.Limit = limit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Direction == "" {
		f.Direction = models.DirectionPrev
	}
	return f
}

func usQuery(f models.TransactionFilter) usTransactionQuery {
	return usTransactionQuery{
		To:        f.To.UTC().Format(time.RFC3339),
		From:      f.From.UTC().Format(time.RFC3339),
		Limit:     f.Limit,
		Offset:    f.Offset,
		Direction: f.Direction,
	}
}

// pagedQuery builds the size/page/sort parameters of paged listings.
func pagedQuery(limit, offset int, sort []models.Sort) url.Values {
	q := url.Values{}
	q.Set("size", strconv.Itoa(limit))
	q.Set("page", strconv.Itoa(offset))
	for _, s := range sort {
		q.Add("sort", s.String())
	}
	return q
}
