package stake

import (
	"context"
	"time"

	"github.com/gregtusar/stake/pkg/models"
)

// FundingsClient reads deposits, withdrawals and cash balances.
type FundingsClient struct {
	c *Client
}

// List returns the funding records matching filter. On the US exchange each
// record is fetched individually, one request after another.
func (f *FundingsClient) List(ctx context.Context, filter models.FundingFilter) (*models.Fundings, error) {
	ex, err := f.c.session()
	if err != nil {
		return nil, err
	}
	endpoint, err := ex.apiURL("list fundings", ex.Endpoints.Fundings)
	if err != nil {
		return nil, err
	}

	if ex.Shape.PagedLists {
		limit := filter.Limit
		if limit <= 0 {
			limit = ex.TransactionLimit
		}
		q := pagedQuery(limit, filter.Offset, filter.Sort)
		for _, s := range filter.Statuses {
			q.Add("status", string(s))
		}
		for _, a := range filter.Actions {
			q.Add("action", string(a))
		}

		var fundings models.Fundings
		if err := f.c.get(ctx, endpoint, q, &fundings); err != nil {
			return nil, err
		}
		return &fundings, nil
	}

	window := transactionDefaults(models.TransactionFilter{
		From:   filter.From,
		To:     filter.To,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, ex.TransactionLimit, time.Now())

	var history []usHistoryEntry
	if err := f.c.post(ctx, endpoint, usQuery(window), &history); err != nil {
		return nil, err
	}

	out := &models.Fundings{}
	for _, entry := range history {
		if entry.ReferenceType != usFundingReference {
			continue
		}
		detailURL, err := ex.apiURL("funding details", ex.Endpoints.FundingDetails,
			"reference", entry.Reference, "referenceType", entry.ReferenceType)
		if err != nil {
			return nil, err
		}
		var record models.FundingRecord
		if err := f.c.get(ctx, detailURL, nil, &record); err != nil {
			return nil, err
		}
		if record.Reference == "" {
			record.Reference = entry.Reference
		}
		out.Fundings = append(out.Fundings, record)
	}
	out.TotalItems = len(out.Fundings)
	return out, nil
}

// InFlight returns transfers that have been initiated but not settled.
func (f *FundingsClient) InFlight(ctx context.Context) ([]models.FundsInFlight, error) {
	ex, err := f.c.session()
	if err != nil {
		return nil, err
	}

	if ex.Endpoints.FundsInFlight == "" && ex.Shape.PagedLists {
		fundings, err := f.List(ctx, models.FundingFilter{
			Statuses: []models.FundingStatus{
				models.FundingStatusPending,
				models.FundingStatusAwaitingApproval,
			},
		})
		if err != nil {
			return nil, err
		}
		inFlight := make([]models.FundsInFlight, 0, len(fundings.Fundings))
		for _, r := range fundings.Fundings {
			inFlight = append(inFlight, asxInFlight(r))
		}
		return inFlight, nil
	}

	endpoint, err := ex.apiURL("funds in flight", ex.Endpoints.FundsInFlight)
	if err != nil {
		return nil, err
	}
	var resp struct {
		FundsInFlight []models.FundsInFlight `json:"fundsInFlight"`
	}
	if err := f.c.get(ctx, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	if resp.FundsInFlight == nil {
		return []models.FundsInFlight{}, nil
	}
	return resp.FundsInFlight, nil
}

func (f *FundingsClient) CashAvailable(ctx context.Context) (*models.CashAvailable, error) {
	ex, err := f.c.session()
	if err != nil {
		return nil, err
	}
	endpoint, err := ex.apiURL("cash available", ex.Endpoints.CashAvailable)
	if err != nil {
		return nil, err
	}

	var cash models.CashAvailable
	if err := f.c.get(ctx, endpoint, nil, &cash); err != nil {
		return nil, err
	}
	return &cash, nil
}
