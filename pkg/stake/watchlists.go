package stake

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gregtusar/stake/pkg/models"
)

// WatchlistsClient manages the user's named watchlists.
type WatchlistsClient struct {
	c *Client
}

type watchlistItems struct {
	Tickers []string `json:"tickers"`
}

func (w *WatchlistsClient) List(ctx context.Context) ([]models.Watchlist, error) {
	ex, err := w.c.session()
	if err != nil {
		return nil, err
	}
	endpoint, err := ex.watchlistURL("list watchlists", ex.Endpoints.Watchlists)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := w.c.get(ctx, endpoint, nil, &raw); err != nil {
		return nil, err
	}
	if isEmpty(raw) {
		return []models.Watchlist{}, nil
	}

	var envelope struct {
		Watchlists []models.Watchlist `json:"watchlists"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Watchlists != nil {
		return envelope.Watchlists, nil
	}
	var watchlists []models.Watchlist
	if err := json.Unmarshal(raw, &watchlists); err != nil {
		return nil, errors.Wrap(err, "failed to decode watchlists")
	}
	return watchlists, nil
}

// Get returns the watchlist with its instruments, or nil when it does not
// exist.
func (w *WatchlistsClient) Get(ctx context.Context, id string) (*models.Watchlist, error) {
	ex, err := w.c.session()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, invalid("watchlistId", "must not be empty")
	}
	endpoint, err := ex.watchlistURL("get watchlist", ex.Endpoints.Watchlist, "watchlistId", id)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := w.c.get(ctx, endpoint, nil, &raw); err != nil {
		return nil, notFoundAsNil(err)
	}
	if isEmpty(raw) {
		return nil, nil
	}
	return decodeWatchlist(raw)
}

// Create makes a new watchlist holding tickers, duplicates removed.
func (w *WatchlistsClient) Create(ctx context.Context, name string, tickers ...string) (*models.Watchlist, error) {
	ex, err := w.c.session()
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "must not be empty")
	}
	endpoint, err := ex.watchlistURL("create watchlist", ex.Endpoints.CreateWatchlist)
	if err != nil {
		return nil, err
	}

	body := struct {
		Name    string   `json:"name"`
		Tickers []string `json:"tickers"`
	}{Name: name, Tickers: dedupeTickers(tickers)}

	var raw json.RawMessage
	if err := w.c.post(ctx, endpoint, body, &raw); err != nil {
		return nil, err
	}
	if isEmpty(raw) {
		return nil, errors.New("empty response creating watchlist")
	}
	return decodeWatchlist(raw)
}

// AddTickers adds the tickers not already in the watchlist. When every
// ticker is present no write is made.
func (w *WatchlistsClient) AddTickers(ctx context.Context, id string, tickers ...string) (*models.Watchlist, error) {
	return w.update(ctx, id, true, tickers)
}

// RemoveTickers removes the tickers that are in the watchlist. When none are
// present no write is made.
func (w *WatchlistsClient) RemoveTickers(ctx context.Context, id string, tickers ...string) (*models.Watchlist, error) {
	return w.update(ctx, id, false, tickers)
}

func (w *WatchlistsClient) Delete(ctx context.Context, id string) (bool, error) {
	ex, err := w.c.session()
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(id) == "" {
		return false, invalid("watchlistId", "must not be empty")
	}
	endpoint, err := ex.watchlistURL("delete watchlist", ex.Endpoints.Watchlist, "watchlistId", id)
	if err != nil {
		return false, err
	}
	return w.c.delete(ctx, endpoint, nil, nil)
}

func (w *WatchlistsClient) update(ctx context.Context, id string, add bool, tickers []string) (*models.Watchlist, error) {
	ex, err := w.c.session()
	if err != nil {
		return nil, err
	}
	endpoint, err := ex.watchlistURL("update watchlist", ex.Endpoints.WatchlistItems, "watchlistId", id)
	if err != nil {
		return nil, err
	}

	current, err := w.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, invalid("watchlistId", "watchlist %q does not exist", id)
	}

	var delta []string
	if add {
		delta = tickersToAdd(*current, tickers)
	} else {
		delta = tickersToRemove(*current, tickers)
	}
	if len(delta) == 0 {
		w.c.logger.WithField("watchlist_id", id).Debug("Watchlist already up to date")
		return current, nil
	}

	w.c.logger.WithFields(logrus.Fields{
		"watchlist_id": id,
		"add":          add,
		"tickers":      delta,
	}).Debug("Updating watchlist")

	var raw json.RawMessage
	if add {
		err = w.c.post(ctx, endpoint, watchlistItems{Tickers: delta}, &raw)
	} else {
		_, err = w.c.delete(ctx, endpoint, watchlistItems{Tickers: delta}, &raw)
	}
	if err != nil {
		return nil, err
	}

	if !isEmpty(raw) {
		if updated, err := decodeWatchlist(raw); err == nil && updated.ID != "" {
			return updated, nil
		}
	}
	return w.Get(ctx, id)
}

// tickersToAdd is requested minus current, in request order.
func tickersToAdd(current models.Watchlist, requested []string) []string {
	var out []string
	for _, t := range dedupeTickers(requested) {
		if !current.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// tickersToRemove is requested intersected with current, in request order.
func tickersToRemove(current models.Watchlist, requested []string) []string {
	var out []string
	for _, t := range dedupeTickers(requested) {
		if current.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

func dedupeTickers(tickers []string) []string {
	seen := make(map[string]bool, len(tickers))
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		key := models.NormalizeTicker(t)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

func decodeWatchlist(raw json.RawMessage) (*models.Watchlist, error) {
	var envelope struct {
		Watchlist *models.Watchlist `json:"watchlist"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Watchlist != nil {
		return envelope.Watchlist, nil
	}
	var watchlist models.Watchlist
	if err := json.Unmarshal(raw, &watchlist); err != nil {
		return nil, errors.Wrap(err, "failed to decode watchlist")
	}
	return &watchlist, nil
}

// isEmpty treats a blank body and a JSON null alike.
func isEmpty(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
