package stake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return d
}

func TestResolveEscapesPlaceholders(t *testing.T) {
	ex := NYSE()

	u, err := ex.apiURL("product lookup", ex.Endpoints.Product, "symbol", "BRK B")
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIBase+"products/searchProduct?symbol=BRK+B&page=1&max=1", u)

	u, err = ex.apiURL("product search", ex.Endpoints.ProductSuggestions, "keyword", "a/b c")
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIBase+"products/getProductSuggestions/a%2Fb%20c", u)

	u, err = ex.watchlistURL("get watchlist", ex.Endpoints.Watchlist, "watchlistId", "w-1")
	require.NoError(t, err)
	assert.Equal(t, "https://api.prd.stakeover.io/us/instrument/watchlist/w-1", u)
}

func TestResolveAbsoluteTemplate(t *testing.T) {
	ex := NYSE()
	u, err := ex.apiURL("custom", "https://example.com/x/{id}", "id", "7")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/x/7", u)
}

func TestResolveEmptyTemplateIsUnsupported(t *testing.T) {
	ex := ASX()
	_, err := ex.apiURL("ratings", ex.Endpoints.Ratings)

	var unsupported *UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "ratings", unsupported.Operation)
	assert.Equal(t, "stake: ratings is not supported on the ASX exchange", err.Error())
}

func TestExchangeByName(t *testing.T) {
	for name, want := range map[string]string{
		"":     ExchangeNYSE,
		"us":   ExchangeNYSE,
		"NYSE": ExchangeNYSE,
		"asx":  ExchangeASX,
		" AU ": ExchangeASX,
	} {
		ex, ok := ExchangeByName(name)
		require.True(t, ok, name)
		assert.Equal(t, want, ex.Name, name)
	}

	_, ok := ExchangeByName("LSE")
	assert.False(t, ok)
}

func TestRejectionPatterns(t *testing.T) {
	us := NYSE().RejectionPattern
	assert.True(t, us.MatchString("2 Buy Stop price must be >= 10"))
	assert.False(t, us.MatchString("Market order filled"))

	asx := ASX().RejectionPattern
	assert.True(t, asx.MatchString("REJECTED"))
	assert.True(t, asx.MatchString("Cancelled by user"))
	assert.True(t, asx.MatchString("expired"))
	assert.False(t, asx.MatchString("PLACED"))
}

func TestWithBaseURLsKeepsLayout(t *testing.T) {
	ex := ASX().WithBaseURLs("http://localhost:8080/api", "")
	u, err := ex.apiURL("cash available", ex.Endpoints.CashAvailable)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/asx/cash", u)
	assert.Equal(t, ASX().WatchlistBase, ex.WatchlistBase)
}
