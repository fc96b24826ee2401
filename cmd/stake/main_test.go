package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregtusar/stake/pkg/models"
)

func TestPrintResultYAMLUsesJSONNames(t *testing.T) {
	var buf bytes.Buffer
	req := models.FxConversionRequest{FromCurrency: models.CurrencyAUD, ToCurrency: models.CurrencyUSD, FromAmount: 100}

	require.NoError(t, printResult(&buf, formatYAML, req))
	assert.Contains(t, buf.String(), "fromCurrency: AUD")
	assert.Contains(t, buf.String(), "fromAmount: 100")

	buf.Reset()
	require.NoError(t, printResult(&buf, formatJSON, req))
	assert.Contains(t, buf.String(), `"toCurrency": "USD"`)
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, checkFormat("json"))
	assert.NoError(t, checkFormat("yaml"))
	assert.Error(t, checkFormat("csv"))
}

func TestTradeFlagsRequest(t *testing.T) {
	flags := &tradeFlags{orderType: "limit", limitPrice: 101.5, quantity: 3, validityDate: "2026-11-02"}
	req, err := flags.request(models.SideSell, "CBA")
	require.NoError(t, err)

	assert.Equal(t, models.SideSell, req.Side)
	assert.Equal(t, models.OrderTypeLimit, req.Type)
	assert.Equal(t, 101.5, req.LimitPrice)
	assert.Equal(t, time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), req.ValidityDate)

	_, err = (&tradeFlags{orderType: "trailing"}).request(models.SideBuy, "AAPL")
	assert.ErrorContains(t, err, "unknown order type")

	_, err = (&tradeFlags{orderType: "market", validityDate: "02/11/2026"}).request(models.SideBuy, "AAPL")
	assert.ErrorContains(t, err, "invalid date")
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()
	for _, path := range [][]string{
		{"trade", "buy"},
		{"trade", "sell"},
		{"watchlists", "remove"},
		{"fundings", "inflight"},
		{"orders", "brokerage"},
		{"statements"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.NotEqual(t, root, cmd, path)
	}

	sub, _, err := root.Find([]string{"trade", "buy"})
	require.NoError(t, err)
	assert.NotNil(t, sub.Flags().Lookup("cash"))
}
