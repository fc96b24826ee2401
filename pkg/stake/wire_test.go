package stake

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregtusar/stake/pkg/models"
)

func TestUSOrderMapsOntoOrder(t *testing.T) {
	var wire usOrder
	require.NoError(t, json.Unmarshal([]byte(`{"orderNo":"HHI.1","orderID":"ord-1","orderCashAmt":300,
		"symbol":"AAPL","price":150.5,"stopPrice":null,"limitPrice":150,"side":"B","orderType":2,
		"cumQty":0.5,"createdWhen":"2021-07-16T11:40:23Z","orderStatus":0,"orderQty":2,
		"description":"Limit Buy","instrumentID":"a1b2","instrumentSymbol":"AAPL","instrumentName":"Apple Inc"}`), &wire))

	o := wire.toModel()
	assert.Equal(t, "ord-1", o.ID)
	assert.Equal(t, "HHI.1", o.OrderNo)
	assert.Equal(t, "AAPL", o.Symbol)
	assert.Equal(t, "Apple Inc", o.Name)
	assert.Equal(t, "Limit Buy", o.Description)
	assert.Equal(t, "a1b2", o.InstrumentID)
	assert.Equal(t, models.SideBuy, o.Side)
	assert.Equal(t, models.OrderTypeLimit, o.Type)
	assert.Equal(t, "0", o.Status)
	assert.Equal(t, models.NewNullFloat(150.5), o.Price)
	assert.Equal(t, models.NewNullFloat(150), o.LimitPrice)
	assert.False(t, o.StopPrice.Valid)
	assert.Equal(t, models.Float(2), o.Quantity)
	assert.Equal(t, models.Float(0.5), o.FilledQuantity)
	assert.Equal(t, models.NewNullFloat(1.5), o.RemainingQuantity)
	assert.Equal(t, models.NewNullFloat(300), o.CashAmount)
	assert.True(t, time.Date(2021, 7, 16, 11, 40, 23, 0, time.UTC).Equal(o.PlacedAt.Time))

	out, err := json.Marshal(o)
	require.NoError(t, err)
	var back models.Order
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, o.ID, back.ID)
	assert.Equal(t, o.LimitPrice, back.LimitPrice)
	assert.Equal(t, o.RemainingQuantity, back.RemainingQuantity)
	assert.True(t, o.PlacedAt.Equal(back.PlacedAt.Time))
}

func TestASXOrderMapsOntoOrder(t *testing.T) {
	var wire asxOrder
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a-77","instrumentCode":"BHP","instrumentId":"BHP.XASX",
		"side":"SELL","type":"MARKET_TO_LIMIT","orderStatus":"PLACED","orderCompletionType":"",
		"averagePrice":45.2,"limitPrice":45.1,"filledUnits":4,"unitsRemaining":6,"estimatedBrokerage":3,
		"estimatedExchangeFees":0.05,"broker":"OpenMarkets","validity":"GTC","validityDate":"2022-02-01",
		"placedTimestamp":"2022-01-03T01:02:03Z","completedTimestamp":null,"expiresAt":"2022-02-01T00:00:00Z"}`), &wire))

	o := wire.toModel()
	assert.Equal(t, "a-77", o.ID)
	assert.Equal(t, "BHP", o.Symbol)
	assert.Equal(t, "BHP.XASX", o.InstrumentID)
	assert.Equal(t, models.SideSell, o.Side)
	assert.Equal(t, models.OrderTypeMarket, o.Type)
	assert.Equal(t, "PLACED", o.Status)
	assert.Equal(t, models.NewNullFloat(45.1), o.LimitPrice)
	assert.Equal(t, models.NewNullFloat(45.2), o.AveragePrice)
	assert.Equal(t, models.Float(10), o.Quantity)
	assert.Equal(t, models.Float(4), o.FilledQuantity)
	assert.Equal(t, models.NewNullFloat(6), o.RemainingQuantity)
	assert.Equal(t, models.NewNullFloat(3), o.EstimatedBrokerage)
	assert.Equal(t, models.NewNullFloat(0.05), o.EstimatedExchangeFees)
	assert.Equal(t, "OpenMarkets", o.Broker)
	assert.Equal(t, models.ValidityGoodTillCanceled, o.Validity)
	assert.Equal(t, time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC), o.ValidityDate.Time)
	assert.True(t, time.Date(2022, 1, 3, 1, 2, 3, 0, time.UTC).Equal(o.PlacedAt.Time))
	assert.True(t, o.CompletedAt.IsZero())
}

func TestRatingRoundTrip(t *testing.T) {
	const item = `{"id":"r-1","ticker":"AAPL","exchange":"NASDAQ","name":"Apple","analyst":"MS",
		"analyst_name":"Katy Huberty","currency":"USD","url":"https://x/r-1","url_calendar":"https://x/cal",
		"url_news":"https://x/news","importance":2,"notes":"reiterated","updated":"2021-07-16T11:40:23Z",
		"action_pt":"Raises","action_company":"Maintains","rating_current":"Overweight","pt_current":210,
		"rating_prior":"Overweight","pt_prior":190}`

	var resp struct {
		Ratings []ratingWire `json:"ratings"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"ratings":[`+item+`]}`), &resp))
	require.Len(t, resp.Ratings, 1)

	out, err := json.Marshal(resp.Ratings[0].toModel())
	require.NoError(t, err)
	assert.JSONEq(t, item, string(out))
}

func TestRequestBodiesEncodeWireNames(t *testing.T) {
	us, err := json.Marshal(newUSTradeRequest("u-1", "item-9", models.MarketBuy("AAPL", 100)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":"u-1","itemId":"item-9","itemType":"instrument","orderType":"market","amountCash":100}`, string(us))

	limit := models.LimitBuy("BHP", 45.3, 10)
	limit.ValidityDate = time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	asx, err := json.Marshal(newASXTradeRequest("BHP.XASX", 45.3, limit))
	require.NoError(t, err)
	assert.JSONEq(t, `{"instrumentCode":"BHP.XASX","units":10,"price":45.3,"side":"BUY","type":"LIMIT",
		"validity":"GTC","validityDate":"2026-11-02"}`, string(asx))

	login, err := json.Marshal(CredentialsLogin{Username: "ada", Password: "pw", OTP: "123456"}.withDefaults())
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"ada","password":"pw","otp":"123456","rememberMeDays":30,"platformType":"WEB_f5K2x3"}`, string(login))
}
