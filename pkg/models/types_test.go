package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Float
	}{
		{"number", `12.5`, 12.5},
		{"quoted number", `"12.5"`, 12.5},
		{"blank", `""`, 0},
		{"null", `null`, 0},
		{"padded", `" 7 "`, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Float
			require.NoError(t, json.Unmarshal([]byte(tt.in), &f))
			assert.Equal(t, tt.want, f)
		})
	}

	var f Float
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &f))
}

func TestNullFloatTracksPresence(t *testing.T) {
	var v struct {
		A NullFloat `json:"a"`
		B NullFloat `json:"b"`
		C NullFloat `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"1.25","b":""}`), &v))

	assert.Equal(t, NewNullFloat(1.25), v.A)
	assert.False(t, v.B.Valid)
	assert.False(t, v.C.Valid)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1.25,"b":null,"c":null}`, string(out))
}

func TestTimestampFormats(t *testing.T) {
	want := time.Date(2021, 7, 16, 11, 40, 23, 0, time.UTC)

	for _, in := range []string{
		`"2021-07-16T11:40:23Z"`,
		`"2021-07-16T11:40:23"`,
		`"2021-07-16 11:40:23"`,
		`1626435623`,
		`1626435623000`,
		`"1626435623"`,
	} {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(in), &ts), in)
		assert.True(t, want.Equal(ts.Time), "%s decoded to %s", in, ts.Time)
	}

	var date Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2022-01-03"`), &date))
	assert.Equal(t, time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC), date.Time)

	var compact Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"20240301"`), &compact))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), compact.Time)

	var empty Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.True(t, empty.IsZero())

	out, err := json.Marshal(NewTimestamp(want))
	require.NoError(t, err)
	assert.Equal(t, `"2021-07-16T11:40:23Z"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &empty))
}

func TestParseSide(t *testing.T) {
	assert.Equal(t, SideBuy, ParseSide("B"))
	assert.Equal(t, SideBuy, ParseSide("buy"))
	assert.Equal(t, SideSell, ParseSide(" SELL "))
	assert.Equal(t, SideSell, ParseSide("s"))
}

func TestWatchlistMembership(t *testing.T) {
	w := Watchlist{Instruments: []Instrument{{Symbol: "AAPL"}, {Symbol: "MSFT"}}}

	assert.Equal(t, []string{"AAPL", "MSFT"}, w.Tickers())
	assert.True(t, w.Contains("aapl "))
	assert.False(t, w.Contains("TSLA"))
}

func TestProductLastPrice(t *testing.T) {
	var us Product
	require.NoError(t, json.Unmarshal([]byte(`{"symbol":"TSLA","lastTraded":180.5}`), &us))
	assert.Equal(t, 180.5, us.LastPrice())

	var asx Product
	require.NoError(t, json.Unmarshal([]byte(`{"symbol":"COL","lastTrade":"17.20","bid":17.19,"ask":17.21}`), &asx))
	assert.Equal(t, 17.2, asx.LastPrice())
	assert.Equal(t, 17.21, asx.Ask.Value)
}

func TestMarketStatusIsOpen(t *testing.T) {
	var m MarketStatus
	require.NoError(t, json.Unmarshal([]byte(`{"status":{"current":"open"}}`), &m))
	assert.True(t, m.IsOpen())

	m.Status.Current = "close"
	assert.False(t, m.IsOpen())
}
