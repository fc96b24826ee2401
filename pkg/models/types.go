package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Float is a number that tolerates the broker's habit of sending numbers as
// strings. Blank strings and null decode to zero.
type Float float64

func (f *Float) UnmarshalJSON(data []byte) error {
	v, _, err := parseFlexibleFloat(data)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

func (f Float) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

// NullFloat is a Float that remembers whether the broker sent a value.
type NullFloat struct {
	Value float64
	Valid bool
}

func NewNullFloat(v float64) NullFloat {
	return NullFloat{Value: v, Valid: true}
}

func (n *NullFloat) UnmarshalJSON(data []byte) error {
	v, ok, err := parseFlexibleFloat(data)
	if err != nil {
		return err
	}
	n.Value, n.Valid = v, ok
	return nil
}

func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func parseFlexibleFloat(data []byte) (float64, bool, error) {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return 0, false, nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
		if s == "" {
			return 0, false, nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return v, true, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"20060102",
}

// Timestamp accepts the date formats seen across the Stake endpoints: RFC3339,
// zone-less ISO datetimes, plain dates and unix seconds or milliseconds.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if data[0] != '"' {
		n, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid timestamp %s: %w", data, err)
		}
		t.Time = fromUnix(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	if isUnixDigits(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			t.Time = fromUnix(n)
			return nil
		}
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// isUnixDigits reports whether s looks like unix seconds (10 digits) or
// milliseconds (13 digits). Shorter digit runs are compact dates.
func isUnixDigits(s string) bool {
	if len(s) != 10 && len(s) != 13 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// unix timestamps above this are in milliseconds
const unixMillisThreshold = 1e11

func fromUnix(n int64) time.Time {
	if n > unixMillisThreshold {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ParseSide normalises the side spellings used by the two exchanges
// ("B", "buy", "BUY").
func ParseSide(s string) Side {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "B", "BUY":
		return SideBuy
	case "S", "SELL":
		return SideSell
	}
	return Side(strings.ToUpper(s))
}

type OrderType string

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeStop   OrderType = "STOP"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyAUD Currency = "AUD"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort orders paged ASX listings by an attribute such as "insertedAt".
type Sort struct {
	Attribute string        `json:"attribute"`
	Direction SortDirection `json:"direction"`
}

func (s Sort) String() string {
	return s.Attribute + "," + string(s.Direction)
}

// Validity is how long an ASX order stays on the book.
type Validity string

const (
	ValidityGoodForDay       Validity = "GFD"
	ValidityGoodTillCanceled Validity = "GTC"
)

// Page carries the pagination fields of the ASX list endpoints.
type Page struct {
	HasNext    bool `json:"hasNext"`
	Page       int  `json:"page"`
	TotalItems int  `json:"totalItems"`
}
