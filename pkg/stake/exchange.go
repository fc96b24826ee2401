package stake

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	ExchangeNYSE = "NYSE"
	ExchangeASX  = "ASX"

	DefaultAPIBase = "https://global-prd-api.hellostake.com/api/"
	stakeoverBase  = "https://api.prd.stakeover.io/"
)

// Endpoints are path templates relative to ExchangeConfig.APIBase, or
// absolute URLs. Placeholders look like {symbol}. An empty template marks
// the operation as unsupported on the exchange.
type Endpoints struct {
	CreateSession string
	User          string

	Product              string
	ProductSuggestions   string
	InstrumentFromSymbol string

	Orders      string
	CancelOrder string
	Brokerage   string
	Buy         string
	Sell        string

	EquityPositions string
	CashAvailable   string
	FundsInFlight   string
	Fundings        string
	FundingDetails  string
	Transactions    string
	Rate            string
	MarketStatus    string
	Ratings         string
	Statements      string

	// relative to ExchangeConfig.WatchlistBase
	Watchlists      string
	CreateWatchlist string
	Watchlist       string
	WatchlistItems  string
}

// Shape flags describe how an exchange's payloads differ.
type Shape struct {
	// PagedLists: list endpoints return {items, hasNext, page, totalItems}
	// and page with size/page/sort query parameters.
	PagedLists bool
	// CancelWithPost: cancellation is a POST with an empty object rather
	// than a DELETE.
	CancelWithPost bool
	// ResolveInstrumentBySymbol: trades carry an instrument code looked up
	// through Endpoints.InstrumentFromSymbol instead of the product id.
	ResolveInstrumentBySymbol bool
	// QuoteMarketOrders: market orders must carry a reference price.
	QuoteMarketOrders bool
	// EnvelopedProducts: product lookups return {"products": [...]}.
	EnvelopedProducts bool
	// WholeUnits: trades are sized in whole units, never in cash.
	WholeUnits bool
	// StopOrders: the exchange accepts stop orders.
	StopOrders bool
	// ASXPayloads: orders, trades and trade activity use the ASX field
	// names (string order types, units, instrumentCode).
	ASXPayloads bool
}

// ExchangeConfig selects the endpoint set and payload shapes every resource
// client uses.
type ExchangeConfig struct {
	Name          string
	APIBase       string
	WatchlistBase string
	Endpoints     Endpoints
	Shape         Shape
	// RejectionPattern matches the broker's free-text status of a rejected
	// order during trade verification. It is broker-specific and has changed
	// between API versions; treat it as a heuristic.
	RejectionPattern *regexp.Regexp
	// TransactionLimit is the default page size for transaction listings.
	TransactionLimit int
}

// NYSE is the US exchange configuration.
func NYSE() ExchangeConfig {
	return ExchangeConfig{
		Name:          ExchangeNYSE,
		APIBase:       DefaultAPIBase,
		WatchlistBase: stakeoverBase + "us/instrument/",
		Endpoints: Endpoints{
			CreateSession:      "sessions/v2/createSession",
			User:               "user",
			Product:            "products/searchProduct?symbol={symbol}&page=1&max=1",
			ProductSuggestions: "products/getProductSuggestions/{keyword}",
			Orders:             "users/accounts/v2/orders",
			CancelOrder:        "orders/cancelOrder/{orderId}",
			Buy:                "purchaseorders/v2/quickBuy",
			Sell:               "sellorders",
			EquityPositions:    "users/accounts/v2/equityPositions",
			CashAvailable:      "users/accounts/cashAvailableForWithdrawal",
			FundsInFlight:      "fund/details",
			Fundings:           "users/accounts/transactionHistory",
			FundingDetails:     "users/accounts/transactionDetails?reference={reference}&referenceType={referenceType}",
			Transactions:       "users/accounts/accountTransactions",
			Rate:               "wallet/rate",
			MarketStatus:       "utils/marketStatus",
			Ratings:            "data/calendar/ratings?tickers={symbols}&pageSize={limit}",
			Statements:         "data/fundamentals/statements?symbol={symbol}&date={date}",
			Watchlists:         "watchlists",
			CreateWatchlist:    "watchlist",
			Watchlist:          "watchlist/{watchlistId}",
			WatchlistItems:     "watchlist/{watchlistId}/items",
		},
		Shape: Shape{
			EnvelopedProducts: true,
			StopOrders:        true,
		},
		RejectionPattern: regexp.MustCompile(`^\s*\d+\b`),
		TransactionLimit: 1000,
	}
}

// ASX is the Australian exchange configuration.
func ASX() ExchangeConfig {
	return ExchangeConfig{
		Name:          ExchangeASX,
		APIBase:       DefaultAPIBase,
		WatchlistBase: stakeoverBase + "asx/instrument/",
		Endpoints: Endpoints{
			CreateSession:        "sessions/v2/createSession",
			User:                 "user",
			Product:              "asx/instrument/singleQuote/{symbol}",
			ProductSuggestions:   "asx/instrument/search?searchKey={keyword}",
			InstrumentFromSymbol: "asx/instrument/fromSymbol/{symbol}",
			Orders:               "asx/orders",
			CancelOrder:          "asx/orders/{orderId}/cancel",
			Brokerage:            "asx/orders/brokerage?orderAmount={orderAmount}",
			Buy:                  "asx/orders",
			Sell:                 "asx/orders",
			EquityPositions:      "asx/instrument/equityPositions",
			CashAvailable:        "asx/cash",
			Fundings:             "asx/transactions",
			Transactions:         "asx/orders/tradeActivity",
			Rate:                 "wallet/rate",
			MarketStatus:         "asx/instrument/marketStatus",
			Watchlists:           "watchlists",
			CreateWatchlist:      "watchlist",
			Watchlist:            "watchlist/{watchlistId}",
			WatchlistItems:       "watchlist/{watchlistId}/items",
		},
		Shape: Shape{
			PagedLists:                true,
			CancelWithPost:            true,
			ResolveInstrumentBySymbol: true,
			QuoteMarketOrders:         true,
			WholeUnits:                true,
			ASXPayloads:               true,
		},
		RejectionPattern: regexp.MustCompile(`(?i)^\s*(rejected|cancell?ed|expired)`),
		TransactionLimit: 100,
	}
}

// ExchangeByName returns the configuration for "NYSE"/"US" or "ASX"/"AU".
func ExchangeByName(name string) (ExchangeConfig, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", ExchangeNYSE, "US":
		return NYSE(), true
	case ExchangeASX, "AU":
		return ASX(), true
	}
	return ExchangeConfig{}, false
}

// WithBaseURLs overrides the API and watchlist hosts, keeping the exchange
// path layout. Empty values leave the current base untouched.
func (e ExchangeConfig) WithBaseURLs(apiBase, watchlistBase string) ExchangeConfig {
	if apiBase != "" {
		e.APIBase = apiBase
	}
	if watchlistBase != "" {
		e.WatchlistBase = watchlistBase
	}
	return e
}

func (e ExchangeConfig) apiURL(operation, template string, params ...string) (string, error) {
	return e.resolve(e.APIBase, operation, template, params...)
}

func (e ExchangeConfig) watchlistURL(operation, template string, params ...string) (string, error) {
	return e.resolve(e.WatchlistBase, operation, template, params...)
}

// resolve expands template with key/value params. Values before the '?' are
// path-escaped, those after it query-escaped.
func (e ExchangeConfig) resolve(base, operation, template string, params ...string) (string, error) {
	if template == "" {
		return "", &UnsupportedError{Exchange: e.Name, Operation: operation}
	}

	path, query, hasQuery := strings.Cut(template, "?")
	for i := 0; i+1 < len(params); i += 2 {
		slot := "{" + params[i] + "}"
		path = strings.ReplaceAll(path, slot, url.PathEscape(params[i+1]))
		if hasQuery {
			query = strings.ReplaceAll(query, slot, url.QueryEscape(params[i+1]))
		}
	}
	if hasQuery {
		path += "?" + query
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, nil
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/"), nil
}
