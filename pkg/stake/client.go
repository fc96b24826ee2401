package stake

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/gregtusar/stake/pkg/models"
	"github.com/gregtusar/stake/pkg/stake/transport"
)

// DefaultHeaders are sent with every request.
var DefaultHeaders = map[string]string{
	"Origin":  "https://stake.com.au",
	"Referer": "https://stake.com.au/dashboard/portfolio",
}

type Options struct {
	// Exchange defaults to NYSE().
	Exchange *ExchangeConfig
	Logger   *logrus.Logger
	Timeout  time.Duration
	// Limiter is optional; the client does not throttle on its own.
	Limiter    *rate.Limiter
	HTTPClient *http.Client
	// VerifyLookback is how many recent transactions trade verification
	// inspects. Defaults to DefaultVerifyLookback.
	VerifyLookback int
}

// Client is an authenticated session against the Stake API. Log in once,
// then use the resource clients; they always read the current exchange
// configuration, so SetExchange takes effect on the next call.
type Client struct {
	http   *transport.Client
	auth   *sessionAuth
	logger *logrus.Logger

	mu       sync.RWMutex
	exchange ExchangeConfig
	user     *models.User

	verifyLookback int

	Products     *ProductsClient
	Orders       *OrdersClient
	Equities     *EquitiesClient
	Fundings     *FundingsClient
	Transactions *TransactionsClient
	FX           *FxClient
	Watchlists   *WatchlistsClient
	Market       *MarketClient
	Ratings      *RatingsClient
	Statements   *StatementsClient
	Trades       *TradesClient
}

func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	exchange := NYSE()
	if opts.Exchange != nil {
		exchange = *opts.Exchange
	}

	lookback := opts.VerifyLookback
	if lookback <= 0 {
		lookback = DefaultVerifyLookback
	}

	auth := &sessionAuth{}
	c := &Client{
		http: transport.New(transport.Options{
			Timeout:    opts.Timeout,
			Headers:    DefaultHeaders,
			Logger:     logger,
			Limiter:    opts.Limiter,
			Auth:       auth,
			HTTPClient: opts.HTTPClient,
		}),
		auth:           auth,
		logger:         logger,
		exchange:       exchange,
		verifyLookback: lookback,
	}

	c.Products = &ProductsClient{c: c}
	c.Orders = &OrdersClient{c: c}
	c.Equities = &EquitiesClient{c: c}
	c.Fundings = &FundingsClient{c: c}
	c.Transactions = &TransactionsClient{c: c}
	c.FX = &FxClient{c: c}
	c.Watchlists = &WatchlistsClient{c: c}
	c.Market = &MarketClient{c: c}
	c.Ratings = &RatingsClient{c: c}
	c.Statements = &StatementsClient{c: c}
	c.Trades = &TradesClient{c: c}

	return c
}

// Login authenticates with credentials or an existing session token and
// fetches the user profile. Any previous session is discarded first.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*models.User, error) {
	c.clearSession()
	exchange := c.Exchange()

	var token string
	switch r := req.(type) {
	case CredentialsLogin:
		r = r.withDefaults()
		if err := r.validate(); err != nil {
			return nil, err
		}
		endpoint, err := exchange.apiURL("login", exchange.Endpoints.CreateSession)
		if err != nil {
			return nil, err
		}
		var resp struct {
			SessionKey string `json:"sessionKey"`
		}
		if err := c.http.Post(ctx, endpoint, r, &resp); err != nil {
			return nil, loginError(err, "credentials rejected")
		}
		if resp.SessionKey == "" {
			return nil, &InvalidLoginError{Reason: "no session key returned"}
		}
		token = resp.SessionKey
	case TokenLogin:
		r = r.withDefaults()
		if r.Token == "" {
			return nil, invalid("token", "must be set or provided through %s", EnvToken)
		}
		token = r.Token
	case nil:
		return nil, invalid("login", "no login request")
	default:
		return nil, invalid("login", "unsupported login request %T", req)
	}

	c.auth.set(token)

	endpoint, err := exchange.apiURL("user", exchange.Endpoints.User)
	if err != nil {
		c.clearSession()
		return nil, err
	}
	var user models.User
	if err := c.http.Get(ctx, endpoint, nil, &user); err != nil {
		c.clearSession()
		return nil, loginError(err, "session token rejected")
	}

	c.mu.Lock()
	c.user = &user
	c.mu.Unlock()

	entry := c.logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"exchange": exchange.Name,
	})
	if exp, ok := TokenExpiry(token); ok {
		entry = entry.WithField("expires_at", exp.Format(time.RFC3339))
	}
	entry.Info("Logged in to Stake")

	return &user, nil
}

// Session logs in, runs fn and returns its error. There is nothing to tear
// down afterwards: the broker session simply expires.
func (c *Client) Session(ctx context.Context, req LoginRequest, fn func(ctx context.Context, c *Client) error) error {
	if _, err := c.Login(ctx, req); err != nil {
		return err
	}
	return fn(ctx, c)
}

// User returns the logged-in user, or nil before Login.
func (c *Client) User() *models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

func (c *Client) Authenticated() bool {
	return c.User() != nil
}

// SessionToken is the current session token, empty before Login.
func (c *Client) SessionToken() string {
	return c.auth.get()
}

func (c *Client) Exchange() ExchangeConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.exchange
}

// SetExchange switches every resource client to cfg. The session is kept.
func (c *Client) SetExchange(cfg ExchangeConfig) {
	c.mu.Lock()
	c.exchange = cfg
	c.mu.Unlock()

	c.logger.WithField("exchange", cfg.Name).Debug("Exchange switched")
}

func (c *Client) clearSession() {
	c.auth.set("")
	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()
}

// session returns the exchange config for an authenticated call.
func (c *Client) session() (ExchangeConfig, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return ExchangeConfig{}, ErrNotAuthenticated
	}
	return c.exchange, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	if !c.Authenticated() {
		return ErrNotAuthenticated
	}
	return c.http.Get(ctx, endpoint, query, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	if !c.Authenticated() {
		return ErrNotAuthenticated
	}
	return c.http.Post(ctx, endpoint, body, out)
}

func (c *Client) delete(ctx context.Context, endpoint string, body, out any) (bool, error) {
	if !c.Authenticated() {
		return false, ErrNotAuthenticated
	}
	return c.http.Delete(ctx, endpoint, body, out)
}

func loginError(err error, reason string) error {
	var failed *RequestFailedError
	if errors.As(err, &failed) && failed.IsAuthError() {
		return &InvalidLoginError{Reason: reason, cause: err}
	}
	return err
}
