package stake

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregtusar/stake/pkg/models"
)

func TestResourceCallsRequireLogin(t *testing.T) {
	f := newFakeStake(t)
	c := newTestClient(f.nyse())
	ctx := context.Background()

	_, err := c.Market.IsOpen(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = c.Products.Get(ctx, "AAPL")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = c.Trades.Submit(ctx, models.MarketBuy("AAPL", 100))
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = c.Watchlists.AddTickers(ctx, "w-1", "AAPL")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = c.Orders.Cancel(ctx, "o-1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = c.Fundings.List(ctx, models.FundingFilter{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	assert.Zero(t, f.total())
	assert.False(t, c.Authenticated())
}

func TestLoginWithCredentials(t *testing.T) {
	f := newFakeStake(t)
	f.handle(http.MethodPost, "/api/sessions/v2/createSession", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada", body["username"])
		assert.Equal(t, "hunter2", body["password"])
		assert.Equal(t, "123456", body["otp"])
		assert.EqualValues(t, DefaultRememberMeDays, body["rememberMeDays"])
		assert.Equal(t, DefaultPlatformType, body["platformType"])
		assert.Empty(t, r.Header.Get(SessionTokenHeader))
		_, _ = w.Write([]byte(`{"sessionKey":"session-abc"}`))
	})
	f.handle(http.MethodGet, "/api/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "session-abc", r.Header.Get(SessionTokenHeader))
		assert.Equal(t, "https://stake.com.au", r.Header.Get("Origin"))
		_, _ = w.Write([]byte(testUserJSON))
	})
	f.reply(http.MethodGet, "/api/utils/marketStatus", http.StatusOK,
		`{"response":{"status":{"current":"open"},"message":"Market is open"}}`)

	c := newTestClient(f.nyse())
	user, err := c.Login(context.Background(), CredentialsLogin{Username: "ada", Password: "hunter2", OTP: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "Ada Lovelace", user.FullName())
	assert.Equal(t, "session-abc", c.SessionToken())

	open, err := c.Market.IsOpen(context.Background())
	require.NoError(t, err)
	assert.True(t, open)
}

func TestLoginCredentialsFromEnvironment(t *testing.T) {
	t.Setenv(EnvUsername, "env-user")
	t.Setenv(EnvPassword, "env-pass")

	f := newFakeStake(t)
	f.handle(http.MethodPost, "/api/sessions/v2/createSession", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "env-user", body["username"])
		assert.Equal(t, "env-pass", body["password"])
		_, _ = w.Write([]byte(`{"sessionKey":"k"}`))
	})
	f.reply(http.MethodGet, "/api/user", http.StatusOK, testUserJSON)

	c := newTestClient(f.nyse())
	_, err := c.Login(context.Background(), CredentialsLogin{})
	require.NoError(t, err)
}

func TestLoginTokenFromEnvironment(t *testing.T) {
	t.Setenv(EnvToken, "env-token")

	f := newFakeStake(t)
	f.handle(http.MethodGet, "/api/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "env-token", r.Header.Get(SessionTokenHeader))
		_, _ = w.Write([]byte(testUserJSON))
	})

	c := newTestClient(f.nyse())
	_, err := c.Login(context.Background(), TokenLogin{})
	require.NoError(t, err)
	assert.Zero(t, f.count(http.MethodPost, "/api/sessions/v2/createSession"))
}

func TestLoginMissingCredentials(t *testing.T) {
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")
	t.Setenv(EnvToken, "")

	f := newFakeStake(t)
	c := newTestClient(f.nyse())

	_, err := c.Login(context.Background(), CredentialsLogin{Username: "ada"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)

	_, err = c.Login(context.Background(), TokenLogin{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "token", verr.Field)

	assert.Zero(t, f.total())
}

func TestLoginRejected(t *testing.T) {
	f := newFakeStake(t)
	f.reply(http.MethodPost, "/api/sessions/v2/createSession", http.StatusUnauthorized,
		`{"message":"internal detail"}`)

	c := newTestClient(f.nyse())
	_, err := c.Login(context.Background(), CredentialsLogin{Username: "ada", Password: "wrong"})

	var loginErr *InvalidLoginError
	require.ErrorAs(t, err, &loginErr)
	assert.NotContains(t, err.Error(), "internal detail")

	var failed *RequestFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusUnauthorized, failed.StatusCode)

	assert.False(t, c.Authenticated())
	assert.Empty(t, c.SessionToken())
	assert.Zero(t, f.count(http.MethodGet, "/api/user"))
}

func TestLoginExpiredTokenClearsSession(t *testing.T) {
	f := newFakeStake(t)
	f.reply(http.MethodGet, "/api/user", http.StatusForbidden, `{"message":"expired"}`)

	c := newTestClient(f.nyse())
	_, err := c.Login(context.Background(), TokenLogin{Token: "stale"})

	var loginErr *InvalidLoginError
	require.ErrorAs(t, err, &loginErr)
	assert.Empty(t, c.SessionToken())

	_, err = c.Equities.List(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLoginServerErrorIsNotInvalidLogin(t *testing.T) {
	f := newFakeStake(t)
	f.reply(http.MethodGet, "/api/user", http.StatusBadGateway, `bad gateway`)

	c := newTestClient(f.nyse())
	_, err := c.Login(context.Background(), TokenLogin{Token: "t"})

	var loginErr *InvalidLoginError
	assert.False(t, errors.As(err, &loginErr))
	var failed *RequestFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusBadGateway, failed.StatusCode)
}

func TestLoginRateLimitIsNotInvalidLogin(t *testing.T) {
	f := newFakeStake(t)
	f.reply(http.MethodPost, "/api/sessions/v2/createSession", http.StatusTooManyRequests,
		`{"message":"slow down"}`)

	c := newTestClient(f.nyse())
	_, err := c.Login(context.Background(), CredentialsLogin{Username: "ada", Password: "pw"})

	var loginErr *InvalidLoginError
	assert.False(t, errors.As(err, &loginErr))
	var failed *RequestFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusTooManyRequests, failed.StatusCode)
	assert.False(t, c.Authenticated())
}

func TestSessionRunsCallback(t *testing.T) {
	f := newFakeStake(t)
	f.reply(http.MethodGet, "/api/user", http.StatusOK, testUserJSON)

	c := newTestClient(f.nyse())
	called := false
	err := c.Session(context.Background(), TokenLogin{Token: "t"}, func(ctx context.Context, sc *Client) error {
		called = true
		assert.Same(t, c, sc)
		assert.Equal(t, "u-1", sc.User().ID)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)

	sentinel := errors.New("boom")
	err = c.Session(context.Background(), TokenLogin{Token: "t"}, func(context.Context, *Client) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestSetExchangeSwitchesEndpoints(t *testing.T) {
	f := newFakeStake(t)
	f.reply(http.MethodGet, "/api/users/accounts/v2/equityPositions", http.StatusOK,
		`{"equityPositions":[{"symbol":"AAPL","marketValue":"150.5"}],"equityValue":150.5}`)
	f.reply(http.MethodGet, "/api/asx/instrument/equityPositions", http.StatusOK,
		`{"equityPositions":[{"symbol":"BHP","marketValue":40,"averagePrice":38.2}],"pageNum":0,"hasNext":false}`)

	c := f.loggedIn(f.nyse())
	ctx := context.Background()

	us, err := c.Equities.List(ctx)
	require.NoError(t, err)
	require.Len(t, us.EquityPositions, 1)
	assert.Equal(t, "AAPL", us.EquityPositions[0].Symbol)

	c.SetExchange(f.asx())
	assert.Equal(t, ExchangeASX, c.Exchange().Name)

	au, err := c.Equities.List(ctx)
	require.NoError(t, err)
	require.Len(t, au.EquityPositions, 1)
	assert.Equal(t, "BHP", au.EquityPositions[0].Symbol)
	assert.Equal(t, 38.2, au.EquityPositions[0].AverageCost())
	assert.Equal(t, 40.0, au.Value())

	assert.Equal(t, 1, f.count(http.MethodGet, "/api/users/accounts/v2/equityPositions"))
	assert.Equal(t, 1, f.count(http.MethodGet, "/api/asx/instrument/equityPositions"))
}

func TestUnsupportedOperationsMakeNoCall(t *testing.T) {
	f := newFakeStake(t)
	c := f.loggedIn(f.nyse())
	ctx := context.Background()
	before := f.total()

	_, err := c.Orders.Brokerage(ctx, 1000)
	var unsupported *UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ExchangeNYSE, unsupported.Exchange)

	c.SetExchange(f.asx())
	_, err = c.Ratings.List(ctx, models.RatingsRequest{Symbols: []string{"BHP"}})
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ExchangeASX, unsupported.Exchange)

	_, err = c.Statements.List(ctx, models.StatementRequest{Symbol: "BHP"})
	require.ErrorAs(t, err, &unsupported)

	assert.Equal(t, before, f.total())
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("not-the-broker-key"))
	require.NoError(t, err)

	got, ok := TokenExpiry(token)
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = TokenExpiry("opaque-session-key")
	assert.False(t, ok)
}
