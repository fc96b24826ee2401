package stake

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionTokenHeader = "Stake-Session-Token"

	EnvUsername = "STAKE_USER"
	EnvPassword = "STAKE_PASS"
	EnvToken    = "STAKE_TOKEN"

	DefaultRememberMeDays = 30
	DefaultPlatformType   = "WEB_f5K2x3"
)

// LoginRequest is either a CredentialsLogin or a TokenLogin.
type LoginRequest interface {
	loginRequest()
}

// CredentialsLogin exchanges a username and password (plus an optional
// one-time code) for a session token.
type CredentialsLogin struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	OTP            string `json:"otp,omitempty"`
	RememberMeDays int    `json:"rememberMeDays"`
	PlatformType   string `json:"platformType"`
}

// TokenLogin reuses a session token obtained elsewhere.
type TokenLogin struct {
	Token string
}

func (CredentialsLogin) loginRequest() {}
func (TokenLogin) loginRequest()       {}

// withDefaults fills blank fields from the environment and the platform
// defaults.
func (r CredentialsLogin) withDefaults() CredentialsLogin {
	if r.Username == "" {
		r.Username = os.Getenv(EnvUsername)
	}
	if r.Password == "" {
		r.Password = os.Getenv(EnvPassword)
	}
	if r.RememberMeDays <= 0 {
		r.RememberMeDays = DefaultRememberMeDays
	}
	if r.PlatformType == "" {
		r.PlatformType = DefaultPlatformType
	}
	return r
}

func (r CredentialsLogin) validate() error {
	if r.Username == "" {
		return invalid("username", "must be set or provided through %s", EnvUsername)
	}
	if r.Password == "" {
		return invalid("password", "must be set or provided through %s", EnvPassword)
	}
	return nil
}

func (r TokenLogin) withDefaults() TokenLogin {
	if r.Token == "" {
		r.Token = os.Getenv(EnvToken)
	}
	return r
}

// sessionAuth holds the session token and attaches it to every request.
// Concurrent Login calls are not serialized here.
type sessionAuth struct {
	mu    sync.RWMutex
	token string
}

func (s *sessionAuth) AddAuthHeaders(h http.Header) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token != "" {
		h.Set(SessionTokenHeader, s.token)
	}
	return nil
}

func (s *sessionAuth) set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *sessionAuth) get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// TokenExpiry reports the exp claim of a JWT session token. The signature is
// not verified. Opaque tokens report false.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
