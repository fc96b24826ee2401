package stake

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const testUserJSON = `{"userId":"u-1","firstName":"Ada","lastName":"Lovelace","emailAddress":"ada@example.com","macStatus":"OK","accountType":"INDIVIDUAL","regionIdentifier":"AU"}`

// fakeStake is an in-process Stake API that counts hits per method and path.
type fakeStake struct {
	t   *testing.T
	srv *httptest.Server

	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	hits   map[string]int
}

func newFakeStake(t *testing.T) *fakeStake {
	t.Helper()
	f := &fakeStake{
		t:      t,
		routes: map[string]http.HandlerFunc{},
		hits:   map[string]int{},
	}
	f.srv = httptest.NewServer(f)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeStake) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.hits[key]++
	h := f.routes[key]
	f.mu.Unlock()

	if h == nil {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
		return
	}
	h(w, r)
}

func (f *fakeStake) handle(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = h
}

func (f *fakeStake) reply(method, path string, status int, body string) {
	f.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func (f *fakeStake) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[method+" "+path]
}

func (f *fakeStake) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, v := range f.hits {
		n += v
	}
	return n
}

// writes counts every POST and DELETE.
func (f *fakeStake) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for k, v := range f.hits {
		if strings.HasPrefix(k, "POST ") || strings.HasPrefix(k, "DELETE ") {
			n += v
		}
	}
	return n
}

func (f *fakeStake) nyse() ExchangeConfig {
	return NYSE().WithBaseURLs(f.srv.URL+"/api/", f.srv.URL+"/us/instrument/")
}

func (f *fakeStake) asx() ExchangeConfig {
	return ASX().WithBaseURLs(f.srv.URL+"/api/", f.srv.URL+"/asx/instrument/")
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestClient(cfg ExchangeConfig) *Client {
	return New(Options{Exchange: &cfg, Logger: quietLogger()})
}

// loggedIn returns a client with a token session on cfg.
func (f *fakeStake) loggedIn(cfg ExchangeConfig) *Client {
	f.t.Helper()
	f.reply(http.MethodGet, "/api/user", http.StatusOK, testUserJSON)

	c := newTestClient(cfg)
	_, err := c.Login(context.Background(), TokenLogin{Token: "test-token"})
	require.NoError(f.t, err)
	return c
}
