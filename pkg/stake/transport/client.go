package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const DefaultTimeout = 30 * time.Second

// Authenticator adds the session header set to an outgoing request.
type Authenticator interface {
	AddAuthHeaders(header http.Header) error
}

type Options struct {
	Timeout time.Duration
	Headers map[string]string
	Logger  *logrus.Logger
	// Limiter throttles outgoing requests when set. The client applies no
	// limit of its own.
	Limiter *rate.Limiter
	Auth    Authenticator
	// HTTPClient replaces the underlying *http.Client, mostly for tests.
	HTTPClient *http.Client
}

// Client performs single-attempt JSON requests against absolute URLs. It
// holds no state beyond its configuration and is safe to share.
type Client struct {
	client  *resty.Client
	logger  *logrus.Logger
	limiter *rate.Limiter
	auth    Authenticator
}

func New(opts Options) *Client {
	var rc *resty.Client
	if opts.HTTPClient != nil {
		rc = resty.NewWithClient(opts.HTTPClient)
	} else {
		rc = resty.New()
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rc.SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	for k, v := range opts.Headers {
		rc.SetHeader(k, v)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Client{
		client:  rc,
		logger:  logger,
		limiter: opts.Limiter,
		auth:    opts.Auth,
	}
}

// Get fetches endpoint and decodes the JSON body into out (when non-nil).
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values, out any) error {
	_, err := c.do(ctx, http.MethodGet, endpoint, query, nil, out)
	return err
}

// Post sends body as JSON and decodes the response into out (when non-nil).
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	_, err := c.do(ctx, http.MethodPost, endpoint, nil, body, out)
	return err
}

// Delete reports true when the broker accepted the deletion. A non-nil out
// receives the decoded response body.
func (c *Client) Delete(ctx context.Context, endpoint string, body, out any) (bool, error) {
	resp, err := c.do(ctx, http.MethodDelete, endpoint, nil, body, out)
	if err != nil {
		return false, err
	}
	return resp.IsSuccess(), nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out any) (*resty.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "rate limiter")
		}
	}

	req := c.client.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if c.auth != nil {
		if err := c.auth.AddAuthHeaders(req.Header); err != nil {
			return nil, errors.Wrap(err, "failed to add auth headers")
		}
	}

	start := time.Now()
	resp, err := req.Execute(method, endpoint)
	fields := logrus.Fields{
		"method":   method,
		"url":      endpoint,
		"duration": time.Since(start),
	}
	if err != nil {
		c.logger.WithFields(fields).WithError(err).Debug("Request failed")
		return nil, errors.Wrapf(err, "%s %s", method, endpoint)
	}

	fields["status"] = resp.StatusCode()
	c.logger.WithFields(fields).Debug("Request completed")

	if !resp.IsSuccess() {
		return resp, &RequestFailedError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode(),
			Body:       string(resp.Body()),
		}
	}

	if out != nil {
		raw := resp.Body()
		if len(strings.TrimSpace(string(raw))) == 0 {
			return resp, nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return resp, errors.Wrapf(err, "failed to decode %s %s response", method, endpoint)
		}
	}

	return resp, nil
}
