package transport

import (
	"fmt"
	"net/http"
)

// maxBodyInError keeps error strings readable when the broker returns an
// HTML error page.
const maxBodyInError = 512

// RequestFailedError is returned for every non-2xx response.
type RequestFailedError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *RequestFailedError) Error() string {
	body := e.Body
	if len(body) > maxBodyInError {
		body = body[:maxBodyInError] + "..."
	}
	return fmt.Sprintf("%s %s: http %d: %s", e.Method, e.URL, e.StatusCode, body)
}

// IsAuthError reports whether the broker rejected the credentials or the
// session token.
func (e *RequestFailedError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func (e *RequestFailedError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

func (e *RequestFailedError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
