package stake

import (
	"errors"
	"fmt"

	"github.com/gregtusar/stake/pkg/models"
	"github.com/gregtusar/stake/pkg/stake/transport"
)

// ErrNotAuthenticated is returned by every resource call made before a
// successful Login.
var ErrNotAuthenticated = errors.New("stake: not authenticated")

// RequestFailedError is a non-2xx response from the broker.
type RequestFailedError = transport.RequestFailedError

// ValidationError rejects a malformed request before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "stake: invalid request: " + e.Reason
	}
	return fmt.Sprintf("stake: invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InvalidLoginError means the broker rejected the credentials or token. The
// message never includes the transport error; Unwrap exposes it for
// diagnostics.
type InvalidLoginError struct {
	Reason string
	cause  error
}

func (e *InvalidLoginError) Error() string {
	return "stake: invalid login: " + e.Reason
}

func (e *InvalidLoginError) Unwrap() error {
	return e.cause
}

// TradeFailedError is returned when a submitted trade was rejected by the
// broker or could not be confirmed.
type TradeFailedError struct {
	OrderID string
	Verdict models.Verdict
	Reason  string
	// Trade is the broker's provisional acknowledgment, when one was received.
	Trade *models.Trade
}

func (e *TradeFailedError) Error() string {
	if e.OrderID == "" {
		return fmt.Sprintf("stake: trade %s: %s", lower(e.Verdict), e.Reason)
	}
	return fmt.Sprintf("stake: trade %s %s: %s", e.OrderID, lower(e.Verdict), e.Reason)
}

// Rejected reports whether the broker confirmed the rejection, as opposed
// to the trade being unverifiable.
func (e *TradeFailedError) Rejected() bool {
	return e.Verdict == models.VerdictRejected
}

func lower(v models.Verdict) string {
	switch v {
	case models.VerdictRejected:
		return "rejected"
	case models.VerdictUnverifiable:
		return "unverifiable"
	}
	return string(v)
}

// UnsupportedError is returned for operations the selected exchange does not
// offer.
type UnsupportedError struct {
	Exchange  string
	Operation string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("stake: %s is not supported on the %s exchange", e.Operation, e.Exchange)
}
