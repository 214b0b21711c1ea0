package tradier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrNotFound is returned when a symbol yields no quote, expirations,
// strikes, or chains. Callers match it with errors.Is.
var ErrNotFound = errors.New("not found")

// APIError represents an error response from the Tradier API. Order
// endpoints report brokerage rejections (e.g. insufficient buying power)
// this way; the messages are surfaced verbatim.
type APIError struct {
	StatusCode int
	Messages   []string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("tradier: API error (%d): %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("tradier: %s", strings.Join(e.Messages, "; "))
}

// IsNotFound returns true if the error is a 404 Not Found.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized returns true if the error is a 401 Unauthorized.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsRejection reports whether the API carried brokerage rejection
// messages rather than a bare transport-level failure.
func (e *APIError) IsRejection() bool {
	return len(e.Messages) > 0
}

// errorEnvelope matches Tradier's error body. The inner "error" field is
// a string for a single message and an array for several.
type errorEnvelope struct {
	Errors struct {
		Error json.RawMessage `json:"error"`
	} `json:"errors"`
	Fault struct {
		FaultString string `json:"faultstring"`
	} `json:"fault"`
}

// CheckResponse inspects the HTTP response and returns an *APIError for
// any non-2xx status, with rejection messages parsed when present.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		// Not JSON; keep the raw body as the message.
		apiErr.Messages = []string{strings.TrimSpace(string(body))}
		return apiErr
	}

	if msgs, err := listOrSingle[string](env.Errors.Error); err == nil && len(msgs) > 0 {
		apiErr.Messages = msgs
	} else if env.Fault.FaultString != "" {
		apiErr.Messages = []string{env.Fault.FaultString}
	}

	return apiErr
}
