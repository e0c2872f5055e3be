package providers

import (
	"errors"
	"fmt"
	"net/http"
)

// UpstreamError is the single failure kind surfaced to callers. It covers transport errors,
// timeouts, non-2xx statuses, and bodies that are not JSON.
type UpstreamError struct {
	Route      string
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%d %s: %s for url: %s", e.StatusCode, statusClass(e.StatusCode), http.StatusText(e.StatusCode), e.URL)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "upstream request failed for url: " + e.URL
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// AsUpstreamError attempts to unwrap an error into an UpstreamError.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr, true
	}
	return nil, false
}

// ErrInvalidPayload marks an upstream 2xx response whose body is not valid JSON.
var ErrInvalidPayload = errors.New("upstream returned a non-JSON body")

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "Server Error"
	case code >= 400:
		return "Client Error"
	default:
		return "Unexpected Status"
	}
}
