package spotify

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/now-playing/internal/errors"
)

var (
	// ErrNotFound means the upstream has no data for the resource (e.g. no audio analysis)
	ErrNotFound = fmt.Errorf("spotify: %w", errors.ErrNotFound)
	// ErrForbidden means the session lacks the scope for the resource
	ErrForbidden = fmt.Errorf("spotify: %w", errors.ErrForbidden)
	// ErrUnauthorized means the access token was rejected
	ErrUnauthorized = fmt.Errorf("spotify: %w", errors.ErrUnauthenticated)
)

// UpstreamError is any other non-success answer from the music API, or a transport failure
type UpstreamError struct {
	Endpoint   string
	StatusCode int // zero for transport failures
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("spotify %s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("spotify %s: status %d %s", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap lets callers match errors.ErrUpstreamUnavailable and the transport cause
func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{errors.ErrUpstreamUnavailable}
	}
	return []error{errors.ErrUpstreamUnavailable, e.Err}
}

// IsFeatureUnavailable reports whether err should degrade to neutral audio features
func IsFeatureUnavailable(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden)
}

func statusError(endpoint string, status int) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &UpstreamError{Endpoint: endpoint, StatusCode: status}
	}
}
