package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the transport, the upstream client and the enrichment layer
var (
	// Session errors
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrRefreshFailed   = errors.New("token refresh failed")
	ErrMissingVerifier = errors.New("pkce code verifier not found")

	// Upstream music API errors
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrFeatureUnavailable  = errors.New("audio features unavailable")

	// Enrichment collaborator errors
	ErrCollaboratorFailure = errors.New("collaborator failure")
	ErrNotConfigured       = errors.New("collaborator not configured")

	// General errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors
func Join(errs ...error) error {
	return errors.Join(errs...)
}
