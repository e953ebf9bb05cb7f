package schema

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTimedOut is returned when the identity widget never became available.
	ErrTimedOut = errors.New("identity widget timed out")
	// ErrExchangeInFlight is returned when an exchange or logout is already running.
	ErrExchangeInFlight = errors.New("credential exchange already in flight")
	// ErrNotInitialized is returned by operations that require a settled startup.
	ErrNotInitialized = errors.New("session not initialized")
	// ErrNotAuthenticated is returned when no user identity is held.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUnexpectedCredential is returned when a credential arrives in a state that does not await one.
	ErrUnexpectedCredential = errors.New("credential not expected")
)

// NetworkError represents an unreachable backend, a malformed body or an unexpected status.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: unexpected status %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AuthError is a structured rejection of a credential.
type AuthError struct {
	Reason     string
	StatusCode int
}

func (e *AuthError) Error() string {
	return e.Reason
}

// Reason extracts a human-readable reason from err, preferring AuthError reasons.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Reason
	}
	return err.Error()
}
