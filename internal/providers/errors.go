package providers

import (
	"context"
	"errors"
	"net/url"
)

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

type rateLimitError struct{}

func (e *rateLimitError) Error() string { return "rate limited" }

type timeoutError struct {
	err error
}

func (e *timeoutError) Error() string {
	return "request timed out: " + e.err.Error()
}

func (e *timeoutError) Unwrap() error { return e.err }

type unreachableError struct {
	err error
}

func (e *unreachableError) Error() string {
	return "cannot reach backend: " + e.err.Error()
}

func (e *unreachableError) Unwrap() error { return e.err }

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

// IsRateLimited checks if an error is a rate-limit rejection.
func IsRateLimited(err error) bool {
	var re *rateLimitError
	return errors.As(err, &re)
}

// IsTimeout checks if an error is an expired bounded wait.
func IsTimeout(err error) bool {
	var te *timeoutError
	return errors.As(err, &te)
}

// IsUnreachable checks if an error is a failed connection attempt.
func IsUnreachable(err error) bool {
	var ue *unreachableError
	return errors.As(err, &ue)
}

// classifyTransport converts an http.Client transport failure into the
// shared timeout/unreachable types. Client timeouts surface as *url.Error
// with Timeout() true; context expiry is a timeout as well.
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &timeoutError{err: err}
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return &timeoutError{err: err}
	}
	return &unreachableError{err: err}
}
