package review

import (
	"errors"

	"github.com/dshills/critic/internal/prompt"
	"github.com/dshills/critic/internal/providers"
)

// ErrorKind names a failure condition in the shared error vocabulary. Every
// per-file failure maps onto one of these; backend-specific error types
// never leave this package's boundary.
type ErrorKind string

const (
	KindTemplateNotFound     ErrorKind = "TemplateNotFound"
	KindBackendUnreachable   ErrorKind = "BackendUnreachable"
	KindBackendTimeout       ErrorKind = "BackendTimeout"
	KindAuthenticationFailed ErrorKind = "AuthenticationFailed"
	KindRateLimited          ErrorKind = "RateLimited"
	KindBackendOther         ErrorKind = "BackendOther"
	KindFileUnreadable       ErrorKind = "FileUnreadable"
)

// Error is a classified per-file failure.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Classify converts a pipeline error into the shared vocabulary. Unmatched
// errors become KindBackendOther with the message carried verbatim.
func Classify(err error) *Error {
	var nf *prompt.NotFoundError
	switch {
	case errors.As(err, &nf):
		return &Error{Kind: KindTemplateNotFound, Message: err.Error()}
	case providers.IsAuthError(err):
		return &Error{Kind: KindAuthenticationFailed, Message: err.Error()}
	case providers.IsRateLimited(err):
		return &Error{Kind: KindRateLimited, Message: err.Error()}
	case providers.IsTimeout(err):
		return &Error{Kind: KindBackendTimeout, Message: err.Error()}
	case providers.IsUnreachable(err):
		return &Error{Kind: KindBackendUnreachable, Message: err.Error()}
	default:
		return &Error{Kind: KindBackendOther, Message: err.Error()}
	}
}
