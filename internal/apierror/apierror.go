// Package apierror defines the error taxonomy returned by the Klubraum client.
// Callers discriminate failures by Kind instead of matching message text.
package apierror

import (
	"errors"
	"fmt"
)

// Kind classifies a client failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindUnauthorized is a 401: bad credentials or an expired token.
	KindUnauthorized
	// KindRateLimited is a 429.
	KindRateLimited
	// KindHTTPFailure is any other non-200 status, or a transport error (StatusCode 0).
	KindHTTPFailure
	// KindDecodeFailure is a response body that could not be decoded.
	KindDecodeFailure
	// KindPreconditionFailed is an operation called in a session, role, or tenant state it does not allow.
	KindPreconditionFailed
	// KindAmbiguousTenant is implicit tenant resolution with zero or several candidates.
	KindAmbiguousTenant
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindRateLimited:
		return "rate limited"
	case KindHTTPFailure:
		return "http failure"
	case KindDecodeFailure:
		return "decode failure"
	case KindPreconditionFailed:
		return "precondition failed"
	case KindAmbiguousTenant:
		return "ambiguous tenant"
	default:
		return "unknown"
	}
}

// Error is the concrete error type for every client failure.
type Error struct {
	Kind       Kind
	Detail     string
	StatusCode int // HTTP status when the failure came from a response; 0 otherwise
	Err        error
}

func (e *Error) Error() string {
	msg := "klubraum: " + e.Kind.String()
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind, so the sentinel values below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is; compare by Kind only.
var (
	ErrUnauthorized       = &Error{Kind: KindUnauthorized}
	ErrRateLimited        = &Error{Kind: KindRateLimited}
	ErrHTTPFailure        = &Error{Kind: KindHTTPFailure}
	ErrDecodeFailure      = &Error{Kind: KindDecodeFailure}
	ErrPreconditionFailed = &Error{Kind: KindPreconditionFailed}
	ErrAmbiguousTenant    = &Error{Kind: KindAmbiguousTenant}
)

// KindOf returns the Kind of err, or KindUnknown when err is not (and does not wrap) an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Unauthorized returns a KindUnauthorized error carrying the server's message.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Detail: message, StatusCode: 401}
}

// RateLimited returns a KindRateLimited error.
func RateLimited() *Error {
	return &Error{Kind: KindRateLimited, StatusCode: 429}
}

// HTTPFailure returns a KindHTTPFailure error for the given status. cause may be nil.
func HTTPFailure(status int, cause error) *Error {
	return &Error{Kind: KindHTTPFailure, StatusCode: status, Err: cause}
}

// DecodeFailure returns a KindDecodeFailure error wrapping cause.
func DecodeFailure(detail string, cause error) *Error {
	return &Error{Kind: KindDecodeFailure, Detail: detail, Err: cause}
}

// PreconditionFailed returns a KindPreconditionFailed error.
func PreconditionFailed(format string, args ...any) *Error {
	return &Error{Kind: KindPreconditionFailed, Detail: fmt.Sprintf(format, args...)}
}

// AmbiguousTenant returns a KindAmbiguousTenant error noting how many tenants matched.
func AmbiguousTenant(candidates int) *Error {
	return &Error{
		Kind:   KindAmbiguousTenant,
		Detail: fmt.Sprintf("user is member of %d clubs; select one by name", candidates),
	}
}
