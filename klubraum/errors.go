package klubraum

import "github.com/cygnusb/klubraum-api/internal/apierror"

// Error is returned by every failing operation. Use errors.Is with the sentinels
// below, errors.As, or KindOf to tell failures apart.
type Error = apierror.Error

// Kind classifies an Error.
type Kind = apierror.Kind

const (
	KindUnknown            = apierror.KindUnknown
	KindUnauthorized       = apierror.KindUnauthorized
	KindRateLimited        = apierror.KindRateLimited
	KindHTTPFailure        = apierror.KindHTTPFailure
	KindDecodeFailure      = apierror.KindDecodeFailure
	KindPreconditionFailed = apierror.KindPreconditionFailed
	KindAmbiguousTenant    = apierror.KindAmbiguousTenant
)

var (
	ErrUnauthorized       = apierror.ErrUnauthorized
	ErrRateLimited        = apierror.ErrRateLimited
	ErrHTTPFailure        = apierror.ErrHTTPFailure
	ErrDecodeFailure      = apierror.ErrDecodeFailure
	ErrPreconditionFailed = apierror.ErrPreconditionFailed
	ErrAmbiguousTenant    = apierror.ErrAmbiguousTenant
)

// KindOf returns the Kind of err, or KindUnknown for errors not produced by this package.
func KindOf(err error) Kind { return apierror.KindOf(err) }
