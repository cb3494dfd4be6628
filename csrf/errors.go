package csrf

import "errors"

// Rejection reasons. They are logged and handed to Config.ErrorHandler
// via FailureReason, but the client-facing response is identical for
// all of them.
var (
	// ErrMissingCookie means the request carried no token cookie.
	ErrMissingCookie = errors.New("csrf: token cookie missing from request")

	// ErrMissingToken means no candidate token was submitted through
	// any configured source.
	ErrMissingToken = errors.New("csrf: no token submitted with request")

	// ErrTokenMismatch means the submitted token did not match the
	// cookie. Tokens that fail to decode are reported as a mismatch.
	ErrTokenMismatch = errors.New("csrf: submitted token does not match cookie")

	// ErrBadOrigin means the Origin/Referer check rejected the request.
	ErrBadOrigin = errors.New("csrf: request origin not allowed")
)
