package csrf

import (
	"context"
	"net/http"
)

type ctxKey int

const (
	tokenKey ctxKey = iota
	reasonKey
)

// contextWithToken returns a derived context that stores the given CSRF token.
//
// Params:
// - ctx: base context to attach the token to.
// - tok: CSRF token string to store.
//
// Returns:
// - a new context containing the token.
func contextWithToken(ctx context.Context, tok string) context.Context {
	return context.WithValue(ctx, tokenKey, tok)
}

// tokenFromContext extracts the CSRF token from ctx, if present.
//
// Params:
// - ctx: context possibly containing the token.
//
// Returns:
// - token (string) and a boolean indicating presence.
func tokenFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(tokenKey)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// contextWithReason records the rejection reason for ErrorHandler.
func contextWithReason(ctx context.Context, reason error) context.Context {
	return context.WithValue(ctx, reasonKey, reason)
}

// FailureReason returns the rejection reason recorded on the request,
// or nil. It is only set on requests handed to Config.ErrorHandler;
// compare against the package's sentinel errors with errors.Is.
func FailureReason(r *http.Request) error {
	if err, ok := r.Context().Value(reasonKey).(error); ok {
		return err
	}
	return nil
}
