// Package csrf provides lightweight CSRF protection for Go net/http servers
// using the double-submit cookie pattern.
//
// How it works
//   - Safe methods (anything outside the unsafe set): ensure a CSRF token
//     cookie exists, issuing a fresh one only when it is absent, and inject
//     the token into the request context so handlers can read it via
//     TokenFromContext. An existing cookie is never rotated.
//   - Unsafe methods (POST, PUT, PATCH, DELETE by default): optionally
//     enforce same-site policy using Origin/Referer (when EnforceOriginCheck
//     is enabled), require the token cookie, and require the client-provided
//     token (probed from the configured sources, header first, then form
//     field) to match the cookie. Comparison is done in constant time over
//     the decoded token bytes; values that fail to decode are treated as a
//     plain mismatch.
//
// All rejections produce the same generic 403 response. The concrete reason
// (ErrMissingCookie, ErrMissingToken, ErrTokenMismatch, ErrBadOrigin) is
// available server-side through the configured Logger and, when an
// ErrorHandler is set, through FailureReason.
//
// The token cookie is intentionally readable by scripts (no HttpOnly): the
// whole point of the pattern is that the legitimate client reads the cookie
// and echoes it back, which a cross-origin attacker cannot do.
//
// # Configuration
//
// All behavior is driven by Config. Key fields include:
//   - CookieName, CookiePath, CookieDomain, CookieSecure, CookieSameSite, CookieMaxAge
//   - HeaderName (default: "X-CSRF-Token")
//   - FormField (default: "csrf_token")
//   - Sources (custom probing order; see TokenSource)
//   - UnsafeMethods and ExemptPaths (method/path pairs that bypass checking)
//   - Disabled (passthrough mode for dev and tests)
//   - EnforceOriginCheck and AllowedOrigin (empty means use the request host)
//   - ErrorHandler and Logger
//   - TokenBytes (default: 32)
//
// Typical usage
//
//	p := csrf.New(csrf.Config{ CookieSecure: true })
//	// Protect an http.Handler (router, mux, etc.)
//	protected := p.Protect(appMux)
//	http.ListenAndServe(":8080", protected)
//
// In handlers, you can read the token from context for rendering or APIs:
//
//	if tok, ok := csrf.TokenFromContext(r.Context()); ok {
//	    // use tok in templates or return it from an endpoint
//	}
//
// For SPAs, expose a small endpoint that returns the current token:
//
//	r.Get("/csrf-token", func(w http.ResponseWriter, r *http.Request) {
//	    p.TokenHandler().ServeHTTP(w, r)
//	})
package csrf
