package csrf

import (
	"context"
	"fmt"
	"net/http"
)

// Protect wraps the given next http.Handler and enforces CSRF protection.
//
// Behavior:
//   - Exempt requests (Config.Disabled, or a matching ExemptRule) pass
//     straight through without touching cookies or candidates.
//   - For "safe" methods (everything outside the unsafe set): ensures the
//     token cookie exists, issuing a fresh one only when absent, and injects
//     the token into the request context, then calls next. An existing
//     cookie is never rotated; rotating per request would break concurrent
//     tabs sharing the same token.
//   - For "unsafe" methods (POST/PUT/PATCH/DELETE by default): optionally
//     validates Origin/Referer (when EnforceOriginCheck is true), requires
//     the token cookie, extracts the submitted candidate from the configured
//     sources, compares it in constant time against the cookie token, and
//     only then calls next. Any failure rejects the request before it
//     reaches application handlers.
//
// Params:
// - next: downstream handler to be executed after CSRF checks pass.
//
// Returns:
// - An http.Handler that performs the CSRF logic before delegating to next.
func (p *Protector) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p.cfg.Disabled || p.exempt(r.Method, r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		if !p.unsafe[r.Method] {
			p.serveSafe(w, r, next)
			return
		}
		p.serveUnsafe(w, r, next)
	})
}

// serveSafe handles methods that never change server state. A missing
// cookie triggers issuance; a present one is reused untouched.
func (p *Protector) serveSafe(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if c, err := r.Cookie(p.cfg.CookieName); err == nil && c.Value != "" {
		next.ServeHTTP(w, r.WithContext(contextWithToken(r.Context(), c.Value)))
		return
	}

	tok, err := newToken(p.cfg.TokenBytes)
	if err != nil {
		// The random source is broken. Issuing anything predictable
		// instead would silently void the protection, so fail the
		// request instead.
		if l := p.cfg.Logger; l != nil {
			l.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Err(err).
				Msg("csrf token generation failed")
		}
		http.Error(w, "failed to set CSRF cookie", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, p.buildCookie(tok))
	next.ServeHTTP(w, r.WithContext(contextWithToken(r.Context(), tok)))
}

// serveUnsafe handles state-changing methods: cookie and candidate must
// both be present and match.
func (p *Protector) serveUnsafe(w http.ResponseWriter, r *http.Request, next http.Handler) {
	cookie, err := r.Cookie(p.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		p.reject(w, r, ErrMissingCookie)
		return
	}

	if p.cfg.EnforceOriginCheck {
		if err := validateOriginOrReferer(r, p.cfg.AllowedOrigin); err != nil {
			p.reject(w, r, err)
			return
		}
	}

	candidate := extractCandidate(r, p.sources)
	if candidate == "" {
		p.reject(w, r, ErrMissingToken)
		return
	}

	if !tokensEqual(cookie.Value, candidate) {
		p.reject(w, r, ErrTokenMismatch)
		return
	}

	// No rotation on success: the same cookie stays valid for the
	// client's other in-flight requests.
	next.ServeHTTP(w, r.WithContext(contextWithToken(r.Context(), cookie.Value)))
}

// buildCookie renders the token cookie with the configured attributes.
// Note the absence of HttpOnly; see Config.
func (p *Protector) buildCookie(tok string) *http.Cookie {
	return &http.Cookie{
		Name:     p.cfg.CookieName,
		Value:    tok,
		Path:     p.cfg.CookiePath,
		Domain:   p.cfg.CookieDomain,
		MaxAge:   p.cfg.CookieMaxAge,
		SameSite: p.cfg.CookieSameSite,
		Secure:   p.cfg.CookieSecure,
	}
}

// exempt reports whether the method/path pair matches a configured
// ExemptRule.
func (p *Protector) exempt(method, path string) bool {
	for _, rule := range p.cfg.ExemptPaths {
		if rule.Path != path {
			continue
		}
		if rule.Method == "" || rule.Method == method {
			return true
		}
	}
	return false
}

// reject terminates the request. The concrete reason is logged and, via
// the context, exposed to ErrorHandler only; the client sees the same
// status and body for every failure mode so the middleware does not act
// as an oracle.
func (p *Protector) reject(w http.ResponseWriter, r *http.Request, reason error) {
	if l := p.cfg.Logger; l != nil {
		l.Warn().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Err(reason).
			Msg("csrf check failed")
	}

	if p.cfg.ErrorHandler != nil {
		p.cfg.ErrorHandler.ServeHTTP(w, r.WithContext(contextWithReason(r.Context(), reason)))
		return
	}
	http.Error(w, "CSRF verification failed", http.StatusForbidden)
}

// TokenFromContext returns the CSRF token stored in ctx, if present.
//
// Params:
// - ctx: context potentially containing a token set by the middleware.
//
// Returns:
// - token (string) and a boolean indicating whether a token was found.
func TokenFromContext(ctx context.Context) (string, bool) {
	return tokenFromContext(ctx)
}

// TokenHandler returns an HTTP handler that writes the current CSRF token.
// This is useful for SPAs to fetch the token and attach it to subsequent requests.
//
// Returns:
// - http.Handler that responds with the token in the response body (text/plain).
func (p *Protector) TokenHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok, ok := TokenFromContext(r.Context()); ok {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Write([]byte(tok))
			return
		}
		http.Error(w, "no token", http.StatusInternalServerError)
	})
}

// validateOriginOrReferer checks whether the request is same-site according to
// the allowed host policy. When allowed is empty, it falls back to r.Host.
// It prefers the Origin header; if empty, it falls back to Referer.
//
// Params:
//   - r: the incoming request containing Origin/Referer headers.
//   - allowed: the allowed host (domain[:port]) to be considered same-site;
//     if empty, r.Host is used.
//
// Returns:
// - nil when origin/referrer is acceptable; otherwise ErrBadOrigin.
func validateOriginOrReferer(r *http.Request, allowed string) error {
	// if allowed is empty, use the current request host as baseline
	host := allowed
	if host == "" {
		host = r.Host
	}

	// Prefer Origin; if empty, use Referer.
	origin := r.Header.Get("Origin")
	ref := r.Header.Get("Referer")

	if origin == "" && ref == "" {
		return fmt.Errorf("%w: no origin/referer", ErrBadOrigin)
	}
	if origin != "" && !sameSite(origin, host) {
		return fmt.Errorf("%w: bad origin", ErrBadOrigin)
	}
	if origin == "" && ref != "" && !sameSite(ref, host) {
		return fmt.Errorf("%w: bad referer", ErrBadOrigin)
	}
	return nil
}
