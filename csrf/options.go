package csrf

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// ExemptRule exempts requests from CSRF checking entirely. Path is
// matched exactly against the request path. An empty Method matches
// every method. Typical use is a public webhook endpoint that cannot
// echo a token.
type ExemptRule struct {
	Method string
	Path   string
}

type Config struct {
	// Cookie attributes. The token cookie is deliberately never
	// HttpOnly: the double-submit pattern requires client-side code
	// to read the cookie value and echo it back in a header or form
	// field. This is the opposite of the usual session-cookie
	// hardening and is intentional.
	CookieName     string
	CookiePath     string
	CookieDomain   string
	CookieSecure   bool
	CookieSameSite http.SameSite
	CookieMaxAge   int // in seconds

	// Token transport
	HeaderName string // e.g.: "X-CSRF-Token"
	FormField  string // e.g.: "csrf_token"

	// Sources overrides the probing order for the submitted token.
	// When nil, the header is tried first, then the form field.
	// The first source yielding a non-empty value wins.
	Sources []TokenSource

	// UnsafeMethods overrides the set of methods that require
	// verification. When nil, POST, PUT, PATCH and DELETE are
	// verified; everything else only triggers token issuance.
	UnsafeMethods []string

	// ExemptPaths lists method/path pairs that bypass checking and
	// issuance entirely.
	ExemptPaths []ExemptRule

	// Disabled turns the middleware into a passthrough. Meant for
	// dev environments and tests, never for production.
	Disabled bool

	// Extra security
	EnforceOriginCheck bool
	AllowedOrigin      string // if empty, uses r.Host

	// ErrorHandler, when set, is invoked instead of the default
	// generic 403 response on rejection. The reason is available to
	// it through FailureReason and must not be echoed to the client.
	ErrorHandler http.Handler

	// Logger records rejections and generation failures server-side.
	// Nil disables logging.
	Logger *zerolog.Logger

	// Entropy
	TokenBytes int
}

type Protector struct {
	cfg     Config
	unsafe  map[string]bool
	sources []TokenSource
}

// New resolves defaults and returns a Protector. The resulting
// configuration is immutable; policy changes require a new Protector.
func New(cfg Config) *Protector {
	// reasonable defaults
	if cfg.CookieName == "" {
		cfg.CookieName = "csrf_token"
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-CSRF-Token"
	}
	if cfg.FormField == "" {
		cfg.FormField = "csrf_token"
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = "/"
	}
	if cfg.TokenBytes <= 0 {
		cfg.TokenBytes = 32
	}
	// modern web security: SameSite=Lax is a good baseline
	if cfg.CookieSameSite == 0 {
		cfg.CookieSameSite = http.SameSiteLaxMode
	}

	methods := cfg.UnsafeMethods
	if methods == nil {
		methods = []string{
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		}
	}
	unsafe := make(map[string]bool, len(methods))
	for _, m := range methods {
		unsafe[strings.ToUpper(m)] = true
	}

	sources := cfg.Sources
	if sources == nil {
		sources = []TokenSource{
			HeaderSource{Name: cfg.HeaderName},
			FormSource{Name: cfg.FormField},
		}
	}

	return &Protector{cfg: cfg, unsafe: unsafe, sources: sources}
}
