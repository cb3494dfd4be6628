package csrf

import "net/http"

// A TokenSource probes one location of an incoming request for a
// submitted CSRF token candidate.
//
// Implementations must not mutate the request (beyond parsing the
// already-buffered body) and must report malformed input as absent
// rather than failing the request.
type TokenSource interface {
	// Extract returns the candidate token, or "" when this source
	// yields nothing.
	Extract(r *http.Request) string
}

// HeaderSource reads the token from a request header.
type HeaderSource struct {
	Name string
}

func (s HeaderSource) Extract(r *http.Request) string {
	return r.Header.Get(s.Name)
}

// FormSource reads the token from a POST form field, either
// x-www-form-urlencoded or multipart.
type FormSource struct {
	Name string
}

func (s FormSource) Extract(r *http.Request) string {
	// PostFormValue swallows parse errors; an unparsable body
	// simply yields nothing.
	if v := r.PostFormValue(s.Name); v != "" {
		return v
	}
	// PostFormValue will already have called ParseMultipartForm.
	if r.MultipartForm != nil {
		if vs := r.MultipartForm.Value[s.Name]; len(vs) > 0 {
			return vs[0]
		}
	}
	return ""
}

// QuerySource reads the token from a URL query parameter. Tokens in
// URLs end up in access logs and Referer headers, so this source is
// not part of the default probing order.
type QuerySource struct {
	Name string
}

func (s QuerySource) Extract(r *http.Request) string {
	return r.URL.Query().Get(s.Name)
}

// extractCandidate probes sources in order and returns the first
// non-empty candidate, or "" when none yields a value. Sources are
// never merged; the first hit wins.
func extractCandidate(r *http.Request, sources []TokenSource) string {
	for _, s := range sources {
		if v := s.Extract(r); v != "" {
			return v
		}
	}
	return ""
}
