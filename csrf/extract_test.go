package csrf

import (
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func defaultSources() []TokenSource {
	return []TokenSource{
		HeaderSource{Name: "X-CSRF-Token"},
		FormSource{Name: "csrf_token"},
	}
}

func TestExtractHeaderWinsOverForm(t *testing.T) {
	form := url.Values{}
	form.Set("csrf_token", "from-form")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", "from-header")

	require.Equal(t, "from-header", extractCandidate(req, defaultSources()))
}

func TestExtractFormFallback(t *testing.T) {
	form := url.Values{}
	form.Set("csrf_token", "from-form")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	require.Equal(t, "from-form", extractCandidate(req, defaultSources()))
}

func TestExtractMultipartForm(t *testing.T) {
	var body strings.Builder
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("csrf_token", "from-multipart"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body.String()))
	req.Header.Set("Content-Type", mw.FormDataContentType())

	require.Equal(t, "from-multipart", extractCandidate(req, defaultSources()))
}

func TestExtractQuerySource(t *testing.T) {
	sources := []TokenSource{
		HeaderSource{Name: "X-CSRF-Token"},
		QuerySource{Name: "csrf_token"},
	}

	req := httptest.NewRequest(http.MethodPost, "/?csrf_token=from-query", nil)
	require.Equal(t, "from-query", extractCandidate(req, sources))

	// Header still has precedence in this order.
	req.Header.Set("X-CSRF-Token", "from-header")
	require.Equal(t, "from-header", extractCandidate(req, sources))
}

// The query string must not leak into the form source; despite its name
// r.Form would merge both, so FormSource reads POST data only.
func TestFormSourceIgnoresQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/?csrf_token=from-query", nil)
	require.Empty(t, extractCandidate(req, defaultSources()))
}

func TestExtractMalformedBodyTreatedAsAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("%zz%%="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	require.Empty(t, extractCandidate(req, defaultSources()))
}

func TestExtractAbsentEverywhere(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	require.Empty(t, extractCandidate(req, defaultSources()))
}
