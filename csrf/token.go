package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/url"
	"strings"
)

// newToken returns n bytes from crypto/rand as unpadded url-safe base64.
// The error from rand.Read is returned as-is; callers must treat it as
// fatal for the request rather than substituting a weaker source.
func newToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// decodeToken is the exact inverse of newToken's encoding.
func decodeToken(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

// tokensEqual compares two encoded tokens in constant time over the
// decoded bytes. A token that fails to decode compares unequal to
// everything; decode failures are indistinguishable from mismatches so
// the decoder cannot be probed separately from the comparison.
func tokensEqual(a, b string) bool {
	ab, errA := decodeToken(a)
	bb, errB := decodeToken(b)
	if errA != nil || errB != nil {
		return false
	}
	return subtle.ConstantTimeCompare(ab, bb) == 1
}

// sameSite reports whether the given Origin/Referer value points at
// allowedHost. Only the host (possibly with port) is compared.
func sameSite(originOrRef, allowedHost string) bool {
	u, err := url.Parse(originOrRef)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, allowedHost)
}
