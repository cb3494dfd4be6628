package csrf

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	for _, n := range []int{16, 32, 64} {
		tok, err := newToken(n)
		require.NoError(t, err)

		raw, err := decodeToken(tok)
		require.NoError(t, err)
		require.Len(t, raw, n)

		// Decoding must be the exact inverse of encoding.
		require.Equal(t, tok, base64.RawURLEncoding.EncodeToString(raw))
	}
}

func TestTokensEqual(t *testing.T) {
	a, err := newToken(32)
	require.NoError(t, err)
	b, err := newToken(32)
	require.NoError(t, err)

	require.True(t, tokensEqual(a, a))
	require.False(t, tokensEqual(a, b))
	require.False(t, tokensEqual(a, ""))
	require.False(t, tokensEqual("", a))

	// Different lengths never compare equal.
	short, err := newToken(16)
	require.NoError(t, err)
	require.False(t, tokensEqual(a, short))

	// Malformed values compare unequal to everything, including themselves:
	// there is no separate decode-error outcome for a client to probe.
	require.False(t, tokensEqual(a, "!!not-base64!!"))
	require.False(t, tokensEqual("!!not-base64!!", a))
	require.False(t, tokensEqual("!!not-base64!!", "!!not-base64!!"))
}

// tokensEqual must agree with plain byte equality of the decoded values.
func TestTokensEqualMatchesByteEquality(t *testing.T) {
	var tokens []string
	for i := 0; i < 50; i++ {
		tok, err := newToken(32)
		require.NoError(t, err)
		tokens = append(tokens, tok)
	}
	for _, a := range tokens {
		for _, b := range tokens {
			ab, err := decodeToken(a)
			require.NoError(t, err)
			bb, err := decodeToken(b)
			require.NoError(t, err)
			require.Equal(t, bytes.Equal(ab, bb), tokensEqual(a, b))
		}
	}
}

// A large sample of tokens must contain no repeats and look uniform
// enough that every byte value occurs.
func TestTokenEntropy(t *testing.T) {
	const sample = 10000

	seen := make(map[string]bool, sample)
	var counts [256]int
	for i := 0; i < sample; i++ {
		tok, err := newToken(32)
		require.NoError(t, err)
		require.False(t, seen[tok], "duplicate token in %d samples", sample)
		seen[tok] = true

		raw, err := decodeToken(tok)
		require.NoError(t, err)
		for _, b := range raw {
			counts[b]++
		}
	}

	// 320000 bytes over 256 values: every value should show up.
	for v, c := range counts {
		require.NotZero(t, c, "byte value %d never occurred", v)
	}
}
