package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", digest)

	ok, err := VerifyPassword("secret1", digest)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestHashPassword_SaltedDigestsDiffer(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("secret1")
	require.NoError(t, err)
	second, err := HashPassword("secret1")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("secret1")
	require.NoError(t, err)

	ok, err := VerifyPassword("not-the-password", digest)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	_, err := VerifyPassword("secret1", "not-a-bcrypt-digest")
	require.Error(t, err)
}
