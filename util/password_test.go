package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, IsHashed(hashed))
	assert.NotContains(t, hashed, "s3cret")

	ok, err := VerifyPassword(hashed, "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hashed, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	h1, err := HashPassword("password")
	require.NoError(t, err)
	h2, err := HashPassword("password")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestHashPasswordArgon2Deterministic(t *testing.T) {
	h1, err := HashPasswordArgon2("password", "fixedsalt")
	require.NoError(t, err)
	h2, err := HashPasswordArgon2("password", "fixedsalt")
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.True(t, strings.HasPrefix(h1, "argon2id$fixedsalt$"))

	_, err = HashPasswordArgon2("password", "")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestVerifyPasswordRejectsMalformed(t *testing.T) {
	for _, encoded := range []string{"", "plain", "argon2id$salt", "bcrypt$salt$hash", "argon2id$salt$!!!", "argon2id$salt$"} {
		_, err := VerifyPassword(encoded, "password")
		assert.ErrorIs(t, err, ErrInvalidHash, encoded)
	}
}
