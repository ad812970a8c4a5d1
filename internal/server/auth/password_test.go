package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbertrand/piquante/internal/common"
)

func TestHashPassword_VerifiesOriginal(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	assert.NoError(t, CheckPassword(hash, "s3cret"))
}

func TestCheckPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.ErrorIs(t, CheckPassword(hash, "wrong"), common.ErrorInvalidCredentials)
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword("s3cret")
	require.NoError(t, err)
	h2, err := HashPassword("s3cret")
	require.NoError(t, err)

	// bcrypt embeds a random salt, so two hashes of the same input differ
	assert.NotEqual(t, h1, h2)
}
