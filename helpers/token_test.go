package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	SetJWTKey("test-key")

	access, refresh := GenerateTokens("ada@example.com", "u1", "USER")
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "USER", claims.Role)
}

func TestValidateTokenWrongKey(t *testing.T) {
	SetJWTKey("first-key")
	access, _ := GenerateTokens("ada@example.com", "u1", "USER")

	SetJWTKey("second-key")
	_, err := ValidateToken(access)
	assert.Error(t, err)
}

func TestPasswordHashAndVerify(t *testing.T) {
	pwd := "s3cretpass"
	hashed := HashPassword(&pwd)
	require.NotNil(t, hashed)
	assert.NotEqual(t, pwd, *hashed)

	ok, err := VerifyPassword(*hashed, pwd)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = VerifyPassword(*hashed, "wrong")
	assert.False(t, ok)
}
