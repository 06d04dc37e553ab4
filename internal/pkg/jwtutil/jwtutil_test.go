package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("secret", time.Hour, 42, "user@example.com")
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("secret", -time.Minute, 1, "a@b.co")
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("secret", time.Hour, 1, "a@b.co")
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("secret", "not.a.token")
	assert.Error(t, err)
}
