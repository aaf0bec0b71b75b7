package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenAuthRequiresSecret(t *testing.T) {
	_, err := NewTokenAuth("")
	assert.Error(t, err)
}

func TestIssueAndVerifyToken(t *testing.T) {
	tokens, err := NewTokenAuth("test-secret")
	require.NoError(t, err)

	signed, err := tokens.IssueToken("user123", "Alice", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokens.VerifyToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	issuer, err := NewTokenAuth("secret-a")
	require.NoError(t, err)
	verifier, err := NewTokenAuth("secret-b")
	require.NoError(t, err)

	signed, err := issuer.IssueToken("user123", "Alice", "alice@example.com")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(signed)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	tokens, err := NewTokenAuth("test-secret")
	require.NoError(t, err)

	_, err = tokens.VerifyToken("not-a-jwt")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractTokenFromHeader("bearer abc.def.ghi")
	require.NoError(t, err, "scheme comparison is case-insensitive")
	assert.Equal(t, "abc.def.ghi", token)

	for _, bad := range []string{"", "Bearer", "Bearer ", "Basic abc", "abc.def.ghi"} {
		_, err := ExtractTokenFromHeader(bad)
		assert.Error(t, err, "header %q", bad)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
	assert.False(t, CheckPassword("", "hunter22"))
}
