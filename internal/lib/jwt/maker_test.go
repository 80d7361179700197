package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken("uid-123", "alice", "member")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "member", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseToken_WrongSecret(t *testing.T) {
	maker := NewMaker("secret-one", time.Hour)
	other := NewMaker("secret-two", time.Hour)

	token, err := maker.GenerateToken("uid-123", "alice", "member")
	require.NoError(t, err)

	claims, err := other.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseToken_Expired(t *testing.T) {
	maker := NewMaker("test-secret", -time.Minute)

	token, err := maker.GenerateToken("uid-123", "alice", "member")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseToken_Garbage(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)

	claims, err := maker.ParseToken("not-a-token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
