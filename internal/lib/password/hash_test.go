package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	require.Len(t, salt, 32)

	hash, err := GetHash("password1", salt)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NoError(t, CompareHash(hash, "password1", salt))
	assert.Error(t, CompareHash(hash, "password2", salt))
	assert.Error(t, CompareHash(hash, "password1", "другая-соль"))
}

func TestNewSalt_Unique(t *testing.T) {
	first, err := NewSalt()
	require.NoError(t, err)
	second, err := NewSalt()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
