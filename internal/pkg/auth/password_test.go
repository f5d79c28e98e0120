package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("S3curePass!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "S3curePass!", hash)

	assert.True(t, CheckPassword(hash, "S3curePass!"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := HashPassword("S3curePass!")
	require.NoError(t, err)
	second, err := HashPassword("S3curePass!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "anything"))
}
