package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPasswordAsBcrypt("admin123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "admin123", hash)

	assert.True(t, CheckPasswordHash(hash, "admin123"))
	assert.False(t, CheckPasswordHash(hash, "Admin123"))
	assert.False(t, CheckPasswordHash(hash, ""))
	assert.False(t, CheckPasswordHash("not-a-hash", "admin123"))
}
