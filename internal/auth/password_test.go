package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("securePassword123")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "securePassword123", hash)

	assert.True(t, h.Compare(hash, "securePassword123"))
	assert.False(t, h.Compare(hash, "wrongPassword456"))
	assert.False(t, h.Compare(hash, ""))
}

func TestHasher_SamePasswordDifferentHashes(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash1, err := h.Hash("securePassword123")
	require.NoError(t, err)
	hash2, err := h.Hash("securePassword123")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2, "salt should make hashes differ")
}

func TestHasher_OutOfRangeCostFallsBack(t *testing.T) {
	h := NewHasher(99)

	hash, err := h.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestHasher_CompareInvalidHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	assert.False(t, h.Compare("not-a-valid-bcrypt-hash", "password"))
}
