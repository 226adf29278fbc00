package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPasswordHasher_RoundTrip(t *testing.T) {
	hasher := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("password1")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "password1", hash)

	assert.True(t, hasher.Verify("password1", hash))
	assert.False(t, hasher.Verify("password2", hash))
}

func TestBcryptPasswordHasher_MalformedHash(t *testing.T) {
	hasher := NewBcryptPasswordHasher(bcrypt.MinCost)
	assert.False(t, hasher.Verify("password1", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Verify("password1", ""))
}

func TestBcryptPasswordHasher_DistinctHashes(t *testing.T) {
	hasher := NewBcryptPasswordHasher(bcrypt.MinCost)

	a, err := hasher.Hash("password1")
	require.NoError(t, err)
	b, err := hasher.Hash("password1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "bcrypt salts every hash")
	assert.True(t, hasher.Verify("password1", a))
	assert.True(t, hasher.Verify("password1", b))
}

func TestNewBcryptPasswordHasher_CostClamping(t *testing.T) {
	// Out-of-range costs fall back to the bcrypt default rather than failing
	// at hash time.
	hasher := NewBcryptPasswordHasher(100)
	hash, err := hasher.Hash("password1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
