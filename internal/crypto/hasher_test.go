package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost) // low cost keeps the test fast

	hash, err := h.Hash("Correct-Horse-Battery-Staple-1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "Correct-Horse")

	assert.True(t, h.Verify("Correct-Horse-Battery-Staple-1", hash))
	assert.False(t, h.Verify("wrong password", hash))
	assert.False(t, h.Verify("", hash))
}

func TestPasswordHasher_HashesDiffer(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("SamePassword1!")
	require.NoError(t, err)
	second, err := h.Hash("SamePassword1!")
	require.NoError(t, err)

	// bcrypt salts every hash.
	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("SamePassword1!", first))
	assert.True(t, h.Verify("SamePassword1!", second))
}

func TestPasswordHasher_CostOutOfRangeFallsBack(t *testing.T) {
	for _, cost := range []int{-1, 0, bcrypt.MaxCost + 1} {
		h := NewPasswordHasher(cost).(*passwordHasher)
		assert.Equal(t, DefaultBcryptCost, h.cost)
	}
}

func TestPasswordHasher_VerifyRejectsGarbageHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	assert.False(t, h.Verify("password", ""))
	assert.False(t, h.Verify("password", strings.Repeat("x", 60)))
}
