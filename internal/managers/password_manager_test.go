package managers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher()

	digest, err := hasher.Hash("test.Password123")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	assert.NotEqual(t, "test.Password123", digest)
	assert.True(t, strings.HasPrefix(digest, "$2"))

	assert.NoError(t, hasher.Compare(digest, "test.Password123"))
	assert.Error(t, hasher.Compare(digest, "wrong.Password123"))
}

func TestHashIsSalted(t *testing.T) {
	hasher := NewBcryptHasher()

	first, err := hasher.Hash("test.Password123")
	require.NoError(t, err)
	second, err := hasher.Hash("test.Password123")
	require.NoError(t, err)

	// Same plaintext, different salt, different digest
	assert.NotEqual(t, first, second)
}

func TestCompareRejectsInvalidDigest(t *testing.T) {
	hasher := NewBcryptHasher()
	assert.Error(t, hasher.Compare("not-a-bcrypt-digest", "test.Password123"))
}
