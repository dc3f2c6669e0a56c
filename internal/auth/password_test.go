package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher(t *testing.T) {
	argon, err := NewHasher(SchemeArgon2id)
	require.NoError(t, err)

	bcrypt, err := NewHasher(SchemeBcrypt)
	require.NoError(t, err)

	for _, h := range []*Hasher{argon, bcrypt} {
		t.Run(h.Scheme(), func(t *testing.T) {
			digest, err := h.Hash("abcdefg")
			require.NoError(t, err)
			assert.NotEqual(t, "abcdefg", digest)

			again, err := h.Hash("abcdefg")
			require.NoError(t, err)
			assert.NotEqual(t, digest, again, "digests are salted")

			// any hasher verifies any supported digest
			for _, verifier := range []*Hasher{argon, bcrypt} {
				match, err := verifier.Verify("abcdefg", digest)
				require.NoError(t, err)
				assert.True(t, match)

				match, err = verifier.Verify("abcdefh", digest)
				require.NoError(t, err)
				assert.False(t, match)
			}
		})
	}
}

func TestHasherErrors(t *testing.T) {
	_, err := NewHasher("md5")
	require.ErrorIs(t, err, ErrUnknownScheme)

	h, err := NewHasher(SchemeArgon2id)
	require.NoError(t, err)

	_, err = h.Verify("abcdefg", "abcdefg")
	require.ErrorIs(t, err, ErrUnknownScheme)

	_, err = h.Verify("abcdefg", "$argon2id$broken")
	require.Error(t, err)
}
