package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(4)

	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, 64)

	hash, err := h.Hash(salt, "correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	require.NoError(t, h.Compare(hash, salt, "correct horse battery staple"))
	require.Error(t, h.Compare(hash, salt, "wrong password"))
	require.Error(t, h.Compare(hash, "other-salt", "correct horse battery staple"))
}

func TestBcryptHasher_SaltsAreUnique(t *testing.T) {
	h := NewBcryptHasher(4)
	s1, err := h.GenerateSalt()
	require.NoError(t, err)
	s2, err := h.GenerateSalt()
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)
}
