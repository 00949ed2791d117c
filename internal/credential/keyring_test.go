package credential

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArrayStore() *Store {
	ring := keyring.NewArrayKeyring(nil)
	return &Store{open: func() (keyring.Keyring, error) { return ring, nil }}
}

func TestTokenRoundTrip(t *testing.T) {
	s := newArrayStore()

	require.NoError(t, s.SaveToken("tok-1"))

	token, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	// Saving again replaces the previous token.
	require.NoError(t, s.SaveToken("tok-2"))
	token, err = s.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
}

func TestTokenAbsentReturnsErrNotFound(t *testing.T) {
	s := newArrayStore()

	_, err := s.Token()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTokenIsIdempotent(t *testing.T) {
	s := newArrayStore()

	require.NoError(t, s.SaveToken("tok"))
	require.NoError(t, s.DeleteToken())

	_, err := s.Token()
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent token is a no-op.
	assert.NoError(t, s.DeleteToken())
}
