package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewStore(path)
	require.NoError(t, err)

	sess := Session{Token: "tok-123", TokenType: "Bearer", Username: "priya"}
	require.NoError(t, store.Save(sess))

	// fresh store reads from disk, not the cache
	again, err := NewStore(path)
	require.NoError(t, err)
	require.Equal(t, sess, again.Load())
}

func TestLoadMissingFileYieldsZeroSession(t *testing.T) {
	t.Parallel()

	store, err := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	got := store.Load()
	require.False(t, got.Authenticated())
	require.Empty(t, got.Token)
	require.Empty(t, got.Username)
}

func TestLoadCorruptFileYieldsZeroSession(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not ciphertext"), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)
	require.False(t, store.Load().Authenticated())
}

func TestClearRemovesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(Session{Token: "tok"}))
	require.NoError(t, store.Clear())

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
	require.False(t, store.Load().Authenticated())

	// clearing twice is fine
	require.NoError(t, store.Clear())
}

func TestAuthHeaderDefaultsToBearer(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Bearer abc", Session{Token: "abc"}.AuthHeader())
	require.Equal(t, "Token abc", Session{Token: "abc", TokenType: "Token"}.AuthHeader())
}
