package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s := Open(path)
	require.NoError(t, s.Set(KeyAccessToken, "tok-123"))
	require.NoError(t, s.Set(KeyUser, `{"id":"u1"}`))

	reopened := Open(path)
	v, ok := reopened.Get(KeyAccessToken)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", v)
	v, ok = reopened.Get(KeyUser)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"u1"}`, v)
}

func TestOpenMissingOrCorruptFile(t *testing.T) {
	dir := t.TempDir()

	s := Open(filepath.Join(dir, "does-not-exist.json"))
	_, ok := s.Get(KeyAccessToken)
	assert.False(t, ok)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0o600))
	s = Open(corrupt)
	_, ok = s.Get(KeyAccessToken)
	assert.False(t, ok)

	// the store still works after a corrupt load
	require.NoError(t, s.Set(KeyAccessToken, "fresh"))
	v, ok := Open(corrupt).Get(KeyAccessToken)
	assert.True(t, ok)
	assert.Equal(t, "fresh", v)
}

func TestAccessTokenLegacyFallback(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "credentials.json"))

	_, ok := s.AccessToken()
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyLegacyToken, "legacy-tok"))
	v, ok := s.AccessToken()
	assert.True(t, ok)
	assert.Equal(t, "legacy-tok", v)

	// the modern key wins once present
	require.NoError(t, s.Set(KeyAccessToken, "modern-tok"))
	v, ok = s.AccessToken()
	assert.True(t, ok)
	assert.Equal(t, "modern-tok", v)
}

func TestClearWipesAllKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	s := Open(path)
	require.NoError(t, s.SetAll(map[string]string{
		KeyAccessToken:  "a",
		KeyRefreshToken: "r",
		KeyUser:         "u",
		KeyLegacyToken:  "l",
	}))

	require.NoError(t, s.Clear())

	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUser, KeyLegacyToken} {
		_, ok := s.Get(key)
		assert.False(t, ok, key)
	}
	_, ok := Open(path).AccessToken()
	assert.False(t, ok)
}

func TestEmptyValueReadsAsAbsent(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, s.Set(KeyAccessToken, ""))
	_, ok := s.Get(KeyAccessToken)
	assert.False(t, ok)
}
