package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestTokenRoundTrip(t *testing.T) {
	keyring.MockInit()
	dir := t.TempDir()

	require.NoError(t, SaveToken(dir, "secret-token"))

	token, err := GetToken(dir)
	require.NoError(t, err)
	assert.Equal(t, "secret-token", token)

	require.NoError(t, DeleteToken(dir))
	_, err = GetToken(dir)
	assert.Error(t, err)
}

func TestSaveTokenEmpty(t *testing.T) {
	assert.Error(t, SaveToken(t.TempDir(), ""))
}

func TestFileFallback(t *testing.T) {
	keyring.MockInitWithError(keyring.ErrUnsupportedPlatform)
	dir := t.TempDir()

	require.NoError(t, SaveToken(dir, "file-token"))

	token, err := GetToken(dir)
	require.NoError(t, err)
	assert.Equal(t, "file-token", token)
}
