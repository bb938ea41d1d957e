package tokenstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "access_token")
	store := NewFileStore(path)

	// absent file reads as "no token", not an error
	tok, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, store.Write("tok-1"))
	tok, err = store.Read()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	require.NoError(t, store.Write("tok-2"))
	tok, _ = store.Read()
	assert.Equal(t, "tok-2", tok)

	require.NoError(t, store.Clear())
	tok, err = store.Read()
	require.NoError(t, err)
	assert.Empty(t, tok)

	// clearing an already-absent token is fine
	require.NoError(t, store.Clear())
}
