package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/helpers/storage"
)

func TestLocalStoragePutOpenDelete(t *testing.T) {
	root := t.TempDir()
	s, err := storage.NewLocalStorage(root)
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Put(ctx, "t1/content/a.txt", strings.NewReader("hello"), 5, "text/plain")
	require.NoError(t, err)
	assert.Empty(t, url, "local objects are not published")

	b, err := os.ReadFile(filepath.Join(root, "t1", "content", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	rc, err := s.Open(ctx, "t1/content/a.txt")
	require.NoError(t, err)
	b, err = io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	require.NoError(t, s.Delete(ctx, "t1/content/a.txt"))
	require.NoError(t, s.Delete(ctx, "t1/content/a.txt"), "missing objects are fine")

	_, err = s.Open(ctx, "t1/content/a.txt")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestLocalStorageStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	s, err := storage.NewLocalStorage(root)
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "../../escape.txt", strings.NewReader("x"), 1, "text/plain")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "escape.txt"))
	assert.NoError(t, err)
}

func TestSniffWhitelist(t *testing.T) {
	mime, cat, ok := storage.Sniff([]byte("%PDF-1.7\n%%EOF\n"))
	assert.True(t, ok)
	assert.Equal(t, "application/pdf", mime)
	assert.Equal(t, "DOCUMENT", cat)

	_, _, ok = storage.Sniff([]byte("name,age\nbudi,12\nsari,11\n"))
	assert.True(t, ok, "csv and plain text are allowed")

	_, _, ok = storage.Sniff(append([]byte("MZ"), make([]byte, 128)...))
	assert.False(t, ok)
}
