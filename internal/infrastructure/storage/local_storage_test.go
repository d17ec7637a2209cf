package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "/files")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := store.Upload(ctx, "invoices/abc/site-photo.jpg", []byte("jpeg bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/files/invoices/abc/site-photo.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "invoices", "abc", "site-photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)

	require.NoError(t, store.Delete(ctx, "invoices/abc/site-photo.jpg"))
	_, err = os.Stat(filepath.Join(dir, "invoices", "abc", "site-photo.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_DeleteMissingObjectIsNoOp(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "invoices/none.pdf"))
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Upload(ctx, "../outside.txt", []byte("x"), "text/plain")
	assert.Error(t, err)

	_, err = store.Upload(ctx, "", []byte("x"), "text/plain")
	assert.Error(t, err)
}
