package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	url, err := store.Save(ctx, "123-abc.jpg", strings.NewReader("photo-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/items/123-abc.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "items", "123-abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "photo-bytes", string(data))

	require.NoError(t, store.Remove(ctx, "123-abc.jpg"))
	_, err = os.Stat(filepath.Join(dir, "items", "123-abc.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_RemoveMissingIsNoError(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove(context.Background(), "never-saved.jpg"))
}

func TestNewLocalStore_CreatesItemsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	_, err := NewLocalStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "items"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
