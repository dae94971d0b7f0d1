package objectstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalStorePut(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(t.TempDir(), "frame.jpg")
	assert.NoError(t, os.WriteFile(src, []byte("jpeg-bytes"), 0o644))

	store := NewLocalStore(root, "http://localhost:3000/")

	url, err := store.Put(context.Background(), src, "boards/b1/abc.jpg")
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/uploads/boards/b1/abc.jpg", url)

	stored, err := os.ReadFile(filepath.Join(root, "boards", "b1", "abc.jpg"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), stored)
}

func TestLocalStorePutMissingSource(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://localhost:3000")

	_, err := store.Put(context.Background(), "does-not-exist.jpg", "boards/b1/abc.jpg")
	assert.Error(t, err)
}

func TestLocalStorePutCancelledContext(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://localhost:3000")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Put(ctx, "anything.jpg", "boards/b1/abc.jpg")
	assert.ErrorIs(t, err, context.Canceled)
}
