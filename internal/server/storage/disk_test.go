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

func newDiskStore(t *testing.T) *DiskStore {
	t.Helper()
	s, err := NewDiskStore(filepath.Join(t.TempDir(), "images"), "http://localhost:3000/")
	require.NoError(t, err)
	return s
}

func TestDiskStore_SaveAndURL(t *testing.T) {
	s := newDiskStore(t)
	ctx := context.Background()

	key, err := s.Save(ctx, "sriracha.PNG", []byte("imgbytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".png"), "extension should be preserved lowercased, got %q", key)
	assert.NotContains(t, key, "/")

	data, err := os.ReadFile(filepath.Join(s.Dir(), key))
	require.NoError(t, err)
	assert.Equal(t, []byte("imgbytes"), data)

	url, err := s.URL(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/images/"+key, url)
}

func TestDiskStore_UniqueKeys(t *testing.T) {
	s := newDiskStore(t)
	ctx := context.Background()

	k1, err := s.Save(ctx, "a.jpg", []byte("one"))
	require.NoError(t, err)
	k2, err := s.Save(ctx, "a.jpg", []byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestDiskStore_Release(t *testing.T) {
	s := newDiskStore(t)
	ctx := context.Background()

	key, err := s.Save(ctx, "a.jpg", []byte("one"))
	require.NoError(t, err)

	require.NoError(t, s.Release(ctx, key))
	_, err = os.ReadFile(filepath.Join(s.Dir(), key))
	assert.Error(t, err, "file should be gone after release")

	// releasing an already-released key is not an error
	assert.NoError(t, s.Release(ctx, key))
}

func TestDiskStore_RejectsForgedKeys(t *testing.T) {
	s := newDiskStore(t)
	ctx := context.Background()

	for _, key := range []string{"", "..", "../etc/passwd", `..\win`, "a/b.png"} {
		assert.Error(t, s.Release(ctx, key), "key %q must be rejected", key)
		_, err := s.URL(ctx, key)
		assert.Error(t, err, "key %q must be rejected", key)
	}
}
