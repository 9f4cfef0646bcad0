package savestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "saves")
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "saveSlot_0")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "saveSlot_0", []byte(`{"sceneIndex":2}`)))
	got, ok, err := store.Get(ctx, "saveSlot_0")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"sceneIndex":2}`, string(got))

	_, err = os.Stat(filepath.Join(dir, "saveSlot_0.json"))
	assert.NoError(t, err)
}

func TestFileStore_OverwriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "saveSlot_1", []byte("first")))
	require.NoError(t, store.Put(ctx, "saveSlot_1", []byte("second")))

	got, _, err := store.Get(ctx, "saveSlot_1")
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "saveSlot_1.json", entries[0].Name())
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "saveSlot_3", []byte("kept")))

	second, err := NewFileStore(dir)
	require.NoError(t, err)
	got, ok, err := second.Get(ctx, "saveSlot_3")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "kept", string(got))
}

func TestFileStore_Delete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "saveSlot_4", []byte("x")))
	require.NoError(t, store.Delete(ctx, "saveSlot_4"))
	_, ok, err := store.Get(ctx, "saveSlot_4")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Delete(ctx, "saveSlot_4"))
}

func TestFileStore_RejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "../escape", "a/b", `a\b`} {
		_, _, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
		assert.ErrorIs(t, store.Put(ctx, key, []byte("x")), ErrInvalidKey, "key %q", key)
	}
}
