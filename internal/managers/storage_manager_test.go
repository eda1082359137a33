package managers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStorageRoundtrip(t *testing.T) {
	storageMgr, err := NewDiskStorageManager(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	data := []byte("fake image bytes")

	require.NoError(t, storageMgr.Save(ctx, "user_1_123.png", "image/png", data))

	got, contentType, err := storageMgr.Open(ctx, "user_1_123.png")
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, "image/png", contentType)

	require.NoError(t, storageMgr.Remove(ctx, "user_1_123.png"))

	_, _, err = storageMgr.Open(ctx, "user_1_123.png")
	assert.Error(t, err)
}

func TestDiskStorageIgnoresPathTraversal(t *testing.T) {
	storageMgr, err := NewDiskStorageManager(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, storageMgr.Save(ctx, "../../escape.png", "image/png", []byte("x")))

	// The file lands under the storage directory, stripped of its path
	got, _, err := storageMgr.Open(ctx, "escape.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got)
}

func TestDiskStorageRemoveMissingFile(t *testing.T) {
	storageMgr, err := NewDiskStorageManager(t.TempDir())
	require.NoError(t, err)

	// Removing a file that is not there is not an error
	assert.NoError(t, storageMgr.Remove(context.Background(), "missing.png"))
}
