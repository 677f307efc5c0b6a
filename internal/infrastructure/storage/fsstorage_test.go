package storage

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStorage_DirectoryRoundTrip(t *testing.T) {
	store, err := NewFSStorage(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	key := KeyFor(42, "0123456789abcdef0123456789abcdef", "report.pdf")
	assert.Equal(t, "tickets/42/0123456789ab_report.pdf", key)

	written, err := store.Save(key, strings.NewReader("attachment bytes"))
	require.NoError(t, err)
	assert.EqualValues(t, len("attachment bytes"), written)

	rc, err := store.Open(key)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "attachment bytes", string(data))
}

func TestFSStorage_Delete(t *testing.T) {
	store, err := NewFSStorage(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	key := KeyFor(1, "aaaabbbbccccdddd", "note.txt")
	_, err = store.Save(key, strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(key))

	_, err = store.Open(key)
	assert.Error(t, err)

	t.Run("deleting a missing blob is not an error", func(t *testing.T) {
		assert.NoError(t, store.Delete(key))
	})
}

func TestFSStorage_ZipIsWriteOnly(t *testing.T) {
	store, err := NewFSStorage(filepath.Join(t.TempDir(), "attachments.zip"))
	require.NoError(t, err)

	key := KeyFor(7, "ffff0000ffff0000", "log.txt")
	_, err = store.Save(key, strings.NewReader("zipped"))
	require.NoError(t, err)

	_, err = store.Open(key)
	assert.Error(t, err)
	assert.Error(t, store.Delete(key))

	require.NoError(t, store.Close())
}
