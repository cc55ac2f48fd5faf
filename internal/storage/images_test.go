package storage_test

import (
	"bytes"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/pitstop/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestImageStore_Save(t *testing.T) {
	defer filet.CleanUp(t)

	dir := filet.TmpDir(t, "")
	store, err := storage.NewImageStore(filepath.Join(dir, "uploads"), slog.Default())
	require.NoError(t, err)

	t.Run("png stored under random name", func(t *testing.T) {
		data := pngBytes(t)

		name, err := store.Save(bytes.NewReader(data))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(name, ".png"))

		stored, err := os.ReadFile(filepath.Join(store.Dir(), name))
		require.NoError(t, err)
		assert.Equal(t, data, stored)

		other, err := store.Save(bytes.NewReader(data))
		require.NoError(t, err)
		assert.NotEqual(t, name, other)
	})

	t.Run("text rejected", func(t *testing.T) {
		_, err := store.Save(strings.NewReader("just some text"))
		require.ErrorIs(t, err, storage.ErrUnsupportedType)
	})

	t.Run("empty rejected", func(t *testing.T) {
		_, err := store.Save(bytes.NewReader(nil))
		require.ErrorIs(t, err, storage.ErrEmptyImage)
	})

	t.Run("too large rejected", func(t *testing.T) {
		data := append(pngBytes(t), make([]byte, storage.MaxImageSize)...)
		_, err := store.Save(bytes.NewReader(data))
		require.ErrorIs(t, err, storage.ErrTooLarge)
	})
}

func TestImageStore_Remove(t *testing.T) {
	defer filet.CleanUp(t)

	store, err := storage.NewImageStore(filet.TmpDir(t, ""), slog.Default())
	require.NoError(t, err)

	name, err := store.Save(bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)

	require.NoError(t, store.Remove(name))
	assert.False(t, filet.Exists(t, filepath.Join(store.Dir(), name)))

	require.NoError(t, store.Remove(name))
	require.NoError(t, store.Remove(""))
}
