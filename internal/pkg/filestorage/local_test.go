package filestorage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campusworks/studenttrack/internal/pkg/apperrors"
)

func newStorage(t *testing.T) *LocalStorage {
	t.Helper()
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return ls
}

func TestStoreAndRetrieve(t *testing.T) {
	ls := newStorage(t)

	locator, err := ls.Store(bytes.NewBufferString("resume content"), "resume.pdf")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(locator, ".pdf"))
	require.NotEqual(t, "resume.pdf", locator)

	data, err := ls.Retrieve(locator)
	require.NoError(t, err)
	require.Equal(t, []byte("resume content"), data)
}

func TestStoreGeneratesUniqueLocators(t *testing.T) {
	ls := newStorage(t)

	first, err := ls.Store(bytes.NewBufferString("one"), "resume.pdf")
	require.NoError(t, err)
	second, err := ls.Store(bytes.NewBufferString("two"), "resume.pdf")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	data, err := ls.Retrieve(first)
	require.NoError(t, err)
	require.Equal(t, []byte("one"), data)
}

func TestRetrieveMissingBlob(t *testing.T) {
	ls := newStorage(t)

	_, err := ls.Retrieve("does-not-exist.pdf")
	require.ErrorIs(t, err, apperrors.ErrBlobMissing)
}

func TestRemove(t *testing.T) {
	ls := newStorage(t)

	locator, err := ls.Store(bytes.NewBufferString("content"), "id.png")
	require.NoError(t, err)

	require.NoError(t, ls.Remove(locator))

	_, err = ls.Retrieve(locator)
	require.ErrorIs(t, err, apperrors.ErrBlobMissing)
}

func TestRemoveMissingBlobIsIdempotent(t *testing.T) {
	ls := newStorage(t)

	require.NoError(t, ls.Remove("never-existed.pdf"))
}

func TestLocatorCannotEscapeBaseDir(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(filepath.Join(base, "storage"))
	require.NoError(t, err)

	outside := filepath.Join(base, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o600))

	_, err = ls.Retrieve("../secret.txt")
	require.ErrorIs(t, err, apperrors.ErrBlobMissing)
}
