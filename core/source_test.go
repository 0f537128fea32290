package includefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/happenslol/include-fs/core/testutil"
)

func writeArchiveFile(t *testing.T, files []File) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.infs")
	require.NoError(t, WriteFile(path, files))
	return path
}

func TestOpenFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := writeArchiveFile(t, []File{
		{Path: "a.txt", Data: []byte("hi")},
		{Path: "b/c.txt", Data: []byte("bye")},
		{Path: "empty", Data: nil},
	})

	fa, err := OpenFile(path)
	require.NoError(t, err)
	defer fa.Close()

	assert.Equal(t, 3, fa.Len())
	assert.True(t, fa.Exists("b/c.txt"))
	assert.False(t, fa.Exists("missing"))

	content, err := fa.Get("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(content))

	content, err = fa.Get("empty")
	require.NoError(t, err)
	assert.Empty(t, content)

	_, err = fa.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)

	e, ok := fa.Entry("b/c.txt")
	require.True(t, ok)
	assert.Equal(t, uint64(3), e.Size)
}

func TestOpenFileRejectsCorruptArchive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	badMagic := filepath.Join(dir, "magic.infs")
	require.NoError(t, os.WriteFile(badMagic, testutil.RawArchive("NOPE", nil, nil), 0o644))
	_, err := OpenFile(badMagic)
	require.ErrorIs(t, err, ErrInvalidMagic)

	outOfBounds := filepath.Join(dir, "bounds.infs")
	raw := testutil.Archive([]testutil.RawEntry{{Path: "a", Size: 100, Offset: 0}}, []byte("tiny"))
	require.NoError(t, os.WriteFile(outOfBounds, raw, 0o644))
	_, err = OpenFile(outOfBounds)
	require.ErrorIs(t, err, ErrCorruptArchive)
}

func TestOpenFileMissing(t *testing.T) {
	t.Parallel()

	_, err := OpenFile(filepath.Join(t.TempDir(), "absent.infs"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileArchiveConcurrentGets(t *testing.T) {
	t.Parallel()

	path := writeArchiveFile(t, []File{
		{Path: "shared.txt", Data: []byte("shared content")},
		{Path: "other.txt", Data: []byte("other")},
	})

	fa, err := OpenFile(path)
	require.NoError(t, err)
	defer fa.Close()

	var g errgroup.Group
	for range 16 {
		g.Go(func() error {
			content, err := fa.Get("shared.txt")
			if err != nil {
				return err
			}
			assert.Equal(t, "shared content", string(content))
			return nil
		})
		g.Go(func() error {
			_, err := fa.Get("other.txt")
			return err
		})
	}
	require.NoError(t, g.Wait())
}

func TestFileArchiveCloseIdempotent(t *testing.T) {
	t.Parallel()

	path := writeArchiveFile(t, []File{{Path: "a", Data: []byte("x")}})

	fa, err := OpenFile(path)
	require.NoError(t, err)

	require.NoError(t, fa.Close())
	require.NoError(t, fa.Close())
}
