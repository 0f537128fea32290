package includefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happenslol/include-fs/core/testutil"
)

func buildArchive(t *testing.T, files map[string][]byte) *Archive {
	t.Helper()
	input := make([]File, 0, len(files))
	for path, data := range files {
		input = append(input, File{Path: path, Data: data})
	}
	raw, err := BuildBytes(input)
	require.NoError(t, err)
	a, err := New(raw)
	require.NoError(t, err)
	return a
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	files := map[string][]byte{
		"a.txt":          []byte("hi"),
		"b/c.txt":        []byte("bye"),
		"b/d/deep.bin":   {0x00, 0xff, 0x10},
		"empty.txt":      nil,
		"z trailing.txt": []byte("spaces are fine"),
	}
	a := buildArchive(t, files)

	require.Equal(t, len(files), a.Len())
	for path, want := range files {
		assert.True(t, a.Exists(path), path)

		got, err := a.Get(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)

		e, ok := a.Entry(path)
		require.True(t, ok, path)
		assert.Equal(t, uint64(len(want)), e.Size, path)
	}

	assert.False(t, a.Exists("missing"))
	_, err := a.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestConcreteScenario(t *testing.T) {
	t.Parallel()

	a := buildArchive(t, map[string][]byte{
		"a.txt":   []byte("hi"),
		"b/c.txt": []byte("bye"),
	})

	assert.Equal(t, []string{"a.txt", "b/c.txt"}, a.Paths())

	content, err := a.Get("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(content))

	_, err = a.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)

	assert.True(t, a.Exists("b/c.txt"))
}

func TestGetNormalizesQuery(t *testing.T) {
	t.Parallel()

	a := buildArchive(t, map[string][]byte{"etc/hosts": []byte("hosts")})

	for _, q := range []string{"etc/hosts", "/etc/hosts", "etc//hosts", "etc/hosts/"} {
		assert.True(t, a.Exists(q), q)
		got, err := a.Get(q)
		require.NoError(t, err, q)
		assert.Equal(t, "hosts", string(got), q)
	}
}

func TestGetIsZeroCopy(t *testing.T) {
	t.Parallel()

	raw, err := BuildBytes([]File{{Path: "a.txt", Data: []byte("hi")}})
	require.NoError(t, err)
	a, err := New(raw)
	require.NoError(t, err)

	got, err := a.Get("a.txt")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// The returned slice aliases the archive buffer rather than copying it.
	dataStart := len(raw) - 2
	assert.Same(t, &raw[dataStart], &got[0])
}

func TestNewRejectsInvalidMagic(t *testing.T) {
	t.Parallel()

	_, err := New(testutil.RawArchive("NOPE", nil, nil))
	require.ErrorIs(t, err, ErrInvalidMagic)
}

func TestNewRejectsTruncatedHeader(t *testing.T) {
	t.Parallel()

	raw, err := BuildBytes([]File{{Path: "a.txt", Data: []byte("hi")}})
	require.NoError(t, err)

	// Cut in the middle of the fixed header, the table, and the path.
	for _, n := range []int{0, 3, 7, 9, 12, 30} {
		if n >= len(raw) {
			continue
		}
		_, err := New(raw[:n])
		assert.ErrorIs(t, err, ErrCorruptArchive, "truncated at %d", n)
	}
}

func TestNewRejectsUnsortedTable(t *testing.T) {
	t.Parallel()

	raw := testutil.Archive([]testutil.RawEntry{
		{Path: "b.txt", Size: 1, Offset: 0},
		{Path: "a.txt", Size: 1, Offset: 1},
	}, []byte("xy"))

	_, err := New(raw)
	require.ErrorIs(t, err, ErrCorruptArchive)
}

func TestNewRejectsDuplicateTableEntries(t *testing.T) {
	t.Parallel()

	// Equal adjacent paths violate the strictly-increasing invariant.
	raw := testutil.Archive([]testutil.RawEntry{
		{Path: "a.txt", Size: 1, Offset: 0},
		{Path: "a.txt", Size: 1, Offset: 1},
	}, []byte("xy"))

	_, err := New(raw)
	require.ErrorIs(t, err, ErrCorruptArchive)
}

func TestNewRejectsOutOfBoundsRanges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []testutil.RawEntry
		data    []byte
	}{
		{
			name:    "size past end",
			entries: []testutil.RawEntry{{Path: "a", Size: 10, Offset: 0}},
			data:    []byte("short"),
		},
		{
			name:    "offset past end",
			entries: []testutil.RawEntry{{Path: "a", Size: 1, Offset: 100}},
			data:    []byte("x"),
		},
		{
			name:    "offset plus size overflows",
			entries: []testutil.RawEntry{{Path: "a", Size: ^uint64(0), Offset: ^uint64(0)}},
			data:    []byte("x"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(testutil.Archive(tt.entries, tt.data))
			require.ErrorIs(t, err, ErrCorruptArchive)
		})
	}
}

func TestNewRejectsInvalidPathEncoding(t *testing.T) {
	t.Parallel()

	raw := testutil.Archive([]testutil.RawEntry{
		{Path: "\xff\xfe", Size: 0, Offset: 0},
	}, nil)

	_, err := New(raw)
	require.ErrorIs(t, err, ErrCorruptArchive)
}

func TestNewAcceptsHandCraftedSortedTable(t *testing.T) {
	t.Parallel()

	// The builder is not the only producer; a mechanically built archive
	// with a valid sorted table and exact tiling must parse.
	raw := testutil.Archive([]testutil.RawEntry{
		{Path: "a", Size: 2, Offset: 0},
		{Path: "b", Size: 3, Offset: 2},
	}, []byte("hibye"))

	a, err := New(raw)
	require.NoError(t, err)

	got, err := a.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "bye", string(got))
}

func TestEntriesIteration(t *testing.T) {
	t.Parallel()

	a := buildArchive(t, map[string][]byte{
		"a/one.txt": []byte("1"),
		"a/two.txt": []byte("2"),
		"b/one.txt": []byte("3"),
		"top.txt":   []byte("4"),
	})

	var all []string
	for e := range a.Entries() {
		all = append(all, e.Path)
	}
	assert.Equal(t, []string{"a/one.txt", "a/two.txt", "b/one.txt", "top.txt"}, all)

	var under []string
	for e := range a.EntriesWithPrefix("a/") {
		under = append(under, e.Path)
	}
	assert.Equal(t, []string{"a/one.txt", "a/two.txt"}, under)

	var none []string
	for e := range a.EntriesWithPrefix("zzz") {
		none = append(none, e.Path)
	}
	assert.Empty(t, none)
}

func TestMustNewPanicsOnCorruptArchive(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustNew([]byte("not an archive"))
	})
}

func TestOffsetsTileDataSection(t *testing.T) {
	t.Parallel()

	a := buildArchive(t, map[string][]byte{
		"a": make([]byte, 10),
		"b": make([]byte, 0),
		"c": make([]byte, 7),
		"d": make([]byte, 3),
	})

	// Entries ordered by offset must tile the data section with no overlap.
	var next uint64
	for e := range a.Entries() {
		assert.Equal(t, next, e.Offset, e.Path)
		next += e.Size
	}
	assert.Equal(t, uint64(20), next)
}
