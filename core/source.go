package includefs

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/sync/singleflight"
)

// FileArchive provides random access to an archive stored on disk without
// loading the data section into memory.
//
// The header is read and validated at open time; Get then performs one
// bounded ReadAt covering exactly the requested entry's byte range. Lookups
// are safe for concurrent use. Close must be called to release the handle.
type FileArchive struct {
	index
	f         *os.File
	dataStart int64
	size      int64
	group     singleflight.Group // zero value is valid
}

// OpenFile opens an archive file and parses its header.
//
// The same validation as New applies: a malformed header fails with
// ErrInvalidMagic or ErrCorruptArchive and no FileArchive is returned.
func OpenFile(path string) (*FileArchive, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	fa, err := newFileArchive(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return fa, nil
}

// newFileArchive parses the header from an open file and validates entry
// ranges against the file size.
func newFileArchive(f *os.File) (*FileArchive, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat archive: %w", err)
	}

	entries, headerLen, err := parseHeader(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}

	size := info.Size()
	if headerLen > uint64(size) {
		return nil, fmt.Errorf("%w: truncated header", ErrCorruptArchive)
	}
	dataLen := uint64(size) - headerLen
	for _, e := range entries {
		if e.Offset > dataLen || e.Size > dataLen-e.Offset {
			return nil, fmt.Errorf("%w: entry %q extends past end of archive", ErrCorruptArchive, e.Path)
		}
	}

	return &FileArchive{
		index:     index{entries: entries},
		f:         f,
		dataStart: int64(headerLen),
		size:      size,
	}, nil
}

// Exists reports whether the archive contains the given path.
func (fa *FileArchive) Exists(path string) bool {
	_, ok := fa.entry(path)
	return ok
}

// Entry returns the recorded entry for the given path.
func (fa *FileArchive) Entry(path string) (Entry, bool) {
	return fa.entry(path)
}

// Get reads and returns the content of the named file.
//
// Exactly the entry's byte range is read from disk; no surrounding data is
// touched. Concurrent calls for the same path are deduplicated and receive
// a shared slice, which must be treated as read-only.
func (fa *FileArchive) Get(path string) ([]byte, error) {
	e, ok := fa.entry(path)
	if !ok {
		return nil, fmt.Errorf("get %q: %w", path, ErrNotFound)
	}

	result, err, _ := fa.group.Do(e.Path, func() (any, error) {
		buf := make([]byte, e.Size)
		if _, err := fa.f.ReadAt(buf, fa.dataStart+int64(e.Offset)); err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Path, err)
		}
		return buf, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil //nolint:errcheck // type assertion always succeeds when err is nil
}

// Size returns the total size of the archive file in bytes.
func (fa *FileArchive) Size() int64 {
	return fa.size
}

// Close closes the underlying archive file.
func (fa *FileArchive) Close() error {
	if fa.f == nil {
		return nil
	}
	err := fa.f.Close()
	fa.f = nil
	return err
}
