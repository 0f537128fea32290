package includefs

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Archive provides random access to files embedded in an archive buffer.
//
// An Archive is immutable after construction: Exists and Get perform no
// mutation and are safe for concurrent use without synchronization. Content
// returned by Get aliases the backing buffer, so the buffer must outlive
// every returned slice.
type Archive struct {
	index
	data      []byte
	dataStart uint64
}

// New parses an archive buffer and returns a ready Archive.
//
// The buffer is retained and must not be modified afterwards. New either
// fully succeeds or fails with ErrInvalidMagic or ErrCorruptArchive; a
// malformed archive never yields a partially usable value.
func New(data []byte) (*Archive, error) {
	entries, headerLen, err := parseHeader(bufio.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, err
	}

	dataLen := uint64(len(data)) - headerLen
	for _, e := range entries {
		if e.Offset > dataLen || e.Size > dataLen-e.Offset {
			return nil, fmt.Errorf("%w: entry %q extends past end of archive", ErrCorruptArchive, e.Path)
		}
	}

	return &Archive{
		index:     index{entries: entries},
		data:      data,
		dataStart: headerLen,
	}, nil
}

// MustNew is like New but panics on error.
//
// It is intended for package-level initialization of compile-time embedded
// archives, where a malformed archive is a build defect rather than a
// runtime condition.
func MustNew(data []byte) *Archive {
	a, err := New(data)
	if err != nil {
		panic(err)
	}
	return a
}

// Exists reports whether the archive contains the given path.
// The path is normalized with the same rule the builder applies.
func (a *Archive) Exists(path string) bool {
	_, ok := a.entry(path)
	return ok
}

// Entry returns the recorded entry for the given path.
func (a *Archive) Entry(path string) (Entry, bool) {
	return a.entry(path)
}

// Get returns the content of the named file.
//
// The returned slice is a zero-copy view into the archive buffer and must
// be treated as read-only. A miss returns an error wrapping ErrNotFound.
func (a *Archive) Get(path string) ([]byte, error) {
	e, ok := a.entry(path)
	if !ok {
		return nil, fmt.Errorf("get %q: %w", path, ErrNotFound)
	}
	return a.view(e), nil
}

// Size returns the total size of the archive buffer in bytes.
func (a *Archive) Size() int64 {
	return int64(len(a.data))
}

// parseHeader reads and validates an archive header from r.
//
// It returns the entry table and the header's byte length, which is where
// the data section begins. The table's sort invariant is verified here;
// entry data ranges are bounds-checked by the caller, which knows the total
// archive size.
func parseHeader(r io.Reader) ([]Entry, uint64, error) {
	var fixed [headerFixedLen]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return nil, 0, truncated(err)
	}
	if string(fixed[:4]) != magic {
		return nil, 0, ErrInvalidMagic
	}
	count := binary.LittleEndian.Uint32(fixed[4:8])

	// Capacity is capped so a hostile count cannot force a huge allocation;
	// an overstated count fails below on a truncated read instead.
	capHint := min(int(count), 1<<16)
	entries := make([]Entry, 0, capHint)

	headerLen := uint64(headerFixedLen)
	var scratch [16]byte
	var prev string
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, scratch[:2]); err != nil {
			return nil, 0, truncated(err)
		}
		pathLen := binary.LittleEndian.Uint16(scratch[:2])

		pathBuf := make([]byte, pathLen)
		if _, err := io.ReadFull(r, pathBuf); err != nil {
			return nil, 0, truncated(err)
		}
		path := string(pathBuf)
		if !utf8.ValidString(path) {
			return nil, 0, fmt.Errorf("%w: entry path is not valid UTF-8", ErrCorruptArchive)
		}
		if i > 0 && strings.Compare(path, prev) <= 0 {
			return nil, 0, fmt.Errorf("%w: file table not strictly sorted at %q", ErrCorruptArchive, path)
		}
		prev = path

		if _, err := io.ReadFull(r, scratch[:]); err != nil {
			return nil, 0, truncated(err)
		}
		entries = append(entries, Entry{
			Path:   path,
			Size:   binary.LittleEndian.Uint64(scratch[:8]),
			Offset: binary.LittleEndian.Uint64(scratch[8:16]),
		})
		headerLen += entryFixedLen + uint64(pathLen)
	}

	return entries, headerLen, nil
}

// truncated maps short reads to a corrupt-archive error.
func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated header", ErrCorruptArchive)
	}
	return fmt.Errorf("read header: %w", err)
}
