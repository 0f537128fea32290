package includefs

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"slices"
	"strings"
)

// File is one input to the builder: a path and its content.
type File struct {
	Path string
	Data []byte
}

// Build serializes files into an archive and writes it to w.
//
// Input order is irrelevant: paths are normalized, validated, and sorted
// byte-wise before serialization, so the same logical file set always
// produces byte-identical output. Returns the number of bytes written.
//
// A failed write may leave partial output in w; callers that need atomic
// output should use WriteFile or an equivalent temp-and-rename sink.
func Build(files []File, w io.Writer) (int64, error) {
	sorted, err := prepare(files)
	if err != nil {
		return 0, err
	}

	header := encodeHeader(sorted)
	n, err := w.Write(header)
	written := int64(n)
	if err != nil {
		return written, fmt.Errorf("write header: %w", err)
	}

	for _, f := range sorted {
		n, err := w.Write(f.Data)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("write %s: %w", f.Path, err)
		}
	}
	return written, nil
}

// BuildBytes serializes files into an in-memory archive.
func BuildBytes(files []File) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Build(files, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// prepare normalizes, validates, and sorts the input file set.
// The input slice is not modified.
func prepare(files []File) ([]File, error) {
	if err := checkCount(uint64(len(files))); err != nil {
		return nil, err
	}

	sorted := make([]File, len(files))
	for i, f := range files {
		path := NormalizePath(f.Path)
		if err := validatePath(path); err != nil {
			return nil, err
		}
		sorted[i] = File{Path: path, Data: f.Data}
	}

	slices.SortFunc(sorted, func(a, b File) int {
		return strings.Compare(a.Path, b.Path)
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Path == sorted[i-1].Path {
			return nil, &DuplicatePathError{Path: sorted[i].Path}
		}
	}
	return sorted, nil
}

// checkCount verifies a file count fits the u32 count field.
func checkCount(n uint64) error {
	if n > MaxFiles {
		return &TooManyFilesError{Count: n, Max: MaxFiles}
	}
	return nil
}

// encodeHeader serializes the file table for an already prepared file set.
// Data offsets are running sums of preceding sizes, matching the physical
// order of the data section.
func encodeHeader(sorted []File) []byte {
	size := headerFixedLen
	for _, f := range sorted {
		size += entryFixedLen + len(f.Path)
	}

	buf := make([]byte, 0, size)
	buf = append(buf, magic...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(sorted)))

	var offset uint64
	for _, f := range sorted {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(f.Path)))
		buf = append(buf, f.Path...)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(f.Data)))
		buf = binary.LittleEndian.AppendUint64(buf, offset)
		offset += uint64(len(f.Data))
	}
	return buf
}
