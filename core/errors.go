package includefs

import (
	"errors"
	"fmt"
)

// Sentinel errors for archive parsing and lookup.
var (
	// ErrInvalidMagic is returned when a buffer does not start with the
	// archive magic and is therefore not a recognized archive.
	ErrInvalidMagic = errors.New("includefs: invalid archive magic")

	// ErrCorruptArchive is returned when an archive's header is truncated,
	// violates the sort invariant, or declares out-of-bounds data ranges.
	ErrCorruptArchive = errors.New("includefs: corrupt archive")

	// ErrNotFound is returned by Get when no entry matches the path.
	ErrNotFound = errors.New("includefs: file not found")
)

// PathTooLongError is returned when a path's UTF-8 encoding exceeds MaxPathLen.
type PathTooLongError struct {
	Path string
	Len  int
	Max  int
}

func (e *PathTooLongError) Error() string {
	return fmt.Sprintf("includefs: path too long: %s (%d bytes, max %d)", e.Path, e.Len, e.Max)
}

// TooManyFilesError is returned when a file set exceeds the entry count limit.
// Max is the format limit for Build, or the configured limit for Create.
type TooManyFilesError struct {
	Count uint64
	Max   uint64
}

func (e *TooManyFilesError) Error() string {
	return fmt.Sprintf("includefs: too many files: %d (max %d)", e.Count, e.Max)
}

// DuplicatePathError is returned when two inputs normalize to the same path.
type DuplicatePathError struct {
	Path string
}

func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("includefs: duplicate path: %s", e.Path)
}

// InvalidPathError is returned when a path is empty, not valid UTF-8, or
// contains relative segments after normalization.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("includefs: invalid path %q: %s", e.Path, e.Reason)
}
