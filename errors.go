package includefs

import (
	core "github.com/happenslol/include-fs/core"
)

// Sentinel errors re-exported from core.
var (
	// ErrInvalidMagic is returned when a buffer is not a recognized archive.
	ErrInvalidMagic = core.ErrInvalidMagic

	// ErrCorruptArchive is returned when an archive header is truncated,
	// unsorted, or declares out-of-bounds data ranges.
	ErrCorruptArchive = core.ErrCorruptArchive

	// ErrNotFound is returned by Get when no entry matches the path.
	ErrNotFound = core.ErrNotFound
)

// Structured error types re-exported from core.
type (
	// PathTooLongError reports a path exceeding MaxPathLen.
	PathTooLongError = core.PathTooLongError

	// TooManyFilesError reports a file set exceeding the entry limit.
	TooManyFilesError = core.TooManyFilesError

	// DuplicatePathError reports two inputs normalizing to the same path.
	DuplicatePathError = core.DuplicatePathError

	// InvalidPathError reports an empty, non-UTF-8, or relative path.
	InvalidPathError = core.InvalidPathError
)
