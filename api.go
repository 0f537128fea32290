package includefs

import (
	"context"
	"io"

	core "github.com/happenslol/include-fs/core"
)

// Re-export types from core for the public API.
type (
	// Archive provides random access to files in an in-memory archive.
	Archive = core.Archive

	// FileArchive provides random access to an archive stored on disk.
	FileArchive = core.FileArchive

	// Entry records one file's path, size, and data offset.
	Entry = core.Entry

	// File is one builder input: a path and its content.
	File = core.File

	// CreateOption configures directory archive creation.
	CreateOption = core.CreateOption
)

// Format limits re-exported from core.
const (
	MaxPathLen      = core.MaxPathLen
	MaxFiles        = core.MaxFiles
	DefaultMaxFiles = core.DefaultMaxFiles
)

// New parses an archive buffer and returns a ready Archive.
func New(data []byte) (*Archive, error) { return core.New(data) }

// MustNew is like New but panics on error. Intended for package-level
// initialization of compile-time embedded archives.
func MustNew(data []byte) *Archive { return core.MustNew(data) }

// OpenFile opens an on-disk archive for bounded random-access reads.
func OpenFile(path string) (*FileArchive, error) { return core.OpenFile(path) }

// Build serializes files into an archive and writes it to w.
func Build(files []File, w io.Writer) (int64, error) { return core.Build(files, w) }

// BuildBytes serializes files into an in-memory archive.
func BuildBytes(files []File) ([]byte, error) { return core.BuildBytes(files) }

// Create builds an archive from the contents of dir and writes it to w.
func Create(ctx context.Context, dir string, w io.Writer, opts ...CreateOption) error {
	return core.Create(ctx, dir, w, opts...)
}

// CreateFile builds an archive from dir and writes it to path atomically.
func CreateFile(ctx context.Context, dir, path string, opts ...CreateOption) error {
	return core.CreateFile(ctx, dir, path, opts...)
}

// WriteFile serializes files into an archive at path atomically.
func WriteFile(path string, files []File) error { return core.WriteFile(path, files) }

// NormalizePath converts a user-provided path to the canonical archive form.
func NormalizePath(p string) string { return core.NormalizePath(p) }

// Re-export creation options.
var (
	CreateWithMaxFiles = core.CreateWithMaxFiles
	CreateWithLogger   = core.CreateWithLogger
)
