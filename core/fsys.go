package includefs

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"slices"
	"strings"
	"time"
)

// Interface compliance.
var (
	_ fs.FS         = (*Archive)(nil)
	_ fs.StatFS     = (*Archive)(nil)
	_ fs.ReadFileFS = (*Archive)(nil)
	_ fs.ReadDirFS  = (*Archive)(nil)
)

// Open implements fs.FS.
//
// Open returns an fs.File reading the named file's bytes directly from the
// archive buffer. Directories are synthesized from path prefixes; the
// archive does not store them explicitly.
func (a *Archive) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	if i, ok := a.lookup(name); ok {
		return a.openEntry(a.entries[i]), nil
	}
	if a.isDir(name) {
		return &openDir{a: a, name: name}, nil
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// Stat implements fs.StatFS.
//
// For directories (paths that are prefixes of other entries), Stat returns
// synthetic directory info.
func (a *Archive) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}

	if i, ok := a.lookup(name); ok {
		e := a.entries[i]
		return &fileInfo{name: base(name), size: int64(e.Size)}, nil
	}
	if a.isDir(name) {
		return &dirInfo{name: base(name)}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

// ReadFile implements fs.ReadFileFS.
//
// Unlike Get, ReadFile returns a fresh copy of the content, per the fs
// contract that callers may modify the returned slice.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrInvalid}
	}

	i, ok := a.lookup(name)
	if !ok {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrNotExist}
	}
	return bytes.Clone(a.view(a.entries[i])), nil
}

// ReadDir implements fs.ReadDirFS.
//
// ReadDir returns directory entries for the named directory, sorted by name.
// Subdirectories are synthesized from nested paths.
func (a *Archive) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	entries := a.dirList(name)
	if len(entries) == 0 && name != "." {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	return entries, nil
}

// view returns the zero-copy byte range for an entry.
func (a *Archive) view(e Entry) []byte {
	start := a.dataStart + e.Offset
	end := start + e.Size
	return a.data[start:end:end]
}

// openEntry creates an fs.File over an entry's byte range.
func (a *Archive) openEntry(e Entry) fs.File {
	return &fileHandle{
		Reader: bytes.NewReader(a.view(e)),
		info:   fileInfo{name: base(e.Path), size: int64(e.Size)},
	}
}

// isDir reports whether name is a synthesized directory.
func (a *Archive) isDir(name string) bool {
	if name == "." {
		return true
	}
	for range a.EntriesWithPrefix(name + "/") {
		return true
	}
	return false
}

// dirList collects the immediate children of a directory.
//
// Entry order is byte-wise by full path, which is not name order for
// children ("foo.txt" precedes "foo/bar", but the child "foo" must list
// before "foo.txt"), so children are deduplicated with a set and sorted
// by name before returning. When a file and a subdirectory share a name,
// the file wins, matching Open's lookup-before-isDir precedence.
func (a *Archive) dirList(name string) []fs.DirEntry {
	prefix := dirPrefix(name)
	seen := make(map[string]bool)
	var out []fs.DirEntry
	for e := range a.EntriesWithPrefix(prefix) {
		child, isSubDir := childName(e.Path, prefix)
		if seen[child] {
			continue
		}
		seen[child] = true
		if isSubDir {
			out = append(out, dirEntry{info: &dirInfo{name: child}})
		} else {
			out = append(out, dirEntry{info: &fileInfo{name: child, size: int64(e.Size)}})
		}
	}
	slices.SortFunc(out, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return out
}

// fileHandle implements fs.File over an in-memory byte range.
type fileHandle struct {
	*bytes.Reader
	info fileInfo
}

func (f *fileHandle) Stat() (fs.FileInfo, error) { return &f.info, nil }
func (f *fileHandle) Close() error               { return nil }

// openDir implements fs.ReadDirFile for synthesized directories.
type openDir struct {
	a       *Archive
	name    string
	entries []fs.DirEntry
	loaded  bool
	pos     int
}

func (d *openDir) Stat() (fs.FileInfo, error) { return &dirInfo{name: base(d.name)}, nil }
func (d *openDir) Close() error               { return nil }

func (d *openDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.name, Err: errors.New("is a directory")}
}

// ReadDir implements fs.ReadDirFile with the usual paging semantics.
func (d *openDir) ReadDir(n int) ([]fs.DirEntry, error) {
	if !d.loaded {
		d.entries = d.a.dirList(d.name)
		d.loaded = true
	}

	remaining := d.entries[d.pos:]
	if n <= 0 {
		d.pos = len(d.entries)
		return remaining, nil
	}
	if len(remaining) == 0 {
		return nil, io.EOF
	}
	if n > len(remaining) {
		n = len(remaining)
	}
	d.pos += n
	return remaining[:n], nil
}

// fileInfo implements fs.FileInfo for archived files. The format records no
// metadata, so mode and mtime are fixed values.
type fileInfo struct {
	name string
	size int64
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return fi.size }
func (fi *fileInfo) Mode() fs.FileMode  { return 0o444 }
func (fi *fileInfo) ModTime() time.Time { return time.Time{} }
func (fi *fileInfo) IsDir() bool        { return false }
func (fi *fileInfo) Sys() any           { return nil }

// dirInfo implements fs.FileInfo for synthesized directories.
type dirInfo struct {
	name string
}

func (di *dirInfo) Name() string       { return di.name }
func (di *dirInfo) Size() int64        { return 0 }
func (di *dirInfo) Mode() fs.FileMode  { return fs.ModeDir | 0o555 }
func (di *dirInfo) ModTime() time.Time { return time.Time{} }
func (di *dirInfo) IsDir() bool        { return true }
func (di *dirInfo) Sys() any           { return nil }

// dirEntry implements fs.DirEntry by wrapping fs.FileInfo.
type dirEntry struct {
	info fs.FileInfo
}

func (de dirEntry) Name() string               { return de.info.Name() }
func (de dirEntry) IsDir() bool                { return de.info.IsDir() }
func (de dirEntry) Type() fs.FileMode          { return de.info.Mode().Type() }
func (de dirEntry) Info() (fs.FileInfo, error) { return de.info, nil }

// base returns the last element of a slash-separated path.
func base(path string) string {
	if path == "" || path == "." {
		return "."
	}
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// dirPrefix converts a directory name to its child-matching prefix form.
// The root "." becomes the empty prefix, which matches every entry.
func dirPrefix(name string) string {
	if name == "." {
		return ""
	}
	return name + "/"
}

// childName extracts the immediate child component of path under prefix,
// and whether further components follow it.
func childName(path, prefix string) (name string, isSubDir bool) {
	rel := strings.TrimPrefix(path, prefix)
	if i := strings.Index(rel, "/"); i >= 0 {
		return rel[:i], true
	}
	return rel, false
}
