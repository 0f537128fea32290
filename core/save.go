package includefs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFile serializes files into an archive at path.
//
// Uses atomic writes (temp file + rename) so a failed build never commits
// partial output. Parent directories are created as needed.
func WriteFile(path string, files []File) error {
	return writeArchiveAtomic(path, func(w io.Writer) error {
		_, err := Build(files, w)
		return err
	})
}

// writeArchiveAtomic streams archive bytes to a temp file then renames it
// to target, ensuring atomic replacement of the target file.
func writeArchiveAtomic(target string, write func(io.Writer) error) error {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".infs-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
