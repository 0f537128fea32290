package includefs

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
)

// DefaultMaxFiles is the default limit used when no CreateWithMaxFiles
// option is set. The format itself allows up to MaxFiles entries.
const DefaultMaxFiles = 200_000

// Create builds an archive from the contents of dir and writes it to w.
//
// Create walks dir recursively, including all regular files. Empty
// directories are not preserved and symbolic links are not followed; both
// are skipped, matching what the format can represent.
//
// File contents are held in memory until the header is written, since every
// entry's size must be known before any data is emitted. Memory use scales
// with the total size of the tree.
//
// The context can be used to cancel a long-running walk.
func Create(ctx context.Context, dir string, w io.Writer, opts ...CreateOption) error {
	cfg := createConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	maxFiles := cfg.maxFiles
	if maxFiles == 0 {
		maxFiles = DefaultMaxFiles
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return err
	}
	defer root.Close()

	log := cfg.log()
	log.Info("creating archive", "dir", dir)

	files := make([]File, 0, 64)
	err = fs.WalkDir(root.FS(), ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			log.Debug("skipped non-regular file", "path", path)
			return nil
		}
		if maxFiles > 0 && len(files) >= maxFiles {
			return &TooManyFilesError{Count: uint64(len(files)) + 1, Max: uint64(maxFiles)}
		}

		data, err := fs.ReadFile(root.FS(), path)
		if err != nil {
			return err
		}
		files = append(files, File{Path: path, Data: data})
		log.Debug("added file", "path", path, "size", len(data))
		return nil
	})
	if err != nil {
		return err
	}

	n, err := Build(files, w)
	if err != nil {
		return err
	}

	log.Info("archive written", "file_count", len(files), "bytes", n)
	return nil
}

// CreateFile builds an archive from dir and writes it to path atomically.
//
// The archive is staged in a temp file and renamed into place, so a failed
// build never leaves a partial archive at path.
func CreateFile(ctx context.Context, dir, path string, opts ...CreateOption) error {
	return writeArchiveAtomic(path, func(w io.Writer) error {
		return Create(ctx, dir, w, opts...)
	})
}

// createConfig holds configuration for archive creation.
type createConfig struct {
	maxFiles int
	logger   *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (cfg *createConfig) log() *slog.Logger {
	if cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return cfg.logger
}

// CreateOption configures archive creation.
type CreateOption func(*createConfig)

// CreateWithMaxFiles limits the number of files included in the archive.
// Zero uses DefaultMaxFiles. Negative means no limit beyond the format's.
func CreateWithMaxFiles(n int) CreateOption {
	return func(cfg *createConfig) {
		cfg.maxFiles = n
	}
}

// CreateWithLogger sets the logger used for progress reporting.
// By default nothing is logged.
func CreateWithLogger(logger *slog.Logger) CreateOption {
	return func(cfg *createConfig) {
		cfg.logger = logger
	}
}
