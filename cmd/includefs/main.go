// Command includefs packs directory trees into INFS archives and generates
// the Go source that embeds them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/zeebo/blake3"

	includefs "github.com/happenslol/include-fs"
	"github.com/happenslol/include-fs/internal/embedgen"
)

var cli struct {
	Verbose bool `short:"v" help:"Enable debug logging."`

	Pack     PackCmd     `cmd:"" help:"Pack a directory into an archive."`
	Inspect  InspectCmd  `cmd:"" help:"List the contents of an archive."`
	Extract  ExtractCmd  `cmd:"" help:"Extract a single file from an archive."`
	Generate GenerateCmd `cmd:"" help:"Pack a directory and emit the Go source that embeds it."`
}

// PackCmd builds an archive from a directory tree.
type PackCmd struct {
	Dir      string `arg:"" help:"Directory to pack." type:"existingdir"`
	Out      string `short:"o" default:"assets.infs" help:"Output archive path."`
	MaxFiles int    `help:"Maximum number of files to include (0 = default limit)."`
}

func (c *PackCmd) Run(logger *slog.Logger) error {
	opts := []includefs.CreateOption{includefs.CreateWithLogger(logger)}
	if c.MaxFiles != 0 {
		opts = append(opts, includefs.CreateWithMaxFiles(c.MaxFiles))
	}
	if err := includefs.CreateFile(context.Background(), c.Dir, c.Out, opts...); err != nil {
		return fmt.Errorf("pack %s: %w", c.Dir, err)
	}
	fmt.Printf("wrote %s\n", c.Out)
	return nil
}

// InspectCmd lists archive entries and prints an archive digest.
type InspectCmd struct {
	Archive string `arg:"" help:"Archive to inspect." type:"existingfile"`
}

func (c *InspectCmd) Run() error {
	a, err := includefs.OpenFile(c.Archive)
	if err != nil {
		return err
	}
	defer a.Close()

	digest, err := archiveDigest(c.Archive)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Path", "Size", "Offset"})
	for e := range a.Entries() {
		t.AppendRow(table.Row{e.Path, e.Size, e.Offset})
	}
	t.Render()

	fmt.Printf("%d files, %d bytes, blake3:%x\n", a.Len(), a.Size(), digest)
	return nil
}

// archiveDigest streams the archive file through BLAKE3.
func archiveDigest(path string) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("digest %s: %w", path, err)
	}
	return h.Sum(nil), nil
}

// ExtractCmd writes one archived file to a destination or stdout.
type ExtractCmd struct {
	Archive string `arg:"" help:"Archive to read." type:"existingfile"`
	Path    string `arg:"" help:"Path of the file inside the archive."`
	Out     string `short:"o" help:"Destination file (default: stdout)."`
}

func (c *ExtractCmd) Run() error {
	a, err := includefs.OpenFile(c.Archive)
	if err != nil {
		return err
	}
	defer a.Close()

	content, err := a.Get(c.Path)
	if err != nil {
		if errors.Is(err, includefs.ErrNotFound) {
			return fmt.Errorf("%s: no such file in %s", c.Path, c.Archive)
		}
		return err
	}

	if c.Out == "" {
		_, err = os.Stdout.Write(content)
		return err
	}
	return os.WriteFile(c.Out, content, 0o644) //nolint:gosec // extracted asset, not a secret
}

// GenerateCmd packs a directory and emits the embedding Go source next to
// the archive.
type GenerateCmd struct {
	Dir     string `arg:"" help:"Directory to pack." type:"existingdir"`
	Out     string `short:"o" default:"assets_gen.go" help:"Generated Go file path."`
	Archive string `default:"assets.infs" help:"Archive file name, written next to the generated file."`
	Package string `required:"" help:"Package name for the generated file."`
	Var     string `default:"Assets" help:"Exported variable name for the archive."`
}

func (c *GenerateCmd) Run(logger *slog.Logger) error {
	archivePath := filepath.Join(filepath.Dir(c.Out), c.Archive)
	opts := []includefs.CreateOption{includefs.CreateWithLogger(logger)}
	if err := includefs.CreateFile(context.Background(), c.Dir, archivePath, opts...); err != nil {
		return fmt.Errorf("pack %s: %w", c.Dir, err)
	}

	cfg := embedgen.Config{Package: c.Package, Var: c.Var, ArchiveFile: c.Archive}
	if err := embedgen.WriteSource(cfg, c.Out); err != nil {
		os.Remove(archivePath)
		return err
	}

	logger.Info("generated embed source", "archive", archivePath, "source", c.Out)
	return nil
}

func main() {
	ktx := kong.Parse(&cli,
		kong.Name("includefs"),
		kong.Description("Pack directory trees into embeddable INFS archives."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ktx.FatalIfErrorf(ktx.Run(logger))
}
