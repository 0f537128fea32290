// Package embedgen renders the Go source file that embeds an archive.
//
// The generated file carries a //go:embed directive for the archive and a
// package-level Archive initialized with MustNew, so the archive is parsed
// once at program startup and a malformed archive fails loudly there.
package embedgen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Config describes the file to generate.
type Config struct {
	// Package is the package name of the generated file.
	Package string

	// Var is the exported variable name for the archive.
	Var string

	// ArchiveFile is the archive path referenced by //go:embed, relative
	// to the directory containing the generated file.
	ArchiveFile string
}

var sourceTmpl = template.Must(template.New("embed").Parse(`// Code generated by includefs. DO NOT EDIT.

package {{.Package}}

import (
	_ "embed"

	includefs "github.com/happenslol/include-fs"
)

//go:embed {{.ArchiveFile}}
var {{.Var}}Bytes []byte

// {{.Var}} serves the files embedded from {{.ArchiveFile}}.
var {{.Var}} = includefs.MustNew({{.Var}}Bytes)
`))

// Source renders the generated file and gofmts it.
func Source(cfg Config) ([]byte, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := sourceTmpl.Execute(&buf, cfg); err != nil {
		return nil, fmt.Errorf("render embed source: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format embed source: %w", err)
	}
	return src, nil
}

// WriteSource renders the generated file and writes it to path.
func WriteSource(cfg Config, path string) error {
	src, err := Source(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return os.WriteFile(path, src, 0o644) //nolint:gosec // generated source is not sensitive
}

// validate rejects configs that would render broken or surprising source.
func validate(cfg Config) error {
	if !token.IsIdentifier(cfg.Package) {
		return fmt.Errorf("embedgen: package name %q is not a valid identifier", cfg.Package)
	}
	if !token.IsIdentifier(cfg.Var) || !token.IsExported(cfg.Var) {
		return fmt.Errorf("embedgen: variable name %q is not a valid exported identifier", cfg.Var)
	}
	p := cfg.ArchiveFile
	if p == "" || filepath.IsAbs(p) || strings.Contains(p, "..") || strings.ContainsAny(p, " \t\n\"'`*?[]{}") {
		return fmt.Errorf("embedgen: archive file %q is not a valid embed pattern", p)
	}
	return nil
}
