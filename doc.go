// Package includefs embeds a directory tree in a compiled binary as a
// single flat archive and serves per-file lookups over it at runtime.
//
// An archive is built once, ahead of time, from a directory or an in-memory
// file set; the resulting bytes are compiled into the binary with //go:embed
// and parsed into an [Archive] at startup. Lookups are O(log n) binary
// searches over the sorted file table, and [Archive.Get] returns zero-copy
// views into the embedded bytes.
//
// # Quick Start
//
// Pack a directory at build time:
//
//	//go:generate go run github.com/happenslol/include-fs/cmd/includefs generate ./assets --package assets
//
// Or wire the embedding by hand:
//
//	//go:embed assets.infs
//	var assetsBytes []byte
//
//	var Assets = includefs.MustNew(assetsBytes)
//
// Then read files:
//
//	content, err := Assets.Get("templates/index.html")
//	ok := Assets.Exists("static/app.css")
//
// [Archive] also implements fs.FS, fs.StatFS, fs.ReadFileFS, and
// fs.ReadDirFS, so an embedded archive can be handed to net/http,
// html/template, and anything else that consumes the fs interfaces.
//
// This package is a thin facade; the format and readers live in the [core]
// subpackage.
package includefs
