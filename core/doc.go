// Package includefs implements the INFS archive format: a flat, random
// access container for embedding a directory tree in a compiled binary.
//
// The builder serializes a set of files deterministically; the readers
// parse the sorted file table into an index and serve per-file extraction
// by path, zero-copy when the archive bytes are already resident.
package includefs
