package includefs

// Entry records one file's location in the archive.
type Entry struct {
	// Path is the file path relative to the archive root (e.g., "src/main.go").
	Path string

	// Size is the exact byte length of the file's content.
	Size uint64

	// Offset is the byte offset of the content from the start of the
	// data section, not from the start of the archive.
	Offset uint64
}
