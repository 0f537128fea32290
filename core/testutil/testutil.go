// Package testutil builds raw archive bytes without validation or sorting,
// so tests can construct malformed archives the builder would reject.
package testutil

import "encoding/binary"

// RawEntry is one unvalidated file table row.
type RawEntry struct {
	Path   string
	Size   uint64
	Offset uint64
}

// RawArchive serializes a header with the given magic and entries, exactly
// as provided, followed by data. Nothing is sorted, checked, or fixed up.
func RawArchive(magic string, entries []RawEntry, data []byte) []byte {
	buf := []byte(magic)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(entries)))
	for _, e := range entries {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(e.Path)))
		buf = append(buf, e.Path...)
		buf = binary.LittleEndian.AppendUint64(buf, e.Size)
		buf = binary.LittleEndian.AppendUint64(buf, e.Offset)
	}
	return append(buf, data...)
}

// Archive is RawArchive with the correct magic.
func Archive(entries []RawEntry, data []byte) []byte {
	return RawArchive("INFS", entries, data)
}
