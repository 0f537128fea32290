package includefs

import "math"

// Archive wire layout, little-endian throughout:
//
//	offset 0:  magic       4 bytes  = "INFS"
//	offset 4:  file_count  4 bytes  u32
//	offset 8:  file table, file_count rows, sorted ascending by path bytes:
//	             path_len  2 bytes  u16
//	             path      path_len bytes, UTF-8, forward slashes, relative
//	             size      8 bytes  u64
//	             offset    8 bytes  u64, relative to the data section start
//	data section: concatenated raw file bytes, immediately after the table.
const (
	// MaxPathLen is the maximum UTF-8 encoded length of an archive path.
	MaxPathLen = math.MaxUint16

	// MaxFiles is the maximum number of entries the format can record.
	MaxFiles = math.MaxUint32
)

const (
	magic          = "INFS"
	headerFixedLen = 8         // magic + file_count
	entryFixedLen  = 2 + 8 + 8 // path_len + size + offset
)
