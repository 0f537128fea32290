package includefs

import (
	"iter"
	"slices"
	"strings"
)

// index provides path lookup over the parsed, sorted entry table.
//
// Entries are sorted ascending by path bytes, so lookups binary search the
// table directly. No auxiliary structure is kept; memory use is the table
// itself. The same index backs both the in-memory and file-backed readers.
type index struct {
	entries []Entry
}

// lookup returns the table position for a normalized path.
func (idx *index) lookup(path string) (int, bool) {
	return slices.BinarySearchFunc(idx.entries, path, func(e Entry, target string) int {
		return strings.Compare(e.Path, target)
	})
}

// entry returns the entry for the given path after normalization.
func (idx *index) entry(path string) (Entry, bool) {
	i, ok := idx.lookup(NormalizePath(path))
	if !ok {
		return Entry{}, false
	}
	return idx.entries[i], true
}

// Len returns the number of entries in the archive.
func (idx *index) Len() int {
	return len(idx.entries)
}

// Paths returns every archived path in sorted order.
func (idx *index) Paths() []string {
	paths := make([]string, len(idx.entries))
	for i, e := range idx.entries {
		paths[i] = e.Path
	}
	return paths
}

// Entries returns an iterator over all entries in sorted path order.
func (idx *index) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range idx.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// EntriesWithPrefix returns an iterator over entries whose path starts with
// prefix, in sorted path order.
func (idx *index) EntriesWithPrefix(prefix string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		start, _ := idx.lookup(prefix)
		for _, e := range idx.entries[start:] {
			if !strings.HasPrefix(e.Path, prefix) {
				return
			}
			if !yield(e) {
				return
			}
		}
	}
}
