package includefs

import (
	"strings"
	"unicode/utf8"
)

// NormalizePath converts a user-provided path to the canonical archive form.
//
// It performs the following transformations:
//   - Strips leading slashes: "/etc/nginx" → "etc/nginx"
//   - Strips trailing slashes: "etc/nginx/" → "etc/nginx"
//   - Collapses consecutive slashes: "etc//nginx" → "etc/nginx"
//   - Converts empty string to root: "" → "."
//   - Preserves root indicator: "/" → "."
//
// Build and the lookup operations apply the same rule, so callers may pass
// either form. Normalization does not resolve path elements: "." and ".."
// segments are preserved and rejected by validatePath at build time.
func NormalizePath(p string) string {
	// Trim all leading and trailing slashes
	p = strings.Trim(p, "/")
	if p == "" {
		return "."
	}

	// Collapse consecutive slashes by splitting and rejoining.
	// This removes empty segments but preserves "." and ".." elements.
	parts := strings.Split(p, "/")
	result := parts[:0] // reuse backing array
	for _, part := range parts {
		if part != "" {
			result = append(result, part)
		}
	}
	if len(result) == 0 {
		return "."
	}
	return strings.Join(result, "/")
}

// validatePath checks that a normalized path may be stored in an archive.
func validatePath(p string) error {
	if p == "" || p == "." {
		return &InvalidPathError{Path: p, Reason: "empty path"}
	}
	if !utf8.ValidString(p) {
		return &InvalidPathError{Path: p, Reason: "not valid UTF-8"}
	}
	if len(p) > MaxPathLen {
		return &PathTooLongError{Path: p, Len: len(p), Max: MaxPathLen}
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "." || seg == ".." {
			return &InvalidPathError{Path: p, Reason: "relative path segment"}
		}
	}
	return nil
}
