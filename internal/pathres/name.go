package pathres

import "strings"

// ExtIndex reports where ext begins in name, as the index of the dot that
// introduces it. Zero means no match. Matching is case-insensitive and a
// dot at index 0 does not count as an extension.
//
// Two special values of ext are recognized: "" matches a non-empty name
// without an extension (returning len(name)), and "." matches any non-empty
// name, returning the last dot or len(name).
func ExtIndex(name, ext string) int {
	lastDot := strings.LastIndexByte(name, '.')
	if lastDot <= 0 {
		if ext == "" || ext == "." {
			return len(name)
		}
		return 0
	}
	if ext == "." {
		return lastDot
	}
	if strings.EqualFold(name[lastDot+1:], ext) && ext != "" {
		return lastDot
	}
	return 0
}

// HasExtension reports whether name ends in "."+ext, ignoring case.
func HasExtension(name, ext string) bool {
	return ExtIndex(name, ext) > 0
}

// TrimExtension drops the last dot and everything after it.
func TrimExtension(name string) string {
	return name[:ExtIndex(name, ".")]
}
