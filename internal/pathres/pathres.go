// Package pathres turns user-supplied path strings into canonical absolute
// paths: forward slashes, upper-case drive letter, no "." or ".." segments.
package pathres

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformed is returned for paths containing wildcard characters,
	// a misplaced colon, or a segment like "...".
	ErrMalformed = errors.New("malformed path")

	// ErrAboveRoot is returned when ".." segments climb past the root.
	ErrAboveRoot = errors.New("path climbs above its root")

	// ErrNotRooted is returned when an absolute path was required.
	ErrNotRooted = errors.New("path is not rooted")
)

// PathError records the offending input alongside the failure.
type PathError struct {
	Err  error
	Path string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %q: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Validate checks raw without touching any filesystem. With requireRoot the
// path must start at a root or carry a drive letter.
func Validate(raw string, requireRoot bool) error {
	p := normalize(raw)

	if strings.ContainsAny(p, "*?") {
		return &PathError{Path: raw, Err: fmt.Errorf("%w: wildcard characters", ErrMalformed)}
	}
	for i := 0; i < len(p); i++ {
		if p[i] == ':' && (i != 1 || !isLetter(p[0])) {
			return &PathError{Path: raw, Err: fmt.Errorf("%w: misplaced colon", ErrMalformed)}
		}
	}
	if requireRoot && !isRooted(p) {
		return &PathError{Path: raw, Err: ErrNotRooted}
	}
	for _, seg := range strings.Split(p, "/") {
		if strings.HasPrefix(seg, "..") && seg != ".." {
			return &PathError{Path: raw, Err: fmt.Errorf("%w: segment %q", ErrMalformed, seg)}
		}
	}
	return nil
}

// Resolve returns the canonical absolute form of raw. Relative input,
// including "", "." and "..", is anchored at the directory getwd reports.
// The result never ends in a slash unless it is a root.
func Resolve(raw string, getwd func() (string, error)) (string, error) {
	if err := Validate(raw, false); err != nil {
		return "", err
	}

	p := normalize(raw)
	var root, rest string
	if isRooted(p) {
		root, rest = splitRoot(p)
	} else {
		wd, err := getwd()
		if err != nil {
			return "", &PathError{Path: raw, Err: fmt.Errorf("working directory: %w", err)}
		}
		wd = normalize(wd)
		if !isRooted(wd) {
			return "", &PathError{Path: raw, Err: fmt.Errorf("working directory %q: %w", wd, ErrNotRooted)}
		}
		var wdRest string
		root, wdRest = splitRoot(wd)
		rest = wdRest + "/" + p
	}

	segs, ok := collapse(rest)
	if !ok {
		return "", &PathError{Path: raw, Err: ErrAboveRoot}
	}
	return root + strings.Join(segs, "/"), nil
}

// ResolveDir is Resolve with a trailing slash appended.
func ResolveDir(raw string, getwd func() (string, error)) (string, error) {
	p, err := Resolve(raw, getwd)
	if err != nil {
		return "", err
	}
	return EnsureSlash(p), nil
}

// EnsureSlash appends "/" unless p already ends in one. Empty input yields
// "/".
func EnsureSlash(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}

// TrimSlash removes one trailing slash. Roots ("/", "C:/") are returned
// unchanged.
func TrimSlash(p string) string {
	if isRoot(p) || !strings.HasSuffix(p, "/") {
		return p
	}
	return p[:len(p)-1]
}

// Base returns the final component of p, ignoring one trailing slash.
// Roots and empty input yield "".
func Base(p string) string {
	p = normalize(p)
	if isRoot(p) {
		return ""
	}
	p = strings.TrimSuffix(p, "/")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	if len(p) >= 2 && p[1] == ':' && isLetter(p[0]) {
		return p[2:]
	}
	return p
}

// Parent returns the slash-terminated directory containing p. The parent of
// a root is the root itself.
func Parent(p string) string {
	if isRoot(p) {
		return p
	}
	trimmed := strings.TrimSuffix(p, "/")
	i := strings.LastIndexByte(trimmed, '/')
	if i < 0 {
		return p
	}
	return trimmed[:i+1]
}

// IsRoot reports whether p is "/" or a bare drive root such as "C:/".
func IsRoot(p string) bool { return isRoot(normalize(p)) }

func normalize(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func hasDrive(p string) bool {
	return len(p) >= 2 && p[1] == ':' && isLetter(p[0])
}

func isRooted(p string) bool {
	return strings.HasPrefix(p, "/") || hasDrive(p)
}

func isRoot(p string) bool {
	return p == "/" || (len(p) == 3 && hasDrive(p) && p[2] == '/')
}

// splitRoot separates a rooted path into "/" or "X:/" and the remainder.
func splitRoot(p string) (root, rest string) {
	if hasDrive(p) {
		return strings.ToUpper(p[:1]) + ":/", p[2:]
	}
	return "/", p
}

func collapse(p string) ([]string, bool) {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(out) == 0 {
				return nil, false
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}
	return out, true
}
