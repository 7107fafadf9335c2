// Package mirror maps paths under a source root onto the same relative
// position under a destination root. It is pure string arithmetic; nothing
// here touches a filesystem except CheckOverlap's working-directory lookup.
package mirror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bamsammich/ezscan/internal/pathres"
)

// ErrOutsideRoot is returned when a path does not lie under the source root.
var ErrOutsideRoot = errors.New("path is outside the source root")

// SubPath returns curSrcPath with srcRoot removed. Both are expected in
// canonical form with srcRoot slash-terminated; the remainder never starts
// with a separator.
func SubPath(srcRoot, curSrcPath string) (string, error) {
	if srcRoot == "" || !strings.HasPrefix(curSrcPath, srcRoot) {
		return "", fmt.Errorf("%w: %q not under %q", ErrOutsideRoot, curSrcPath, srcRoot)
	}
	rest := curSrcPath[len(srcRoot):]
	if strings.HasPrefix(rest, "/") {
		return "", fmt.Errorf("%w: %q not under %q", ErrOutsideRoot, curSrcPath, srcRoot)
	}
	return rest, nil
}

// Mirror returns the destination path corresponding to filename inside
// curSrcPath.
func Mirror(srcRoot, destRoot, curSrcPath, filename string) (string, error) {
	sub, err := SubPath(srcRoot, curSrcPath)
	if err != nil {
		return "", err
	}
	return pathres.EnsureSlash(strings.TrimSuffix(destRoot, "/")) + sub + filename, nil
}

// IsUnsafeOverlap reports whether destRoot is srcRoot or lies beneath it.
// Comparison is a plain prefix test on the slash-terminated roots.
func IsUnsafeOverlap(srcRoot, destRoot string) bool {
	return strings.HasPrefix(pathres.EnsureSlash(destRoot), pathres.EnsureSlash(srcRoot))
}

// CheckOverlap resolves both paths and reports whether creating dest while
// scanning src would be unsafe.
func CheckOverlap(src, dest string, getwd func() (string, error)) (bool, error) {
	s, err := pathres.ResolveDir(src, getwd)
	if err != nil {
		return false, fmt.Errorf("source: %w", err)
	}
	d, err := pathres.ResolveDir(dest, getwd)
	if err != nil {
		return false, fmt.Errorf("destination: %w", err)
	}
	return IsUnsafeOverlap(s, d), nil
}
