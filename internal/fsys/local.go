package fsys

import (
	"fmt"
	"os"
	"strings"

	"github.com/karrick/godirwalk"
)

// Compile-time interface check.
var _ FS = (*Local)(nil)

// Local is the host filesystem. Chdir changes the process working directory,
// so only one scan over a Local backend may run at a time.
type Local struct {
	scratch []byte
}

// NewLocal returns the host filesystem backend.
func NewLocal() *Local {
	return &Local{scratch: make([]byte, godirwalk.MinimumScratchBufferSize)}
}

func (l *Local) ReadDir(dir string) ([]string, error) {
	names, err := godirwalk.ReadDirnames(dir, l.scratch)
	if err != nil {
		return nil, fmt.Errorf("readdir %s: %w", dir, err)
	}
	return names, nil
}

func (*Local) MkdirAll(dir string) error {
	return os.MkdirAll(dir, 0755)
}

func (*Local) Getwd() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(wd, `\`, "/"), nil
}

func (*Local) Chdir(dir string) error {
	return os.Chdir(dir)
}

func (*Local) Close() error { return nil }
