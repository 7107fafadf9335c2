package fsys

import (
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// Compile-time interface check.
var _ FS = (*Mem)(nil)

// Mem is an afero-backed filesystem with its own virtual working directory.
// It never touches the process working directory, which makes it the
// backend of choice for tests and dry runs over synthetic trees.
type Mem struct {
	fs  afero.Fs
	cwd string
	mu  sync.Mutex
}

// NewMem returns an empty in-memory filesystem rooted at "/".
func NewMem() *Mem {
	return NewMemFrom(afero.NewMemMapFs())
}

// NewMemFrom wraps an existing afero filesystem.
func NewMemFrom(fs afero.Fs) *Mem {
	return &Mem{fs: fs, cwd: "/"}
}

// Afero exposes the underlying filesystem for seeding.
func (m *Mem) Afero() afero.Fs { return m.fs }

func (m *Mem) ReadDir(dir string) ([]string, error) {
	f, err := m.fs.Open(m.abs(dir))
	if err != nil {
		return nil, fmt.Errorf("readdir %s: %w", dir, err)
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("readdir %s: %w", dir, err)
	}
	return names, nil
}

func (m *Mem) Stat(name string) (Info, error) {
	fi, err := m.fs.Stat(m.abs(name))
	if err != nil {
		return Info{}, err
	}
	return Info{
		Name:    path.Base(name),
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
		Perm:    fi.Mode().Perm(),
		IsDir:   fi.IsDir(),
	}, nil
}

func (m *Mem) Chmod(name string, perm os.FileMode) error {
	return m.fs.Chmod(m.abs(name), perm.Perm())
}

func (m *Mem) MkdirAll(dir string) error {
	return m.fs.MkdirAll(m.abs(dir), 0755)
}

func (m *Mem) Getwd() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cwd, nil
}

func (m *Mem) Chdir(dir string) error {
	target := m.abs(dir)
	fi, err := m.fs.Stat(target)
	if err != nil {
		return &os.PathError{Op: "chdir", Path: dir, Err: err}
	}
	if !fi.IsDir() {
		return &os.PathError{Op: "chdir", Path: dir, Err: fmt.Errorf("not a directory")}
	}
	m.mu.Lock()
	m.cwd = target
	m.mu.Unlock()
	return nil
}

func (*Mem) Caps() Caps {
	return Caps{ExecBit: true}
}

func (*Mem) Close() error { return nil }

func (m *Mem) abs(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	if strings.HasPrefix(name, "/") {
		return path.Clean(name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return path.Join(m.cwd, name)
}
