//go:build unix

package fsys

import (
	"os"
	"path"

	"golang.org/x/sys/unix"
)

func (*Local) Stat(name string) (Info, error) {
	var st unix.Stat_t
	if err := unix.Stat(name, &st); err != nil {
		return Info{}, &os.PathError{Op: "stat", Path: name, Err: err}
	}

	mode := uint32(st.Mode) //nolint:unconvert // uint16 on darwin
	return Info{
		Name:    path.Base(name),
		Size:    st.Size,
		ModTime: mtimeFromStat(&st),
		Perm:    os.FileMode(mode & 0o777),
		IsDir:   mode&unix.S_IFMT == unix.S_IFDIR,
	}, nil
}

func (*Local) Chmod(name string, perm os.FileMode) error {
	if err := unix.Chmod(name, uint32(perm.Perm())); err != nil {
		return &os.PathError{Op: "chmod", Path: name, Err: err}
	}
	return nil
}

func (*Local) Caps() Caps {
	return Caps{ExecBit: true}
}
