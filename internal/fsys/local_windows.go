//go:build windows

package fsys

import (
	"os"
	"path"

	"golang.org/x/sys/windows"
)

// Compile-time interface check.
var _ DOSAttributer = (*Local)(nil)

func (*Local) Stat(name string) (Info, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return Info{}, err
	}
	attrs, err := getAttrs(name)
	if err != nil {
		return Info{}, err
	}

	return Info{
		Name:    path.Base(name),
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
		Perm:    fi.Mode().Perm(),
		IsDir:   fi.IsDir(),
		DOS: &DOSAttrs{
			ReadOnly: attrs&windows.FILE_ATTRIBUTE_READONLY != 0,
			Hidden:   attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0,
			System:   attrs&windows.FILE_ATTRIBUTE_SYSTEM != 0,
			Archive:  attrs&windows.FILE_ATTRIBUTE_ARCHIVE != 0,
		},
	}, nil
}

// Chmod only toggles FILE_ATTRIBUTE_READONLY via the owner write bit.
func (*Local) Chmod(name string, perm os.FileMode) error {
	return os.Chmod(name, perm)
}

func (*Local) SetDOSAttrs(name string, a DOSAttrs) error {
	cur, err := getAttrs(name)
	if err != nil {
		return err
	}
	next := setBit(cur, windows.FILE_ATTRIBUTE_READONLY, a.ReadOnly)
	next = setBit(next, windows.FILE_ATTRIBUTE_HIDDEN, a.Hidden)
	next = setBit(next, windows.FILE_ATTRIBUTE_SYSTEM, a.System)
	next = setBit(next, windows.FILE_ATTRIBUTE_ARCHIVE, a.Archive)
	if next == cur {
		return nil
	}

	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return &os.PathError{Op: "setattr", Path: name, Err: err}
	}
	if err := windows.SetFileAttributes(p, next); err != nil {
		return &os.PathError{Op: "setattr", Path: name, Err: err}
	}
	return nil
}

func (*Local) Caps() Caps {
	return Caps{DOSAttrs: true}
}

func getAttrs(name string) (uint32, error) {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, &os.PathError{Op: "getattr", Path: name, Err: err}
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return 0, &os.PathError{Op: "getattr", Path: name, Err: err}
	}
	return attrs, nil
}

func setBit(attrs, bit uint32, on bool) uint32 {
	if on {
		return attrs | bit
	}
	return attrs &^ bit
}
