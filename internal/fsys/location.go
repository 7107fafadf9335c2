package fsys

import (
	"fmt"
	"strings"
)

// Location is a parsed scan root argument.
type Location struct {
	Host string
	User string
	Path string
}

// IsRemote reports whether the location names an SSH host.
func (l Location) IsRemote() bool {
	return l.Host != ""
}

func (l Location) String() string {
	if !l.IsRemote() {
		return l.Path
	}
	if l.User != "" {
		return fmt.Sprintf("%s@%s:%s", l.User, l.Host, l.Path)
	}
	return fmt.Sprintf("%s:%s", l.Host, l.Path)
}

// ParseLocation splits a CLI argument into host and path.
//
// Supported formats:
//   - /absolute/path, relative/path, C:\dir  → local
//   - host:path                              → SFTP (current user)
//   - user@host:path                         → SFTP
//
// A colon only marks a remote root when the part before it contains no path
// separator and is longer than one character, so "./a:b" and "C:foo" stay
// local.
func ParseLocation(arg string) Location {
	if strings.HasPrefix(arg, "/") || strings.HasPrefix(arg, `\`) || strings.HasPrefix(arg, ".") {
		return Location{Path: arg}
	}

	colonIdx := strings.IndexByte(arg, ':')
	if colonIdx < 0 {
		return Location{Path: arg}
	}

	hostPart := arg[:colonIdx]
	if len(hostPart) < 2 || strings.ContainsAny(hostPart, `/\`) {
		return Location{Path: arg}
	}

	var userName, host string
	if at := strings.LastIndexByte(hostPart, '@'); at >= 0 {
		userName = hostPart[:at]
		host = hostPart[at+1:]
	} else {
		host = hostPart
	}
	if host == "" {
		return Location{Path: arg}
	}

	return Location{Host: host, User: userName, Path: arg[colonIdx+1:]}
}

// Open returns the backend serving loc. Remote locations dial SSH and open
// an SFTP session; the caller must Close the result.
func Open(loc Location, opts SSHOpts) (FS, error) {
	if !loc.IsRemote() {
		return NewLocal(), nil
	}
	client, err := DialSSH(loc.Host, loc.User, opts)
	if err != nil {
		return nil, err
	}
	fs, err := NewSFTP(client)
	if err != nil {
		client.Close()
		return nil, err
	}
	return fs, nil
}
