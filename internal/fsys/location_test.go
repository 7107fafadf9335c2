package fsys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantHost string
		wantUser string
		wantPath string
	}{
		{name: "absolute path", input: "/home/user/data", wantPath: "/home/user/data"},
		{name: "relative path", input: "data/files", wantPath: "data/files"},
		{name: "dot-relative path", input: "./data/files", wantPath: "./data/files"},
		{name: "parent-relative path", input: "../data", wantPath: "../data"},
		{name: "drive letter", input: `C:\data`, wantPath: `C:\data`},
		{name: "drive relative", input: "c:data", wantPath: "c:data"},
		{name: "dot path with colon", input: "./host:path", wantPath: "./host:path"},
		{name: "local path with colon", input: "dir/file:x", wantPath: "dir/file:x"},
		{
			name:     "user@host:path",
			input:    "user@nas:/backup/data",
			wantHost: "nas",
			wantUser: "user",
			wantPath: "/backup/data",
		},
		{name: "host:path", input: "nas:/backup", wantHost: "nas", wantPath: "/backup"},
		{name: "host:relative", input: "nas:backup", wantHost: "nas", wantPath: "backup"},
		{name: "empty user", input: "@nas:/x", wantHost: "nas", wantPath: "/x"},
		{name: "empty host", input: "user@:/x", wantPath: "user@:/x"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			loc := ParseLocation(tt.input)
			assert.Equal(t, tt.wantHost, loc.Host)
			assert.Equal(t, tt.wantUser, loc.User)
			assert.Equal(t, tt.wantPath, loc.Path)
			assert.Equal(t, tt.wantHost != "", loc.IsRemote())
		})
	}
}

func TestLocationString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/data", Location{Path: "/data"}.String())
	assert.Equal(t, "nas:/data", Location{Host: "nas", Path: "/data"}.String())
	assert.Equal(t, "me@nas:/data", Location{Host: "nas", User: "me", Path: "/data"}.String())
}

func TestOpenLocal(t *testing.T) {
	t.Parallel()

	fs, err := Open(Location{Path: "/tmp"}, SSHOpts{})
	assert.NoError(t, err)
	assert.IsType(t, &Local{}, fs)
	assert.NoError(t, fs.Close())
}
