//go:build unix

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perm(t *testing.T, p string) os.FileMode {
	t.Helper()
	fi, err := os.Stat(p)
	require.NoError(t, err)
	return fi.Mode().Perm()
}

func TestChattrClearsWriteBits(t *testing.T) {
	dir := createTestTree(t)

	code, out, _ := cli(t, dir, "-p", "*.TXT", "--chattr", "-w", "--format", "json", "-q")
	require.Equal(t, 0, code)

	recs := decodeRecords(t, out)
	require.Len(t, recs, 1)
	assert.Equal(t, "-w", recs[0].Change)

	assert.Equal(t, os.FileMode(0o444), perm(t, filepath.Join(dir, "a.txt")))
	assert.Equal(t, os.FileMode(0o644), perm(t, filepath.Join(dir, "b.c")), "unmatched files untouched")
}

func TestChattrDryRun(t *testing.T) {
	dir := createTestTree(t)

	code, out, _ := cli(t, dir, "--chattr", "-w", "--dry-run", "--format", "json", "-q")
	require.Equal(t, 0, code)

	for _, r := range decodeRecords(t, out) {
		assert.Equal(t, "-w", r.Change)
	}
	assert.Equal(t, os.FileMode(0o644), perm(t, filepath.Join(dir, "a.txt")))
}

func TestUnreadableDirectoryExitsOne(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read any directory")
	}
	dir := createTestTree(t)
	locked := filepath.Join(dir, "sub", "deep")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	code, _, errOut := cli(t, dir, "-r", "--format", "json")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unreadable: sub/deep/")
}
