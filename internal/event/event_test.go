package event

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		want string
		typ  Type
	}{
		{want: "ScanStarted", typ: ScanStarted},
		{want: "ScanComplete", typ: ScanComplete},
		{want: "DirEntered", typ: DirEntered},
		{want: "DirPruned", typ: DirPruned},
		{want: "DirFinished", typ: DirFinished},
		{want: "DirCreated", typ: DirCreated},
		{want: "DirTruncated", typ: DirTruncated},
		{want: "DepthLimited", typ: DepthLimited},
		{want: "FileMatched", typ: FileMatched},
		{want: "EnumFailed", typ: EnumFailed},
		{want: "AttrApplied", typ: AttrApplied},
		{want: "AttrFailed", typ: AttrFailed},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestTypeStringUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", Type(999).String())
	assert.Equal(t, "Unknown", Type(0).String())
	assert.Equal(t, "Unknown", Type(-1).String())
}

func TestEventZeroValue(t *testing.T) {
	var e Event
	assert.Equal(t, Type(0), e.Type)
	assert.True(t, e.Timestamp.IsZero())
	assert.Empty(t, e.Path)
	assert.Empty(t, e.DestPath)
	assert.Zero(t, e.Size)
	assert.Zero(t, e.Count)
	require.NoError(t, e.Error)
	assert.Zero(t, e.Depth)
}

func TestEventFields(t *testing.T) {
	now := time.Now()
	boom := errors.New("boom")
	e := Event{
		Type:      AttrFailed,
		Timestamp: now,
		Path:      "/src/dir/file.txt",
		DestPath:  "/dst/dir/file.txt",
		Size:      1024,
		Depth:     2,
		Error:     boom,
	}
	assert.Equal(t, AttrFailed, e.Type)
	assert.Equal(t, now, e.Timestamp)
	assert.Equal(t, "/src/dir/file.txt", e.Path)
	assert.Equal(t, "/dst/dir/file.txt", e.DestPath)
	assert.Equal(t, int64(1024), e.Size)
	assert.Equal(t, 2, e.Depth)
	assert.ErrorIs(t, e.Error, boom)
}
