package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, pattern string) *globPattern {
	t.Helper()
	p, err := compilePattern(pattern, false)
	require.NoError(t, err)
	return p
}

func TestPatternStar(t *testing.T) {
	p := mustCompile(t, "*.log")

	assert.True(t, p.match("app.log", false))
	assert.True(t, p.match("dir/app.log", false))
	assert.False(t, p.match("app.log.bak", false))
	assert.False(t, p.match("app.txt", false))
}

func TestPatternDoubleStar(t *testing.T) {
	p := mustCompile(t, "**/*.go")

	assert.True(t, p.match("main.go", false))
	assert.True(t, p.match("cmd/ezscan/main.go", false))
	assert.True(t, p.match("internal/engine/engine.go", false))
	assert.False(t, p.match("main.txt", false))
}

func TestPatternAnchored(t *testing.T) {
	p := mustCompile(t, "/root.txt")

	assert.True(t, p.match("root.txt", false))
	assert.False(t, p.match("sub/root.txt", false))
}

func TestPatternUnanchoredMatchesAnyDepth(t *testing.T) {
	p := mustCompile(t, "*.tmp")

	assert.True(t, p.match("file.tmp", false))
	assert.True(t, p.match("a/b/c/file.tmp", false))
}

func TestPatternDirOnly(t *testing.T) {
	p := mustCompile(t, "build/")

	assert.True(t, p.match("build", true))
	assert.True(t, p.match("sub/build", true))
	assert.False(t, p.match("build", false))
}

func TestPatternQuestion(t *testing.T) {
	p := mustCompile(t, "file?.txt")

	assert.True(t, p.match("file1.txt", false))
	assert.True(t, p.match("fileA.txt", false))
	assert.False(t, p.match("file12.txt", false))
	assert.False(t, p.match("file/.txt", false))
}

func TestPatternCharClass(t *testing.T) {
	p := mustCompile(t, "log[0-9].txt")
	assert.True(t, p.match("log3.txt", false))
	assert.False(t, p.match("logx.txt", false))

	neg := mustCompile(t, "log[!0-9].txt")
	assert.True(t, neg.match("logx.txt", false))
	assert.False(t, neg.match("log3.txt", false))
}

func TestPatternContainingSlashIsAnchored(t *testing.T) {
	p := mustCompile(t, "sub/dir/*.txt")

	assert.True(t, p.match("sub/dir/file.txt", false))
	assert.False(t, p.match("other/sub/dir/file.txt", false))
}

func TestPatternFoldCase(t *testing.T) {
	p, err := compilePattern("README.*", true)
	require.NoError(t, err)
	assert.True(t, p.match("docs/readme.md", false))
}

func TestPatternNegatedClassStaysInComponent(t *testing.T) {
	p := mustCompile(t, "a[!x]b")

	assert.True(t, p.match("a-b", false))
	assert.False(t, p.match("axb", false))
	assert.False(t, p.match("a/b", false))
}

func TestPatternBracketEdgeCases(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"[]x].txt", "].txt", true},
		{"[]x].txt", "x.txt", true},
		{"[!]]z", "az", true},
		{"[!]]z", "]z", false},
		{"odd[name", "odd[name", true},
		{"odd[name", "oddname", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, mustCompile(t, tt.pattern).match(tt.path, false))
		})
	}
}

func TestPatternEscapesRegexpSyntax(t *testing.T) {
	p := mustCompile(t, "a+b(1).{x}$")

	assert.True(t, p.match("a+b(1).{x}$", false))
	assert.False(t, p.match("aab(1)x{x}$", false))
}

func TestPatternRejectsEmpty(t *testing.T) {
	for _, s := range []string{"", "  ", "/"} {
		_, err := compilePattern(s, false)
		assert.ErrorIs(t, err, errEmptyPattern, "%q", s)
	}
}
