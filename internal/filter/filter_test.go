package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(rel string, size int64) Candidate {
	return Candidate{RelPath: rel, Size: size}
}

func dir(rel string) Candidate {
	return Candidate{RelPath: rel, IsDir: true}
}

func TestEmptyChainAllowsAll(t *testing.T) {
	c := NewChain()
	assert.True(t, c.Allow(file("any/file.txt", 1024)))
	assert.True(t, c.Allow(dir("any/dir")))
	assert.True(t, c.Empty())

	var zero Chain
	assert.True(t, zero.Allow(file("x", 0)))
}

func TestExcludePattern(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.AddExclude("*.log"))

	assert.False(t, c.Allow(file("app.log", 100)))
	assert.False(t, c.Allow(file("sub/debug.log", 100)))
	assert.True(t, c.Allow(file("app.txt", 100)))
	assert.False(t, c.Empty())
}

func TestFirstMatchingRuleWins(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.AddInclude("important.log"))
	require.NoError(t, c.AddExclude("*.log"))

	assert.True(t, c.Allow(file("important.log", 100)))
	assert.False(t, c.Allow(file("debug.log", 100)))

	reversed := NewChain()
	require.NoError(t, reversed.AddExclude("*.log"))
	require.NoError(t, reversed.AddInclude("important.log"))
	assert.False(t, reversed.Allow(file("important.log", 100)))
}

func TestDirOnlyRule(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.AddExclude("build/"))

	assert.False(t, c.Allow(dir("build")))
	assert.False(t, c.Allow(dir("build/")), "trailing slash on the candidate is ignored")
	assert.True(t, c.Allow(file("build", 100)))
}

func TestAnchoredRule(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.AddExclude("/root.txt"))

	assert.False(t, c.Allow(file("root.txt", 100)))
	assert.True(t, c.Allow(file("sub/root.txt", 100)))
}

func TestDoubleStarWithCatchAll(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.AddInclude("**/*.go"))
	require.NoError(t, c.AddExclude("*"))

	assert.True(t, c.Allow(file("main.go", 100)))
	assert.True(t, c.Allow(file("internal/engine/engine.go", 100)))
	assert.False(t, c.Allow(file("readme.md", 100)))
}

func TestFoldCase(t *testing.T) {
	c := NewChain()
	c.FoldCase(true)
	require.NoError(t, c.AddExclude("*.TMP"))

	assert.False(t, c.Allow(file("scratch.tmp", 1)))
	assert.False(t, c.Allow(file("SCRATCH.Tmp", 1)))

	strict := NewChain()
	require.NoError(t, strict.AddExclude("*.TMP"))
	assert.True(t, strict.Allow(file("scratch.tmp", 1)))
}

func TestSizeBounds(t *testing.T) {
	c := NewChain()
	c.SetMinSize(100)
	c.SetMaxSize(10000)

	assert.False(t, c.Allow(file("tiny.txt", 50)))
	assert.True(t, c.Allow(file("medium.txt", 500)))
	assert.False(t, c.Allow(file("huge.bin", 50000)))
	assert.True(t, c.Allow(dir("somedir")), "bounds do not apply to directories")
}

func TestTimeBounds(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewChain()
	c.SetNewerThan(base.Add(-24 * time.Hour))
	c.SetOlderThan(base)
	assert.False(t, c.Empty())

	at := func(m time.Time) Candidate {
		return Candidate{RelPath: "f", Modified: m}
	}
	assert.False(t, c.Allow(at(base.Add(-48*time.Hour))))
	assert.True(t, c.Allow(at(base.Add(-time.Hour))))
	assert.False(t, c.Allow(at(base.Add(time.Hour))))
}

func TestExplain(t *testing.T) {
	c := NewChain()
	c.SetMinSize(10)
	require.NoError(t, c.AddExclude("*.o"))

	ok, why := c.Explain(file("a.o", 100))
	assert.False(t, ok)
	assert.Equal(t, "rule - *.o", why)

	ok, why = c.Explain(file("a.c", 1))
	assert.False(t, ok)
	assert.Contains(t, why, "smaller than 10")

	ok, why = c.Explain(file("a.c", 100))
	assert.True(t, ok)
	assert.Equal(t, "no rule matched", why)
}

func TestAddRejectsEmptyPattern(t *testing.T) {
	c := NewChain()
	assert.Error(t, c.AddExclude(""))
	assert.Error(t, c.AddInclude("/"))
	assert.Empty(t, c.Rules())
}
