// Package filter holds the rsync-style include/exclude rules and the size
// and age bounds the CLI layers on top of the wildcard pattern.
package filter

import (
	"fmt"
	"time"
)

// Candidate is what a rule is evaluated against.
type Candidate struct {
	Modified time.Time
	RelPath  string // slash-separated, relative to the source root, no trailing slash
	Size     int64
	IsDir    bool
}

// Rule is a single include or exclude rule.
type Rule struct {
	Pattern *globPattern
	Include bool
}

func (r Rule) String() string {
	if r.Include {
		return "+ " + r.Pattern.text
	}
	return "- " + r.Pattern.text
}

// Chain is an ordered rule list plus size and modification-time bounds.
// The zero value allows everything.
type Chain struct {
	newerThan time.Time
	olderThan time.Time
	rules     []Rule
	minSize   int64
	maxSize   int64
	foldCase  bool
}

// NewChain creates an empty filter chain.
func NewChain() *Chain {
	return &Chain{}
}

// FoldCase makes rules added afterwards match case-insensitively, the way
// DOS-family filesystems compare names.
func (c *Chain) FoldCase(on bool) {
	c.foldCase = on
}

// AddExclude adds an exclude rule for the given pattern.
func (c *Chain) AddExclude(pattern string) error {
	return c.add(pattern, false)
}

// AddInclude adds an include rule for the given pattern.
func (c *Chain) AddInclude(pattern string) error {
	return c.add(pattern, true)
}

func (c *Chain) add(pattern string, include bool) error {
	cp, err := compilePattern(pattern, c.foldCase)
	if err != nil {
		return fmt.Errorf("filter pattern %q: %w", pattern, err)
	}
	c.rules = append(c.rules, Rule{Pattern: cp, Include: include})
	return nil
}

// Rules returns the rules in evaluation order.
func (c *Chain) Rules() []Rule {
	return c.rules
}

func (c *Chain) SetMinSize(n int64) { c.minSize = n }

func (c *Chain) SetMaxSize(n int64) { c.maxSize = n }

// SetNewerThan drops files last modified before t.
func (c *Chain) SetNewerThan(t time.Time) { c.newerThan = t }

// SetOlderThan drops files last modified after t.
func (c *Chain) SetOlderThan(t time.Time) { c.olderThan = t }

// Empty reports whether the chain has no rules and no bounds.
func (c *Chain) Empty() bool {
	return len(c.rules) == 0 && c.minSize == 0 && c.maxSize == 0 &&
		c.newerThan.IsZero() && c.olderThan.IsZero()
}

// Allow reports whether cand survives the chain.
func (c *Chain) Allow(cand Candidate) bool {
	ok, _ := c.Explain(cand)
	return ok
}

// Explain is Allow plus the reason for the decision, for debug logging.
// Bounds apply to files only; rules are walked in order and the first
// match wins; with no match the candidate is allowed.
func (c *Chain) Explain(cand Candidate) (bool, string) {
	if !cand.IsDir {
		switch {
		case c.minSize > 0 && cand.Size < c.minSize:
			return false, fmt.Sprintf("smaller than %d bytes", c.minSize)
		case c.maxSize > 0 && cand.Size > c.maxSize:
			return false, fmt.Sprintf("larger than %d bytes", c.maxSize)
		case !c.newerThan.IsZero() && cand.Modified.Before(c.newerThan):
			return false, "modified before " + c.newerThan.Format(time.RFC3339)
		case !c.olderThan.IsZero() && cand.Modified.After(c.olderThan):
			return false, "modified after " + c.olderThan.Format(time.RFC3339)
		}
	}

	for _, rule := range c.rules {
		if rule.Pattern.match(cand.RelPath, cand.IsDir) {
			return rule.Include, "rule " + rule.String()
		}
	}
	return true, "no rule matched"
}
