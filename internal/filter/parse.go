package filter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// AddRule adds one rule in filter-file syntax:
//
//	+ pattern    include
//	- pattern    exclude
//	pattern      exclude
//
// Blank lines and "#" comments are accepted and ignored.
func (c *Chain) AddRule(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	switch {
	case strings.HasPrefix(line, "+ "):
		return c.AddInclude(strings.TrimSpace(line[2:]))
	case strings.HasPrefix(line, "- "):
		return c.AddExclude(strings.TrimSpace(line[2:]))
	default:
		return c.AddExclude(line)
	}
}

// Load reads rules from r, one per line. name is used in error messages.
func (c *Chain) Load(r io.Reader, name string) error {
	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		if err := c.AddRule(sc.Text()); err != nil {
			return fmt.Errorf("%s line %d: %w", name, lineNum, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

// LoadFile reads rules from a local file.
func (c *Chain) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open filter file: %w", err)
	}
	defer f.Close()
	return c.Load(f, path)
}
