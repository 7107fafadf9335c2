package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var errEmptyPattern = errors.New("empty pattern")

// globPattern is one rsync-style rule pattern compiled to a regexp over
// slash-separated paths relative to the source root.
type globPattern struct {
	re      *regexp.Regexp
	text    string
	rooted  bool // only matches from the source root
	dirOnly bool // trailing slash: directories only
}

// compilePattern compiles text. A leading slash, or any slash inside the
// pattern, roots it at the source; otherwise it matches the base name or
// any trailing run of path components.
func compilePattern(text string, foldCase bool) (*globPattern, error) {
	if strings.TrimSpace(text) == "" || text == "/" {
		return nil, errEmptyPattern
	}

	g := &globPattern{text: text}
	body, dirOnly := strings.CutSuffix(text, "/")
	body, rooted := strings.CutPrefix(body, "/")
	g.dirOnly = dirOnly
	g.rooted = rooted || strings.Contains(body, "/")

	var expr strings.Builder
	if foldCase {
		expr.WriteString("(?i)")
	}
	if g.rooted {
		expr.WriteString("^")
	} else {
		expr.WriteString("(?:^|/)")
	}
	writeGlob(&expr, body)
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", text, err)
	}
	g.re = re
	return g, nil
}

func (g *globPattern) match(relPath string, isDir bool) bool {
	if g.dirOnly && !isDir {
		return false
	}
	return g.re.MatchString(strings.TrimSuffix(relPath, "/"))
}

// writeGlob appends the regexp form of glob to b. "**/" stands for zero or
// more leading directories and a bare "**" for anything; "*", "?" and
// bracket classes never match a slash.
func writeGlob(b *strings.Builder, glob string) {
	for rest := glob; rest != ""; {
		switch {
		case strings.HasPrefix(rest, "**/"):
			b.WriteString("(?:.*/)?")
			rest = rest[3:]
		case strings.HasPrefix(rest, "**"):
			b.WriteString(".*")
			rest = rest[2:]
		case rest[0] == '*':
			b.WriteString("[^/]*")
			rest = rest[1:]
		case rest[0] == '?':
			b.WriteString("[^/]")
			rest = rest[1:]
		case rest[0] == '[':
			class, n := bracketClass(rest)
			if n == 0 {
				// Unterminated: the bracket is a literal.
				b.WriteString(`\[`)
				rest = rest[1:]
				continue
			}
			b.WriteString(class)
			rest = rest[n:]
		default:
			_, size := utf8.DecodeRuneInString(rest)
			b.WriteString(regexp.QuoteMeta(rest[:size]))
			rest = rest[size:]
		}
	}
}

// bracketClass translates the class that opens s, returning the regexp
// class and the bytes consumed, or 0 when the class is never closed. "!"
// negates, and a "]" first in the class is a member.
func bracketClass(s string) (string, int) {
	i := 1
	negate := i < len(s) && s[i] == '!'
	if negate {
		i++
	}
	start := i
	if i < len(s) && s[i] == ']' {
		i++
	}
	end := strings.IndexByte(s[i:], ']')
	if end < 0 {
		return "", 0
	}
	end += i

	members := strings.Replace(s[start:end], "]", `\]`, 1)
	if negate {
		return "[^/" + members + "]", end + 1
	}
	return "[" + members + "]", end + 1
}
