// Package wildcard implements DOS 8.3-style filename matching over a fixed
// 20-slot shape: a 16-rune body, a dot at slot 16 and a 3-rune extension.
// Names longer than the slots are truncated before comparison.
package wildcard

import (
	"strings"
	"unicode"
)

const (
	BodyLen = 16
	ExtLen  = 3
	Width   = BodyLen + 1 + ExtLen

	// DefaultPattern matches every name that is not a dot entry.
	DefaultPattern = "*.*"

	wild  = '?'
	blank = ' '
)

// Slots is the fixed-width shape of a name or pattern.
type Slots [Width]rune

// String renders the slots with blanks preserved.
func (s Slots) String() string {
	return string(s[:])
}

// Body returns the body slots with trailing blanks removed.
func (s Slots) Body() string {
	return strings.TrimRight(string(s[:BodyLen]), string(blank))
}

// Ext returns the extension slots with trailing blanks removed.
func (s Slots) Ext() string {
	return strings.TrimRight(string(s[BodyLen+1:]), string(blank))
}

// MatchFlag classifies an entry against a pattern.
type MatchFlag int

const (
	Included MatchFlag = iota
	ExcludedByPattern
	ExcludedDotEntry
)

var flagNames = [...]string{
	Included:          "Included",
	ExcludedByPattern: "ExcludedByPattern",
	ExcludedDotEntry:  "ExcludedDotEntry",
}

func (f MatchFlag) String() string {
	if f >= 0 && int(f) < len(flagNames) {
		return flagNames[f]
	}
	return "Unknown"
}

// Pattern is a compiled wildcard. The zero value is not useful; use Compile.
type Pattern struct {
	source string
	slots  Slots
}

// Compile builds a Pattern. An empty pattern compiles as "*.*". A "*" fills
// the rest of its segment with single-position wildcards, so "*" alone
// matches only names without an extension.
func Compile(pattern string) Pattern {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return Pattern{source: pattern, slots: shape(pattern, true)}
}

func (p Pattern) String() string { return p.source }

// Slots returns the compiled shape.
func (p Pattern) Slots() Slots { return p.slots }

// Matches compares a shaped name against the pattern, ignoring case.
func (p Pattern) Matches(name Slots) bool {
	for i, want := range p.slots {
		if want == wild {
			continue
		}
		if unicode.ToUpper(name[i]) != want {
			return false
		}
	}
	return true
}

// Shape lays name out in slots, keeping its original case.
func Shape(name string) Slots {
	return shape(name, false)
}

// IsDotEntry reports whether name is "." or "..".
func IsDotEntry(name string) bool {
	return name == "." || name == ".."
}

// Match classifies name against p.
func Match(name string, p Pattern) MatchFlag {
	if IsDotEntry(name) {
		return ExcludedDotEntry
	}
	if p.Matches(Shape(name)) {
		return Included
	}
	return ExcludedByPattern
}

// shape splits s at its first dot (body) and last dot (extension).
func shape(s string, pattern bool) Slots {
	var out Slots
	for i := range out {
		out[i] = blank
	}
	out[BodyLen] = '.'

	body, ext := s, ""
	if first := strings.IndexByte(s, '.'); first >= 0 {
		body = s[:first]
		ext = s[strings.LastIndexByte(s, '.')+1:]
	}
	fill(out[:BodyLen], body, pattern)
	fill(out[BodyLen+1:], ext, pattern)
	return out
}

func fill(dst []rune, seg string, pattern bool) {
	i := 0
	for _, r := range seg {
		if i >= len(dst) {
			return
		}
		if pattern {
			switch r {
			case '*':
				for ; i < len(dst); i++ {
					dst[i] = wild
				}
				return
			case '?':
				dst[i] = wild
			default:
				dst[i] = unicode.ToUpper(r)
			}
		} else {
			dst[i] = r
		}
		i++
	}
}
