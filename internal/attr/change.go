package attr

import (
	"fmt"
	"strings"
)

// Change is an explicit attribute change request. A nil field leaves that
// attribute alone; the zero value changes nothing.
type Change struct {
	Readable *bool
	Writable *bool
	Hidden   *bool
	System   *bool
	Archive  *bool
}

// Bool returns a pointer to v, for building a Change.
func Bool(v bool) *bool { return &v }

// IsZero reports whether c requests no change.
func (c Change) IsZero() bool {
	return c.Readable == nil && c.Writable == nil &&
		c.Hidden == nil && c.System == nil && c.Archive == nil
}

// ParseChange parses an attrib-style spec such as "+r-w+h". Letters are
// r (readable), w (writable), h (hidden), s (system) and a (archive); each
// must be preceded by '+' or '-'.
func ParseChange(spec string) (Change, error) {
	var c Change
	var sign byte
	for i := 0; i < len(spec); i++ {
		ch := spec[i]
		switch ch {
		case '+', '-':
			sign = ch
			continue
		case ' ', ',':
			continue
		}
		if sign == 0 {
			return Change{}, fmt.Errorf("attribute change %q: %q needs a leading + or -", spec, ch)
		}
		v := Bool(sign == '+')
		switch ch {
		case 'r', 'R':
			c.Readable = v
		case 'w', 'W':
			c.Writable = v
		case 'h', 'H':
			c.Hidden = v
		case 's', 'S':
			c.System = v
		case 'a', 'A':
			c.Archive = v
		default:
			return Change{}, fmt.Errorf("attribute change %q: unknown attribute %q", spec, ch)
		}
	}
	return c, nil
}

// String renders c in the form ParseChange accepts.
func (c Change) String() string {
	var b strings.Builder
	for _, f := range []struct {
		v *bool
		c byte
	}{
		{c.Readable, 'r'},
		{c.Writable, 'w'},
		{c.Hidden, 'h'},
		{c.System, 's'},
		{c.Archive, 'a'},
	} {
		if f.v == nil {
			continue
		}
		if *f.v {
			b.WriteByte('+')
		} else {
			b.WriteByte('-')
		}
		b.WriteByte(f.c)
	}
	return b.String()
}
