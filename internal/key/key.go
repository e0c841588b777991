package key

import (
	"fmt"
	"strings"
)

// Modifier is a bit set of the modifier keys held with a key press.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModCtrl  Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModShift Modifier = 1 << 2
)

// Key is a single abstract key press. Code is either a single printable
// character ("a", "G", "?") or a named key ("enter", "space", "f1").
type Key struct {
	Mod  Modifier
	Code string
}

// Sequence is an ordered list of key presses not yet resolved to a command.
type Sequence []Key

var namedKeys = map[string]struct{}{
	"enter": {}, "esc": {}, "tab": {}, "backtab": {}, "backspace": {},
	"delete": {}, "insert": {}, "space": {}, "up": {}, "down": {},
	"left": {}, "right": {}, "home": {}, "end": {}, "pgup": {}, "pgdown": {},
	"f1": {}, "f2": {}, "f3": {}, "f4": {}, "f5": {}, "f6": {},
	"f7": {}, "f8": {}, "f9": {}, "f10": {}, "f11": {}, "f12": {},
}

// New returns a key without modifiers.
func New(code string) Key {
	return Key{Code: code}
}

// Ctrl returns code pressed with the control modifier.
func Ctrl(code string) Key {
	return Key{Mod: ModCtrl, Code: code}
}

// Alt returns code pressed with the alt modifier.
func Alt(code string) Key {
	return Key{Mod: ModAlt, Code: code}
}

// IsPrintable reports whether the key inserts a character when typed into a
// text field.
func (k Key) IsPrintable() bool {
	if k.Mod&(ModCtrl|ModAlt) != 0 {
		return false
	}
	if k.Code == "space" {
		return true
	}
	return len([]rune(k.Code)) == 1
}

// Char returns the text a printable key inserts.
func (k Key) Char() string {
	if k.Code == "space" {
		return " "
	}
	return k.Code
}

// String renders the key in keymap notation, e.g. "C-c", "M-enter", "g".
func (k Key) String() string {
	var b strings.Builder
	if k.Mod&ModCtrl != 0 {
		b.WriteString("C-")
	}
	if k.Mod&ModAlt != 0 {
		b.WriteString("M-")
	}
	if k.Mod&ModShift != 0 {
		b.WriteString("S-")
	}
	b.WriteString(k.Code)
	return b.String()
}

// Parse reads a single key in keymap notation.
func Parse(s string) (Key, error) {
	var k Key
	rest := s
	for len(rest) > 2 && rest[1] == '-' {
		switch rest[0] {
		case 'C':
			k.Mod |= ModCtrl
		case 'M':
			k.Mod |= ModAlt
		case 'S':
			k.Mod |= ModShift
		default:
			return Key{}, fmt.Errorf("unknown modifier %q in key %q", rest[:1], s)
		}
		rest = rest[2:]
	}
	if rest == "" {
		return Key{}, fmt.Errorf("empty key in %q", s)
	}
	code := strings.ToLower(rest)
	if _, ok := namedKeys[code]; ok {
		k.Code = code
		return k, nil
	}
	if len([]rune(rest)) != 1 {
		return Key{}, fmt.Errorf("unknown key %q", s)
	}
	k.Code = rest
	return k, nil
}

// ParseSequence reads a space separated list of keys, e.g. "g g" or "C-x C-c".
func ParseSequence(s string) (Sequence, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty key sequence")
	}
	seq := make(Sequence, 0, len(fields))
	for _, f := range fields {
		k, err := Parse(f)
		if err != nil {
			return nil, err
		}
		seq = append(seq, k)
	}
	return seq, nil
}

// MustParseSequence is ParseSequence for static tables.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic(err)
	}
	return seq
}

// Append returns a new sequence with k added, leaving s untouched.
func (s Sequence) Append(k Key) Sequence {
	out := make(Sequence, len(s), len(s)+1)
	copy(out, s)
	return append(out, k)
}

// HasPrefix reports whether prefix is a (non-strict) prefix of s.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i := range prefix {
		if s[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Equal reports whether both sequences hold the same keys in order.
func (s Sequence) Equal(other Sequence) bool {
	return len(s) == len(other) && s.HasPrefix(other)
}

func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}
