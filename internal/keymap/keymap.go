package keymap

import (
	"fmt"

	"github.com/atomicstack/playctl/internal/command"
	"github.com/atomicstack/playctl/internal/key"
)

// Binding maps a complete key sequence to a command.
type Binding struct {
	Sequence key.Sequence
	Command  command.Command
}

// Keymap is an immutable, prefix-unique table of bindings: no complete
// sequence is a prefix of (or equal to) another.
type Keymap struct {
	bindings []Binding
}

// New validates bindings and builds a keymap.
func New(bindings []Binding) (*Keymap, error) {
	if err := Validate(bindings); err != nil {
		return nil, err
	}
	dup := make([]Binding, len(bindings))
	copy(dup, bindings)
	return &Keymap{bindings: dup}, nil
}

// Validate reports the first pair of overlapping bindings.
func Validate(bindings []Binding) error {
	for i, b := range bindings {
		if len(b.Sequence) == 0 {
			return fmt.Errorf("binding for %s has an empty key sequence", b.Command)
		}
		if b.Command == command.None {
			return fmt.Errorf("binding %q has no command", b.Sequence)
		}
		for _, other := range bindings[i+1:] {
			if b.Sequence.HasPrefix(other.Sequence) || other.Sequence.HasPrefix(b.Sequence) {
				return fmt.Errorf("key sequence %q (%s) conflicts with %q (%s)",
					b.Sequence, b.Command, other.Sequence, other.Command)
			}
		}
	}
	return nil
}

// Bindings returns a copy of the table.
func (k *Keymap) Bindings() []Binding {
	dup := make([]Binding, len(k.bindings))
	copy(dup, k.bindings)
	return dup
}

// MatchedPrefix returns every binding whose sequence starts with seq.
func (k *Keymap) MatchedPrefix(seq key.Sequence) []Binding {
	var out []Binding
	for _, b := range k.bindings {
		if b.Sequence.HasPrefix(seq) {
			out = append(out, b)
		}
	}
	return out
}

// IsPrefix reports whether at least one binding starts with seq.
func (k *Keymap) IsPrefix(seq key.Sequence) bool {
	for _, b := range k.bindings {
		if b.Sequence.HasPrefix(seq) {
			return true
		}
	}
	return false
}

// Command resolves a complete key sequence.
func (k *Keymap) Command(seq key.Sequence) (command.Command, bool) {
	for _, b := range k.bindings {
		if b.Sequence.Equal(seq) {
			return b.Command, true
		}
	}
	return command.None, false
}

// SequencesFor lists the sequences bound to c, in table order.
func (k *Keymap) SequencesFor(c command.Command) []key.Sequence {
	var out []key.Sequence
	for _, b := range k.bindings {
		if b.Command == c {
			out = append(out, b.Sequence)
		}
	}
	return out
}

// Merge layers user bindings over base. A user binding replaces every base
// binding with the same sequence or with an overlapping prefix, so user
// choices win conflicts instead of failing validation.
func Merge(base, user []Binding) []Binding {
	out := make([]Binding, 0, len(base)+len(user))
	for _, b := range base {
		overridden := false
		for _, u := range user {
			if b.Sequence.HasPrefix(u.Sequence) || u.Sequence.HasPrefix(b.Sequence) {
				overridden = true
				break
			}
		}
		if !overridden {
			out = append(out, b)
		}
	}
	return append(out, user...)
}
