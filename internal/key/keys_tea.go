package key

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// FromTea converts a Bubble Tea key message into a Key. The boolean is false
// for messages that carry no usable key (e.g. bracketed paste).
func FromTea(msg tea.KeyMsg) (Key, bool) {
	if msg.Paste {
		return Key{}, false
	}
	switch msg.Type {
	case tea.KeySpace:
		return Key{Code: "space"}, true
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return Key{}, false
		}
		k := Key{Code: string(msg.Runes[0])}
		if msg.Alt {
			k.Mod |= ModAlt
		}
		return k, true
	}

	var k Key
	s := msg.String()
	for {
		switch {
		case strings.HasPrefix(s, "ctrl+"):
			k.Mod |= ModCtrl
			s = strings.TrimPrefix(s, "ctrl+")
			continue
		case strings.HasPrefix(s, "alt+"):
			k.Mod |= ModAlt
			s = strings.TrimPrefix(s, "alt+")
			continue
		case strings.HasPrefix(s, "shift+"):
			k.Mod |= ModShift
			s = strings.TrimPrefix(s, "shift+")
			continue
		}
		break
	}
	switch s {
	case "", "unknown":
		return Key{}, false
	case " ":
		s = "space"
	case "@":
		// ctrl+space arrives as ctrl+@
		if k.Mod&ModCtrl != 0 {
			s = "space"
		}
	}
	k.Code = s
	return k, true
}
