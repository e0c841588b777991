package theme

import "github.com/charmbracelet/lipgloss"

// Palette holds the colours a theme is built from. Values are anything
// lipgloss.Color accepts: ANSI numbers ("33") or hex ("#1db954").
type Palette struct {
	Foreground string `toml:"foreground"`
	Muted      string `toml:"muted"`
	Accent     string `toml:"accent"`
	Selection  string `toml:"selection"`
	Error      string `toml:"error"`
	Playback   string `toml:"playback"`
}

// Theme is a named palette as listed in theme.toml.
type Theme struct {
	Name    string  `toml:"name"`
	Palette Palette `toml:"palette"`
}

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header        *lipgloss.Style
	Item          *lipgloss.Style
	SelectedItem  *lipgloss.Style
	Playback      *lipgloss.Style
	PlaybackMeta  *lipgloss.Style
	Popup         *lipgloss.Style
	PopupTitle    *lipgloss.Style
	Filter        *lipgloss.Style
	KeySequence   *lipgloss.Style
	Error         *lipgloss.Style
	Footer        *lipgloss.Style
	ProgressColor string
}

var builtins = []Theme{
	{
		Name: "default",
		Palette: Palette{
			Foreground: "249",
			Muted:      "241",
			Accent:     "33",
			Selection:  "238",
			Error:      "196",
			Playback:   "34",
		},
	},
	{
		Name: "dracula",
		Palette: Palette{
			Foreground: "#f8f8f2",
			Muted:      "#6272a4",
			Accent:     "#bd93f9",
			Selection:  "#44475a",
			Error:      "#ff5555",
			Playback:   "#50fa7b",
		},
	},
	{
		Name: "gruvbox",
		Palette: Palette{
			Foreground: "#ebdbb2",
			Muted:      "#928374",
			Accent:     "#fabd2f",
			Selection:  "#504945",
			Error:      "#fb4934",
			Playback:   "#b8bb26",
		},
	},
}

// Builtins returns the themes shipped with the binary.
func Builtins() []Theme {
	dup := make([]Theme, len(builtins))
	copy(dup, builtins)
	return dup
}

// Default returns the first built-in theme.
func Default() Theme {
	return builtins[0]
}

// Find returns the theme called name.
func Find(themes []Theme, name string) (Theme, bool) {
	for _, t := range themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// MoveToFront returns a copy of themes with the theme called name first.
// The order of the remaining themes is kept.
func MoveToFront(themes []Theme, name string) []Theme {
	out := make([]Theme, 0, len(themes))
	for _, t := range themes {
		if t.Name == name {
			out = append(out, t)
		}
	}
	for _, t := range themes {
		if t.Name != name {
			out = append(out, t)
		}
	}
	return out
}

// Styles builds the style set for the theme. Empty palette entries fall
// back to the default theme's colours.
func (t Theme) Styles() *Styles {
	p := t.Palette.withFallback(builtins[0].Palette)
	fg := lipgloss.Color(p.Foreground)
	return &Styles{
		Header: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Bold(true),
		),
		Item: ptr(
			lipgloss.NewStyle().Foreground(fg),
		),
		SelectedItem: ptr(
			lipgloss.NewStyle().Foreground(fg).Background(lipgloss.Color(p.Selection)).Bold(true),
		),
		Playback: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(p.Playback)).Bold(true),
		),
		PlaybackMeta: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		),
		Popup: ptr(
			lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(p.Accent)).Padding(0, 1),
		),
		PopupTitle: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Bold(true),
		),
		Filter: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),
		),
		KeySequence: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)).Italic(true),
		),
		Error: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)).Bold(true),
		),
		Footer: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		),
		ProgressColor: p.Playback,
	}
}

func (p Palette) withFallback(base Palette) Palette {
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	return Palette{
		Foreground: pick(p.Foreground, base.Foreground),
		Muted:      pick(p.Muted, base.Muted),
		Accent:     pick(p.Accent, base.Accent),
		Selection:  pick(p.Selection, base.Selection),
		Error:      pick(p.Error, base.Error),
		Playback:   pick(p.Playback, base.Playback),
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
