package state

import (
	"github.com/atomicstack/playctl/internal/keymap"
	"github.com/atomicstack/playctl/internal/theme"
)

// Shared is the process-wide application state. Player, UI and Data are
// locked independently; Keymap and Themes are read-only after construction.
type Shared struct {
	Player *PlayerState
	UI     *UIState
	Data   *DataState

	Keymap *keymap.Keymap
	Themes []theme.Theme
}

// New builds the shared state with the current-playing page as the base
// page of the history.
func New(km *keymap.Keymap, themes []theme.Theme, active theme.Theme) *Shared {
	if km == nil {
		km = keymap.Default()
	}
	if len(themes) == 0 {
		themes = theme.Builtins()
	}
	return &Shared{
		Player: &PlayerState{},
		UI: &UIState{
			IsRunning: true,
			Theme:     active,
			History:   []Page{&CurrentPlayingPage{}},
		},
		Data:   newDataState(),
		Keymap: km,
		Themes: themes,
	}
}
