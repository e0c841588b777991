package keymap

import (
	"github.com/atomicstack/playctl/internal/command"
	"github.com/atomicstack/playctl/internal/key"
)

var defaultTable = []struct {
	seq string
	cmd command.Command
}{
	{"n", command.NextTrack},
	{"p", command.PreviousTrack},
	{"space", command.ResumePause},
	{".", command.PlayRandom},
	{"C-r", command.Repeat},
	{"C-s", command.Shuffle},
	{"+", command.VolumeUp},
	{"-", command.VolumeDown},
	{"q", command.Quit},
	{"C-c", command.Quit},
	{"?", command.OpenCommandHelp},
	{"C-h", command.OpenCommandHelp},
	{"r", command.RefreshPlayback},
	{"g a", command.ShowActionsOnCurrentTrack},
	{"a", command.ShowActionsOnSelectedItem},
	{"g space", command.BrowsePlayingContext},
	{"g enter", command.BrowseSelectedItem},
	{"u p", command.BrowseUserPlaylists},
	{"u a", command.BrowseUserFollowedArtists},
	{"u A", command.BrowseUserSavedAlbums},
	{"s", command.SearchPage},
	{"/", command.SearchContext},
	{"backspace", command.PreviousPage},
	{"D", command.SwitchDevice},
	{"T", command.SwitchTheme},
	{"j", command.SelectNext},
	{"down", command.SelectNext},
	{"k", command.SelectPrevious},
	{"up", command.SelectPrevious},
	{"g g", command.SelectFirst},
	{"home", command.SelectFirst},
	{"G", command.SelectLast},
	{"end", command.SelectLast},
	{"enter", command.ChooseSelected},
	{"esc", command.ClosePopup},
}

// DefaultBindings returns the built-in bindings.
func DefaultBindings() []Binding {
	out := make([]Binding, len(defaultTable))
	for i, e := range defaultTable {
		out[i] = Binding{Sequence: key.MustParseSequence(e.seq), Command: e.cmd}
	}
	return out
}

// Default returns a keymap holding the built-in bindings.
func Default() *Keymap {
	return &Keymap{bindings: DefaultBindings()}
}
