package command

import "fmt"

// Command is a user-invokable action. Commands are produced by resolving a
// key sequence against the keymap or supplied programmatically.
type Command int

const (
	None Command = iota
	Quit
	NextTrack
	PreviousTrack
	ResumePause
	PlayRandom
	Repeat
	Shuffle
	VolumeUp
	VolumeDown
	OpenCommandHelp
	RefreshPlayback
	ShowActionsOnCurrentTrack
	ShowActionsOnSelectedItem
	BrowsePlayingContext
	BrowseSelectedItem
	BrowseUserPlaylists
	BrowseUserFollowedArtists
	BrowseUserSavedAlbums
	SearchPage
	SearchContext
	PreviousPage
	SwitchDevice
	SwitchTheme
	SelectNext
	SelectPrevious
	SelectFirst
	SelectLast
	ChooseSelected
	ClosePopup
)

var names = [...]string{
	None:                      "None",
	Quit:                      "Quit",
	NextTrack:                 "NextTrack",
	PreviousTrack:             "PreviousTrack",
	ResumePause:               "ResumePause",
	PlayRandom:                "PlayRandom",
	Repeat:                    "Repeat",
	Shuffle:                   "Shuffle",
	VolumeUp:                  "VolumeUp",
	VolumeDown:                "VolumeDown",
	OpenCommandHelp:           "OpenCommandHelp",
	RefreshPlayback:           "RefreshPlayback",
	ShowActionsOnCurrentTrack: "ShowActionsOnCurrentTrack",
	ShowActionsOnSelectedItem: "ShowActionsOnSelectedItem",
	BrowsePlayingContext:      "BrowsePlayingContext",
	BrowseSelectedItem:        "BrowseSelectedItem",
	BrowseUserPlaylists:       "BrowseUserPlaylists",
	BrowseUserFollowedArtists: "BrowseUserFollowedArtists",
	BrowseUserSavedAlbums:     "BrowseUserSavedAlbums",
	SearchPage:                "SearchPage",
	SearchContext:             "SearchContext",
	PreviousPage:              "PreviousPage",
	SwitchDevice:              "SwitchDevice",
	SwitchTheme:               "SwitchTheme",
	SelectNext:                "SelectNext",
	SelectPrevious:            "SelectPrevious",
	SelectFirst:               "SelectFirst",
	SelectLast:                "SelectLast",
	ChooseSelected:            "ChooseSelected",
	ClosePopup:                "ClosePopup",
}

var descriptions = map[Command]string{
	Quit:                      "quit the application",
	NextTrack:                 "next track",
	PreviousTrack:             "previous track",
	ResumePause:               "resume/pause based on the current playback",
	PlayRandom:                "play a random track in the current context",
	Repeat:                    "cycle the repeat mode",
	Shuffle:                   "toggle the shuffle mode",
	VolumeUp:                  "increase playback volume by 5%",
	VolumeDown:                "decrease playback volume by 5%",
	OpenCommandHelp:           "open a command help popup",
	RefreshPlayback:           "manually refresh the current playback",
	ShowActionsOnCurrentTrack: "show actions on the current track",
	ShowActionsOnSelectedItem: "show actions on the selected item",
	BrowsePlayingContext:      "browse the current playing context",
	BrowseSelectedItem:        "browse the selected item",
	BrowseUserPlaylists:       "browse the user's playlists",
	BrowseUserFollowedArtists: "browse the user's followed artists",
	BrowseUserSavedAlbums:     "browse the user's saved albums",
	SearchPage:                "go to the search page",
	SearchContext:             "filter the tracks in the current context",
	PreviousPage:              "go to the previous page",
	SwitchDevice:              "switch to a different device",
	SwitchTheme:               "open a popup for switching theme",
	SelectNext:                "select the next item",
	SelectPrevious:            "select the previous item",
	SelectFirst:               "select the first item",
	SelectLast:                "select the last item",
	ChooseSelected:            "choose the selected item",
	ClosePopup:                "close the current popup",
}

// All lists every command except None, in declaration order.
func All() []Command {
	out := make([]Command, 0, len(names)-1)
	for c := Quit; int(c) < len(names); c++ {
		out = append(out, c)
	}
	return out
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(names) {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return names[c]
}

// Description is the help text shown in the command help popup.
func (c Command) Description() string {
	return descriptions[c]
}

// Parse resolves a command name as written in keymap.toml.
func Parse(name string) (Command, error) {
	for i, n := range names {
		if n == name && Command(i) != None {
			return Command(i), nil
		}
	}
	return None, fmt.Errorf("unknown command %q", name)
}

// UnmarshalText lets TOML decode command names directly.
func (c *Command) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
