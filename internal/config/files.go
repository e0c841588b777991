package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/atomicstack/playctl/internal/command"
	"github.com/atomicstack/playctl/internal/key"
	"github.com/atomicstack/playctl/internal/keymap"
	"github.com/atomicstack/playctl/internal/theme"
)

const (
	appFile    = "app.toml"
	keymapFile = "keymap.toml"
	themeFile  = "theme.toml"
)

type appFileConfig struct {
	PlaybackRefreshDurationInMS *int   `toml:"playback_refresh_duration_in_ms"`
	Market                      string `toml:"market"`
	Theme                       string `toml:"theme"`
	EnableMouse                 *bool  `toml:"enable_mouse"`
}

type keymapFileConfig struct {
	Keymaps []struct {
		Command     command.Command `toml:"command"`
		KeySequence string          `toml:"key_sequence"`
	} `toml:"keymaps"`
}

type themeFileConfig struct {
	Themes []theme.Theme `toml:"themes"`
}

// decodeFile decodes path into v. A missing file leaves v untouched.
func decodeFile(path string, v interface{}) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if _, err := toml.Decode(string(data), v); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

func loadAppFile(path string) (appFileConfig, error) {
	var cfg appFileConfig
	if _, err := decodeFile(path, &cfg); err != nil {
		return appFileConfig{}, err
	}
	return cfg, nil
}

// loadKeymap layers keymap.toml over the default bindings.
func loadKeymap(path string) (*keymap.Keymap, error) {
	var file keymapFileConfig
	found, err := decodeFile(path, &file)
	if err != nil {
		return nil, err
	}
	if !found {
		return keymap.Default(), nil
	}
	user := make([]keymap.Binding, 0, len(file.Keymaps))
	for i, entry := range file.Keymaps {
		seq, err := key.ParseSequence(entry.KeySequence)
		if err != nil {
			return nil, fmt.Errorf("%s: keymap %d: %w", path, i+1, err)
		}
		user = append(user, keymap.Binding{Sequence: seq, Command: entry.Command})
	}
	km, err := keymap.New(keymap.Merge(keymap.DefaultBindings(), user))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return km, nil
}

// loadThemes returns the built-in themes followed by the themes of
// theme.toml. A user theme named like a built-in replaces it in place.
func loadThemes(path string) ([]theme.Theme, error) {
	var file themeFileConfig
	if _, err := decodeFile(path, &file); err != nil {
		return nil, err
	}
	themes := theme.Builtins()
	for i, t := range file.Themes {
		if t.Name == "" {
			return nil, fmt.Errorf("%s: theme %d has no name", path, i+1)
		}
		replaced := false
		for j := range themes {
			if themes[j].Name == t.Name {
				themes[j] = t
				replaced = true
				break
			}
		}
		if !replaced {
			themes = append(themes, t)
		}
	}
	return themes, nil
}
