package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/playctl/internal/app"
	"github.com/atomicstack/playctl/internal/logging"
	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App       app.Config
	Logging   Logging
	ConfigDir string
	Flags     map[string]string
	Args      []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envPrefix        = "PLAYCTL_"
	defaultConfigDir = "~/.config/playctl"
	defaultTheme     = "default"
	defaultMarket    = "from_token"
)

// envConfig mirrors the PLAYCTL_* environment variables.
type envConfig struct {
	ConfigDir   string `env:"CONFIG_DIR"`
	LogFile     string `env:"LOG_FILE"`
	Trace       bool   `env:"TRACE"`
	RefreshMS   *int   `env:"REFRESH_MS"`
	AccessToken string `env:"ACCESS_TOKEN"`
	Theme       string `env:"THEME"`
	NoMouse     bool   `env:"NO_MOUSE"`
}

// Load parses configuration from CLI arguments, environment variables and
// the files in the config directory.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
// Precedence, lowest first: built-in defaults, app.toml, environment, flags.
func LoadArgs(args []string, environ []string) (Config, error) {
	var ev envConfig
	if err := env.ParseWithOptions(&ev, env.Options{
		Prefix:      envPrefix,
		Environment: parseEnv(environ),
	}); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}

	fs := pflag.NewFlagSet("playctl", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configDir := fs.String("config-dir", orDefault(ev.ConfigDir, defaultConfigDir), "directory holding app.toml, keymap.toml and theme.toml")
	logFile := fs.String("log-file", ev.LogFile, "path to the log file")
	trace := fs.Bool("trace", ev.Trace, "enable verbose JSON trace logging")
	refreshMS := fs.Int("refresh-ms", 0, "playback refresh period in milliseconds (0 disables)")
	token := fs.String("access-token", ev.AccessToken, "Spotify Web API access token")
	themeName := fs.String("theme", ev.Theme, "name of the theme to start with")
	noMouse := fs.Bool("no-mouse", ev.NoMouse, "disable mouse support")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	dir, err := homedir.Expand(*configDir)
	if err != nil {
		return Config{}, fmt.Errorf("expand config dir: %w", err)
	}

	file, err := loadAppFile(filepath.Join(dir, appFile))
	if err != nil {
		return Config{}, err
	}

	refresh := 0
	if file.PlaybackRefreshDurationInMS != nil {
		refresh = *file.PlaybackRefreshDurationInMS
	}
	if ev.RefreshMS != nil {
		refresh = *ev.RefreshMS
	}
	if fs.Changed("refresh-ms") {
		refresh = *refreshMS
	}

	activeTheme := orDefault(file.Theme, defaultTheme)
	if *themeName != "" {
		activeTheme = *themeName
	}

	mouse := true
	if file.EnableMouse != nil {
		mouse = *file.EnableMouse
	}
	if *noMouse {
		mouse = false
	}

	km, err := loadKeymap(filepath.Join(dir, keymapFile))
	if err != nil {
		return Config{}, err
	}
	themes, err := loadThemes(filepath.Join(dir, themeFile))
	if err != nil {
		return Config{}, err
	}

	logPath := *logFile
	if logPath != "" {
		if logPath, err = homedir.Expand(logPath); err != nil {
			return Config{}, fmt.Errorf("expand log file: %w", err)
		}
	}

	cfg := Config{
		App: app.Config{
			AccessToken:     strings.TrimSpace(*token),
			Market:          orDefault(file.Market, defaultMarket),
			RefreshInterval: time.Duration(refresh) * time.Millisecond,
			Mouse:           mouse,
			Keymap:          km,
			Themes:          themes,
			ThemeName:       activeTheme,
		},
		Logging: Logging{
			FilePath: logPath,
			Trace:    *trace,
		},
		ConfigDir: dir,
		Flags: map[string]string{
			"configDir": dir,
			"logFile":   logPath,
			"trace":     strconv.FormatBool(*trace),
			"refreshMS": strconv.Itoa(refresh),
			"theme":     activeTheme,
			"mouse":     strconv.FormatBool(mouse),
		},
		Args: append([]string(nil), fs.Args()...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	var errs []error
	if cfg.App.AccessToken == "" {
		errs = append(errs, errors.New("an access token is required (--access-token or PLAYCTL_ACCESS_TOKEN)"))
	}
	if cfg.App.RefreshInterval < 0 {
		errs = append(errs, fmt.Errorf("playback refresh must be >= 0 (got %v)", cfg.App.RefreshInterval))
	}
	if _, ok := cfg.App.ActiveTheme(); !ok {
		errs = append(errs, fmt.Errorf("unknown theme %q", cfg.App.ThemeName))
	}
	if err := errors.Join(errs...); err != nil {
		logging.Warn("invalid configuration", "error", err)
		return err
	}
	return nil
}
