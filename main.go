package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atomicstack/playctl/internal/app"
	"github.com/atomicstack/playctl/internal/config"
	"github.com/atomicstack/playctl/internal/logging"
	"github.com/atomicstack/playctl/internal/logging/events"
	"golang.org/x/term"
)

const (
	exitOK = iota
	exitFailure
	exitConfig
)

var errNoTerminal = errors.New("playctl needs an interactive terminal on stdin and stdout")

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return exitConfig
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	defer logging.Close()

	tty := probeTerminal()
	events.App.Start(startupTracePayload(cfg, tty))
	if !tty.interactive() {
		logging.Error(errNoTerminal)
		fmt.Fprintf(os.Stderr, "Error: %v\n", errNoTerminal)
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()
	if err := app.Run(ctx, cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

// startupTracePayload bundles runtime context for trace logging. The access
// token never reaches the trace log.
func startupTracePayload(cfg config.Config, tty terminalInfo) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	redacted := cfg
	if redacted.App.AccessToken != "" {
		redacted.App.AccessToken = "[redacted]"
	}
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": redacted,
		"tty":    tty,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

// terminalInfo records which standard descriptors are terminals.
type terminalInfo struct {
	Descriptors []descriptorInfo `json:"descriptors"`
}

type descriptorInfo struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Error    string `json:"error,omitempty"`
}

func probeTerminal() terminalInfo {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	info := terminalInfo{Descriptors: make([]descriptorInfo, len(files))}
	for i, f := range files {
		d := descriptorInfo{Name: names[i]}
		fd := int(f.Fd())
		if d.Terminal = term.IsTerminal(fd); d.Terminal {
			w, h, err := term.GetSize(fd)
			if err != nil {
				d.Error = err.Error()
			}
			d.Width, d.Height = w, h
		}
		info.Descriptors[i] = d
	}
	return info
}

// interactive reports whether both stdin and stdout are terminals.
func (t terminalInfo) interactive() bool {
	found := 0
	for _, d := range t.Descriptors {
		if (d.Name == "stdin" || d.Name == "stdout") && d.Terminal {
			found++
		}
	}
	return found == 2
}
