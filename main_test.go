package main

import (
	"testing"
	"time"

	"github.com/atomicstack/playctl/internal/app"
	"github.com/atomicstack/playctl/internal/config"
)

func TestProbeTerminalCoversStandardDescriptors(t *testing.T) {
	info := probeTerminal()
	if len(info.Descriptors) != 3 {
		t.Fatalf("expected 3 descriptors, got %d", len(info.Descriptors))
	}
	for i, name := range []string{"stdin", "stdout", "stderr"} {
		if info.Descriptors[i].Name != name {
			t.Fatalf("expected descriptor %d name %q, got %q", i, name, info.Descriptors[i].Name)
		}
	}
}

func TestInteractiveNeedsStdinAndStdout(t *testing.T) {
	cases := []struct {
		name  string
		descs []descriptorInfo
		want  bool
	}{
		{"both", []descriptorInfo{{Name: "stdin", Terminal: true}, {Name: "stdout", Terminal: true}}, true},
		{"piped stdout", []descriptorInfo{{Name: "stdin", Terminal: true}, {Name: "stdout"}, {Name: "stderr", Terminal: true}}, false},
		{"none", nil, false},
	}
	for _, tc := range cases {
		if got := (terminalInfo{Descriptors: tc.descs}).interactive(); got != tc.want {
			t.Fatalf("%s: interactive() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			AccessToken:     "secret-token",
			Market:          "from_token",
			RefreshInterval: 2 * time.Second,
			Mouse:           true,
			ThemeName:       "default",
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"refreshMS": "2000",
			"theme":     "default",
			"mouse":     "true",
		},
		Args: []string{"--refresh-ms", "2000"},
	}

	payload := startupTracePayload(cfg, terminalInfo{})

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["refreshMS"] != "2000" {
		t.Fatalf("expected refreshMS 2000, got %v", flagsValue["refreshMS"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if _, ok := payload["tty"].(terminalInfo); !ok {
		t.Fatalf("expected terminal info in payload")
	}

	cfgValue, ok := payload["config"].(config.Config)
	if !ok {
		t.Fatalf("expected config in payload")
	}
	if cfgValue.App.AccessToken != "[redacted]" {
		t.Fatalf("expected access token to be redacted, got %q", cfgValue.App.AccessToken)
	}
	if cfgValue.App.RefreshInterval != cfg.App.RefreshInterval {
		t.Fatalf("expected refresh %v, got %v", cfg.App.RefreshInterval, cfgValue.App.RefreshInterval)
	}
	if cfg.App.AccessToken != "secret-token" {
		t.Fatalf("expected caller config to be left untouched")
	}
}
