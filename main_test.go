package main

import (
	"strings"
	"testing"

	"github.com/atomicstack/dotview/internal/app"
	"github.com/atomicstack/dotview/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			GraphPath:  "deps.dot",
			Width:      80,
			Height:     24,
			ShowFooter: true,
			Verbose:    true,
			ExportDir:  "exports",
			Viewer:     "xdot",
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		File: "config.yaml",
		Flags: map[string]string{
			"graph":   "deps.dot",
			"width":   "80",
			"height":  "24",
			"footer":  "true",
			"verbose": "true",
			"viewer":  "xdot",
		},
		Args: []string{"--width", "80", "deps.dot"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["graph"] != "deps.dot" {
		t.Fatalf("expected graph %q, got %v", "deps.dot", flagsValue["graph"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["height"] != "24" {
		t.Fatalf("expected height 24, got %v", flagsValue["height"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["viewer"] != "xdot" {
		t.Fatalf("expected viewer xdot, got %v", flagsValue["viewer"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if payload["configFile"] != "config.yaml" {
		t.Fatalf("expected config file in payload, got %v", payload["configFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestRootCommandRequiresGraphFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(new(strings.Builder))
	cmd.SetErr(new(strings.Builder))
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error without a graph file")
	}
}

func TestRootCommandReportsConfigErrors(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--width", "-3", "deps.dot"})
	cmd.SetOut(new(strings.Builder))
	cmd.SetErr(new(strings.Builder))
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "width must be >= 0") {
		t.Fatalf("expected width error, got %v", err)
	}
}

func TestRootCommandBindsFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "log-file", "trace", "export-dir", "viewer", "footer", "verbose", "width", "height"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("expected --%s to be registered", name)
		}
	}
}
