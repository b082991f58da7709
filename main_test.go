package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gomission/gomission/internal/app"
	"github.com/gomission/gomission/internal/config"
	"github.com/gomission/gomission/internal/transmission"
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
			Connection: transmission.Connection{
				URL:      "http://localhost:9091/transmission/rpc",
				Username: "alice",
				Password: "secret",
			},
			DownloadDir: "/srv/torrents",
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"url":      "http://localhost:9091/transmission/rpc",
			"username": "alice",
			"password": "********",
		},
		Args: []string{"--url", "http://localhost:9091/transmission/rpc"},
		Path: "/home/alice/.config/gomission/config.toml",
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["url"] != "http://localhost:9091/transmission/rpc" {
		t.Fatalf("unexpected url flag %v", flagsValue["url"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if payload["configPath"] != cfg.Path {
		t.Fatalf("expected config path %q, got %v", cfg.Path, payload["configPath"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	cfgValue, ok := payload["config"].(config.Config)
	if !ok {
		t.Fatalf("expected config in payload")
	}
	if cfgValue.App.Connection.Password == "secret" {
		t.Fatalf("expected password to be redacted")
	}
	if cfgValue.App.DownloadDir != cfg.App.DownloadDir {
		t.Fatalf("expected download dir %q, got %q", cfg.App.DownloadDir, cfgValue.App.DownloadDir)
	}
}

func TestConfigPathCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "path", "--config", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	if strings.TrimSpace(out.String()) != path {
		t.Fatalf("expected %q, got %q", path, out.String())
	}
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gomission", "config.toml")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "init", "--config", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out.String(), "wrote") {
		t.Fatalf("expected confirmation, got %q", out.String())
	}
	cfg, err := config.LoadArgs([]string{"--config", path}, nil)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.App.Connection.URL != config.DefaultURL {
		t.Fatalf("unexpected url %q", cfg.App.Connection.URL)
	}
}

func TestInvalidURLExitsWithConfigStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if _, err := config.WriteDefault(path); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", path, "--url", "bad_url"})
	err := cmd.Execute()
	var exit *exitError
	if !errors.As(err, &exit) {
		t.Fatalf("expected exit error, got %v", err)
	}
	if exit.code != 2 {
		t.Fatalf("expected status 2, got %d", exit.code)
	}
	if !errors.Is(err, config.ErrInvalidURL) {
		t.Fatalf("expected invalid url error, got %v", err)
	}
}
