// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Sandbox.Tool != "firejail" {
		t.Errorf("expected tool=firejail, got %s", cfg.Sandbox.Tool)
	}
	if cfg.Sandbox.Disabled {
		t.Error("sandbox should be enabled by default")
	}
	if cfg.Embed.Format != "0x%02X" || cfg.Embed.Delimiter != ", " {
		t.Errorf("unexpected embed defaults: %+v", cfg.Embed)
	}

	maxBytes, err := cfg.MaxBytes()
	if err != nil {
		t.Fatalf("MaxBytes failed: %v", err)
	}
	if maxBytes != 128<<20 {
		t.Errorf("expected 128 MiB, got %d", maxBytes)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoad_Unset(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	path := writeConfig(t, "expand.yaml", "log:\n  level: debug\n")
	t.Setenv(EnvironmentVariable, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected level=debug, got %s", cfg.Log.Level)
	}

	// An explicit path wins over the environment.
	other := writeConfig(t, "other.yaml", "log:\n  level: warn\n")
	cfg, err = Load(other)
	if err != nil {
		t.Fatalf("Load(path) failed: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected level=warn, got %s", cfg.Log.Level)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	t.Setenv("BUREAU_EXPAND_TEST_PREFIX", "/opt/tools")
	path := writeConfig(t, "expand.yaml", `
interpreters:
  python: ${BUREAU_EXPAND_TEST_PREFIX}/bin/python3.12
  perl: ${BUREAU_EXPAND_UNSET_VAR:-/usr/bin/perl}
sandbox:
  tool: bwrap
  profile: template-net
embed:
  delimiter: ","
  max_bytes: 64 KiB
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	want := Default()
	want.Interpreters.Python = "/opt/tools/bin/python3.12"
	want.Interpreters.Perl = "/usr/bin/perl"
	want.Sandbox.Tool = "bwrap"
	want.Sandbox.Profile = "template-net"
	want.Embed.Delimiter = ","
	want.Embed.MaxBytes = "64 KiB"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadFile mismatch (-want +got):\n%s", diff)
	}

	maxBytes, err := cfg.MaxBytes()
	if err != nil || maxBytes != 64*1024 {
		t.Errorf("MaxBytes = %d, %v; want 65536", maxBytes, err)
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	path := writeConfig(t, "expand.jsonc", `{
  // Trusted build host: no sandbox.
  "sandbox": {"disabled": true},
  "embed": {"format": "%d",},
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !cfg.Sandbox.Disabled {
		t.Error("expected sandbox disabled")
	}
	if cfg.Embed.Format != "%d" {
		t.Errorf("expected format %%d, got %q", cfg.Embed.Format)
	}
	if cfg.Embed.Delimiter != ", " {
		t.Errorf("unset keys should keep defaults, got delimiter %q", cfg.Embed.Delimiter)
	}
}

func TestLoadFile_Empty(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadFile_UnknownKeys(t *testing.T) {
	for name, content := range map[string]string{
		"typo.yaml":  "sandbox:\n  tol: bwrap\n",
		"typo.json":  `{"embed": {"fmt": "%d"}}`,
		"broken.yml": "embed: [",
	} {
		if _, err := LoadFile(writeConfig(t, name, content)); err == nil {
			t.Errorf("LoadFile(%s) succeeded, want error", name)
		}
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Sandbox.Tool = "docker"
	cfg.Embed.Format = "%s and %s"
	cfg.Embed.MaxBytes = "lots"
	cfg.Log.Level = "chatty"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"sandbox.tool", "embed format", "embed.max_bytes", "log.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}

	cfg = Default()
	cfg.Embed.MaxBytes = "0"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero max_bytes")
	}
}

func TestLogLevel(t *testing.T) {
	cfg := Default()
	for text, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		cfg.Log.Level = text
		got, err := cfg.LogLevel()
		if err != nil || got != want {
			t.Errorf("LogLevel(%q) = %v, %v; want %v", text, got, err, want)
		}
	}
}
