// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewDirect(t *testing.T) {
	wrapper, err := New(Config{Disabled: true, Tool: ToolBwrap})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if wrapper.Name() != "none" || wrapper.Executable() != "" {
		t.Errorf("expected direct wrapper, got %s (%q)", wrapper.Name(), wrapper.Executable())
	}

	argv := []string{"/usr/bin/perl"}
	wrapped, err := wrapper.Wrap(argv)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	if diff := cmp.Diff(argv, wrapped); diff != "" {
		t.Errorf("Wrap mismatch (-want +got):\n%s", diff)
	}
	wrapped[0] = "changed"
	if argv[0] != "/usr/bin/perl" {
		t.Error("Wrap returned the caller's slice")
	}

	if _, err := wrapper.Wrap(nil); err == nil {
		t.Error("expected error for empty argv")
	}
}

func TestNewFirejail(t *testing.T) {
	for _, tool := range []string{"", ToolFirejail} {
		wrapper, err := New(Config{Tool: tool})
		if err != nil {
			t.Fatalf("New(%q) failed: %v", tool, err)
		}
		if wrapper.Executable() != "firejail" {
			t.Errorf("New(%q).Executable() = %q, want firejail", tool, wrapper.Executable())
		}
	}

	wrapper, err := New(Config{Path: "/opt/firejail/bin/firejail"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	wrapped, err := wrapper.Wrap([]string{"/usr/bin/python3"})
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	want := []string{
		"/opt/firejail/bin/firejail",
		"--read-only=~/", "--caps.drop=all", "--protocol=netlink", "--quiet",
		"/usr/bin/python3",
	}
	if diff := cmp.Diff(want, wrapped); diff != "" {
		t.Errorf("Wrap mismatch (-want +got):\n%s", diff)
	}
}

func TestNewBwrap(t *testing.T) {
	dir := t.TempDir()
	profiles := filepath.Join(dir, "profiles.yaml")
	document := `
profiles:
  workdir:
    inherit: template
    filesystem:
      - source: ${WORKING_DIRECTORY}
        dest: ${WORKING_DIRECTORY}
        mode: ro
`
	if err := os.WriteFile(profiles, []byte(document), 0o644); err != nil {
		t.Fatal(err)
	}

	wrapper, err := New(Config{
		Tool:             ToolBwrap,
		Profile:          "workdir",
		ProfilesFile:     profiles,
		WorkingDirectory: dir,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	bwrap, ok := wrapper.(*Bwrap)
	if !ok {
		t.Fatalf("expected *Bwrap, got %T", wrapper)
	}
	last := bwrap.Profile.Filesystem[len(bwrap.Profile.Filesystem)-1]
	if last.Source != dir || last.Dest != dir {
		t.Errorf("working directory not expanded into profile: %+v", last)
	}

	wrapped, err := wrapper.Wrap([]string{"/bin/bash", "-s"})
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	if wrapped[0] != "bwrap" {
		t.Errorf("expected bwrap executable first, got %q", wrapped[0])
	}
	tail := wrapped[len(wrapped)-3:]
	if diff := cmp.Diff([]string{"--", "/bin/bash", "-s"}, tail); diff != "" {
		t.Errorf("command tail mismatch (-want +got):\n%s", diff)
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(Config{Tool: "docker"}); err == nil {
		t.Error("expected error for unknown tool")
	}
	if _, err := New(Config{Tool: ToolBwrap, Profile: "missing", WorkingDirectory: t.TempDir()}); err == nil {
		t.Error("expected error for unknown profile")
	}
	if _, err := New(Config{Tool: ToolBwrap, ProfilesFile: "/nonexistent/profiles.yaml", WorkingDirectory: t.TempDir()}); err == nil {
		t.Error("expected error for missing profiles file")
	}
}
