// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBwrapBuilder(t *testing.T) {
	profile := &Profile{
		Name: "test",
		Filesystem: []Mount{
			{Source: "/", Dest: "/", Mode: MountModeRO},
			{Type: MountTypeDev, Dest: "/dev"},
			{Type: MountTypeProc, Dest: "/proc"},
			{Type: MountTypeTmpfs, Dest: "/tmp"},
			{Source: "/srv/templates", Dest: "/srv/templates", Mode: MountModeRW},
			{Source: "/nonexistent/bureau-expand-test", Dest: "/opt", Optional: true},
		},
		Namespaces: NamespaceConfig{PID: true, Net: true},
		Security:   SecurityConfig{NewSession: true, DieWithParent: true},
		Environment: map[string]string{
			"PATH": "/usr/bin",
			"HOME": "/tmp",
		},
		CreateDirs: []string{"/tmp/work"},
	}

	args, err := NewBwrapBuilder().Build(&BwrapOptions{
		Profile:          profile,
		WorkingDirectory: "/srv/templates",
		Command:          []string{"/bin/bash", "-s"},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := []string{
		"--unshare-pid", "--unshare-net",
		"--new-session", "--die-with-parent",
		"--ro-bind", "/", "/",
		"--dev", "/dev",
		"--proc", "/proc",
		"--tmpfs", "/tmp",
		"--bind", "/srv/templates", "/srv/templates",
		"--dir", "/tmp/work",
		"--chdir", "/srv/templates",
		"--clearenv",
		"--setenv", "HOME", "/tmp",
		"--setenv", "PATH", "/usr/bin",
		"--", "/bin/bash", "-s",
	}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBwrapBuilderErrors(t *testing.T) {
	if _, err := NewBwrapBuilder().Build(&BwrapOptions{Command: []string{"true"}}); err == nil {
		t.Error("expected error for missing profile")
	}
	if _, err := NewBwrapBuilder().Build(&BwrapOptions{Profile: &Profile{}}); err == nil {
		t.Error("expected error for missing command")
	}

	_, err := NewBwrapBuilder().Build(&BwrapOptions{
		Profile: &Profile{Filesystem: []Mount{{Type: "overlay", Dest: "/x"}}},
		Command: []string{"true"},
	})
	if err == nil || !strings.Contains(err.Error(), "unknown mount type") {
		t.Errorf("expected unknown mount type error, got %v", err)
	}
}

func TestBwrapBuilderReuse(t *testing.T) {
	builder := NewBwrapBuilder()
	profile := &Profile{Environment: map[string]string{"A": "1"}}

	first, err := builder.Build(&BwrapOptions{Profile: profile, Command: []string{"perl"}})
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	second, err := builder.Build(&BwrapOptions{Profile: profile, Command: []string{"perl"}})
	if err != nil {
		t.Fatalf("second Build failed: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("builder state leaked between builds (-first +second):\n%s", diff)
	}
}
