// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// WriteFile writes data to name inside directory and returns the full
// path.
func WriteFile(t *testing.T, directory, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(directory, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}

// WriteTemplate writes a template document to a fresh temporary
// directory and returns its path.
func WriteTemplate(t *testing.T, document string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "template.in", []byte(document))
}

// RequireExecutable returns the absolute path of name on PATH, or skips
// the test when it is not installed.
func RequireExecutable(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not installed: %v", name, err)
	}
	return path
}
