// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// LookExecutable resolves name to an absolute path the current user may
// execute. A name containing a slash is checked as given; anything else
// is searched on PATH.
func LookExecutable(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("executable name is empty")
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", err
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	// The mode bits can say executable while the user still lacks
	// permission (ACLs, noexec mounts); ask the kernel.
	if err := unix.Access(path, unix.X_OK); err != nil {
		return "", fmt.Errorf("%s is not executable: %w", path, err)
	}
	return path, nil
}
