// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"os"
	"os/exec"
	"strings"
)

// Capabilities describes which sandbox tools are usable on this system.
type Capabilities struct {
	// FirejailPath is the resolved firejail executable, or "".
	FirejailPath string

	// BwrapPath is the resolved bwrap executable, or "".
	BwrapPath string

	// UserNamespacesEnabled is true if unprivileged user namespaces
	// work. Only probed when bwrap is installed.
	UserNamespacesEnabled bool
}

// DetectCapabilities checks what sandbox tools are available.
func DetectCapabilities() *Capabilities {
	caps := &Capabilities{}

	if path, err := LookExecutable(ToolFirejail); err == nil {
		caps.FirejailPath = path
	}
	if path, err := LookExecutable(ToolBwrap); err == nil {
		caps.BwrapPath = path
		caps.UserNamespacesEnabled = checkUserNamespaces(path)
	}

	return caps
}

// CanSandbox reports whether at least one sandbox tool can be used.
func (c *Capabilities) CanSandbox() bool {
	return c.FirejailPath != "" || (c.BwrapPath != "" && c.UserNamespacesEnabled)
}

// SkipReason returns a human-readable reason why no sandbox is
// available, or empty string if one is.
func (c *Capabilities) SkipReason() string {
	if c.CanSandbox() {
		return ""
	}
	if c.BwrapPath != "" {
		return "firejail not installed and unprivileged user namespaces are disabled for bubblewrap"
	}
	return "neither firejail nor bubblewrap is installed"
}

// checkUserNamespaces tests whether bwrap can create a user namespace.
func checkUserNamespaces(bwrapPath string) bool {
	data, err := os.ReadFile("/proc/sys/kernel/unprivileged_userns_clone")
	if err == nil && strings.TrimSpace(string(data)) == "0" {
		return false
	}
	cmd := exec.Command(bwrapPath,
		"--unshare-user",
		"--ro-bind", "/", "/",
		"--",
		"true",
	)
	return cmd.Run() == nil
}
