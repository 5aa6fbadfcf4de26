// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"fmt"
	"os"
	"sort"
)

// BwrapOptions holds options for building a bwrap command.
type BwrapOptions struct {
	// Profile is the resolved and expanded profile to use.
	Profile *Profile

	// WorkingDirectory is the directory the script starts in. Empty
	// leaves bwrap's default.
	WorkingDirectory string

	// Command is the interpreter argv to run inside the sandbox.
	Command []string
}

// BwrapBuilder builds bubblewrap command-line arguments.
type BwrapBuilder struct {
	args []string
	env  map[string]string
}

// NewBwrapBuilder creates a new builder.
func NewBwrapBuilder() *BwrapBuilder {
	return &BwrapBuilder{
		args: []string{},
		env:  make(map[string]string),
	}
}

// Build constructs the bwrap arguments from options. The environment is
// always cleared and rebuilt from the profile, sorted by key.
func (b *BwrapBuilder) Build(opts *BwrapOptions) ([]string, error) {
	if opts.Profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if len(opts.Command) == 0 {
		return nil, fmt.Errorf("command is required")
	}

	b.args = []string{}
	b.env = make(map[string]string)

	b.addNamespaces(opts.Profile.Namespaces)
	b.addSecurity(opts.Profile.Security)
	if err := b.addProfileMounts(opts.Profile); err != nil {
		return nil, err
	}

	for _, dir := range opts.Profile.CreateDirs {
		b.args = append(b.args, "--dir", dir)
	}

	if opts.WorkingDirectory != "" {
		b.args = append(b.args, "--chdir", opts.WorkingDirectory)
	}

	b.args = append(b.args, "--clearenv")
	for key, value := range opts.Profile.Environment {
		b.env[key] = value
	}
	envKeys := make([]string, 0, len(b.env))
	for key := range b.env {
		envKeys = append(envKeys, key)
	}
	sort.Strings(envKeys)
	for _, key := range envKeys {
		b.args = append(b.args, "--setenv", key, b.env[key])
	}

	b.args = append(b.args, "--")
	b.args = append(b.args, opts.Command...)

	return b.args, nil
}

// addNamespaces adds namespace unsharing options.
func (b *BwrapBuilder) addNamespaces(ns NamespaceConfig) {
	if ns.PID {
		b.args = append(b.args, "--unshare-pid")
	}
	if ns.Net {
		b.args = append(b.args, "--unshare-net")
	}
	if ns.IPC {
		b.args = append(b.args, "--unshare-ipc")
	}
	if ns.UTS {
		b.args = append(b.args, "--unshare-uts")
	}
	if ns.Cgroup {
		b.args = append(b.args, "--unshare-cgroup")
	}
	if ns.User {
		b.args = append(b.args, "--unshare-user")
	}
}

// addSecurity adds security options.
func (b *BwrapBuilder) addSecurity(sec SecurityConfig) {
	if sec.NewSession {
		b.args = append(b.args, "--new-session")
	}
	if sec.DieWithParent {
		b.args = append(b.args, "--die-with-parent")
	}
}

// addProfileMounts adds mounts from the profile in declaration order.
// Optional bind mounts whose source does not exist are skipped.
func (b *BwrapBuilder) addProfileMounts(profile *Profile) error {
	for _, mount := range profile.Filesystem {
		switch mount.Type {
		case MountTypeTmpfs:
			b.args = append(b.args, "--tmpfs", mount.Dest)

		case MountTypeProc:
			b.args = append(b.args, "--proc", mount.Dest)

		case MountTypeDev:
			b.args = append(b.args, "--dev", mount.Dest)

		case MountTypeDevBind:
			if mount.Optional && !exists(mount.Source) {
				continue
			}
			b.args = append(b.args, "--dev-bind", mount.Source, mount.Dest)

		case MountTypeBind:
			if mount.Optional && !exists(mount.Source) {
				continue
			}
			if mount.Mode == MountModeRO {
				b.args = append(b.args, "--ro-bind", mount.Source, mount.Dest)
			} else {
				b.args = append(b.args, "--bind", mount.Source, mount.Dest)
			}

		default:
			return fmt.Errorf("unknown mount type %q for %s", mount.Type, mount.Dest)
		}
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
