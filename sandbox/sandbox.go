// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Tool names accepted by [Config].Tool.
const (
	ToolFirejail = "firejail"
	ToolBwrap    = "bwrap"
)

// DefaultProfile is the bubblewrap profile used when none is named.
const DefaultProfile = "template"

// Wrapper is a process launch strategy. Wrap receives the interpreter
// argv (executable first) and returns the argv to spawn.
type Wrapper interface {
	// Name identifies the strategy in logs and check output.
	Name() string

	// Executable is the wrapper tool to validate before use, or "" when
	// the strategy runs the interpreter directly.
	Executable() string

	// Wrap returns the full command line for running argv.
	Wrap(argv []string) ([]string, error)
}

// Config selects and configures a Wrapper.
type Config struct {
	// Disabled selects the Direct strategy regardless of Tool.
	Disabled bool

	// Tool is ToolFirejail (the default when empty) or ToolBwrap.
	Tool string

	// Path overrides the wrapper executable. Empty means the tool name,
	// resolved on PATH at spawn time.
	Path string

	// Profile names the bubblewrap profile. Default: DefaultProfile.
	Profile string

	// ProfilesFile is an extra YAML file of bubblewrap profiles loaded
	// after the built-in ones.
	ProfilesFile string

	// WorkingDirectory is where sandboxed scripts start. Default: the
	// process working directory.
	WorkingDirectory string

	// Logger for profile loading. Nil disables loader logging.
	Logger *slog.Logger
}

// New builds the Wrapper described by config.
func New(config Config) (Wrapper, error) {
	if config.Disabled {
		return Direct{}, nil
	}

	switch config.Tool {
	case "", ToolFirejail:
		return &Firejail{Path: config.Path}, nil

	case ToolBwrap:
		workingDirectory := config.WorkingDirectory
		if workingDirectory == "" {
			var err error
			workingDirectory, err = os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("determining working directory: %w", err)
			}
		}
		workingDirectory, err := filepath.Abs(workingDirectory)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}

		loader := NewProfileLoader()
		loader.SetLogger(config.Logger)
		if err := loader.LoadDefaults(); err != nil {
			return nil, err
		}
		if config.ProfilesFile != "" {
			if err := loader.LoadFile(config.ProfilesFile); err != nil {
				return nil, fmt.Errorf("failed to load profiles from %s: %w", config.ProfilesFile, err)
			}
		}

		name := config.Profile
		if name == "" {
			name = DefaultProfile
		}
		profile, err := loader.Resolve(name)
		if err != nil {
			return nil, err
		}
		if err := profile.Validate(); err != nil {
			return nil, err
		}

		vars := DefaultVariables()
		vars["WORKING_DIRECTORY"] = workingDirectory
		return &Bwrap{
			Path:             config.Path,
			Profile:          vars.ExpandProfile(profile),
			WorkingDirectory: workingDirectory,
		}, nil

	default:
		return nil, fmt.Errorf("unknown sandbox tool %q (want %s or %s)", config.Tool, ToolFirejail, ToolBwrap)
	}
}

// Direct runs interpreters without a sandbox.
type Direct struct{}

// Name returns "none".
func (Direct) Name() string { return "none" }

// Executable returns "": there is no wrapper to validate.
func (Direct) Executable() string { return "" }

// Wrap returns a copy of argv.
func (Direct) Wrap(argv []string) ([]string, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("command is required")
	}
	return append([]string(nil), argv...), nil
}

// FirejailArgs are the options passed to firejail ahead of the
// interpreter: the home directory is read-only, every capability is
// dropped, and only netlink sockets may be opened.
var FirejailArgs = []string{
	"--read-only=~/",
	"--caps.drop=all",
	"--protocol=netlink",
	"--quiet",
}

// Firejail wraps interpreters in firejail.
type Firejail struct {
	// Path is the firejail executable. Default: "firejail".
	Path string
}

// Name returns "firejail".
func (f *Firejail) Name() string { return ToolFirejail }

// Executable returns the configured path or "firejail".
func (f *Firejail) Executable() string {
	if f.Path != "" {
		return f.Path
	}
	return ToolFirejail
}

// Wrap returns firejail [FirejailArgs...] argv...
func (f *Firejail) Wrap(argv []string) ([]string, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("command is required")
	}
	command := make([]string, 0, 1+len(FirejailArgs)+len(argv))
	command = append(command, f.Executable())
	command = append(command, FirejailArgs...)
	command = append(command, argv...)
	return command, nil
}

// Bwrap wraps interpreters in bubblewrap according to a profile.
type Bwrap struct {
	// Path is the bwrap executable. Default: "bwrap".
	Path string

	// Profile is the resolved, variable-expanded profile.
	Profile *Profile

	// WorkingDirectory is passed to --chdir.
	WorkingDirectory string
}

// Name returns "bwrap".
func (b *Bwrap) Name() string { return ToolBwrap }

// Executable returns the configured path or "bwrap".
func (b *Bwrap) Executable() string {
	if b.Path != "" {
		return b.Path
	}
	return ToolBwrap
}

// Wrap returns bwrap [profile arguments...] -- argv...
func (b *Bwrap) Wrap(argv []string) ([]string, error) {
	builder := NewBwrapBuilder()
	args, err := builder.Build(&BwrapOptions{
		Profile:          b.Profile,
		WorkingDirectory: b.WorkingDirectory,
		Command:          argv,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build bwrap command: %w", err)
	}
	return append([]string{b.Executable()}, args...), nil
}
