// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bureau-expand/lib/config"
	"github.com/bureau-foundation/bureau-expand/lib/expand"
	"github.com/bureau-foundation/bureau-expand/lib/script"
	"github.com/bureau-foundation/bureau-expand/sandbox"
)

// settingsFlags are the flags shared by the expand and check commands.
// Each one overrides the matching config file value when set
// explicitly.
type settingsFlags struct {
	configPath     string
	bashPath       string
	pythonPath     string
	perlPath       string
	sandboxTool    string
	sandboxPath    string
	sandboxProfile string
	profilesFile   string
	unsandboxed    bool
	yolo           bool
	logLevel       string

	embedFormat    string
	embedDelimiter string
	embedMax       string
}

func (s *settingsFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&s.configPath, "config", "", "config file (YAML, or JSON with comments); default $"+config.EnvironmentVariable)
	flagSet.StringVar(&s.bashPath, "bash-path", "", "bash executable for @bash blocks (default: bash on PATH)")
	flagSet.StringVar(&s.pythonPath, "python-path", "", "python executable for @python blocks (default: python3 on PATH)")
	flagSet.StringVar(&s.perlPath, "perl-path", "", "perl executable for @perl blocks (default: perl on PATH)")
	flagSet.StringVar(&s.sandboxTool, "sandbox", sandbox.ToolFirejail, "sandbox tool for script blocks: firejail or bwrap")
	flagSet.StringVar(&s.sandboxPath, "sandbox-path", "", "sandbox executable (default: the tool name on PATH)")
	flagSet.StringVar(&s.sandboxProfile, "sandbox-profile", sandbox.DefaultProfile, "bubblewrap profile name")
	flagSet.StringVar(&s.profilesFile, "profiles-file", "", "YAML file of additional bubblewrap profiles")
	flagSet.BoolVar(&s.unsandboxed, "unsandboxed", false, "run script blocks without a sandbox (scripts get your full privileges)")
	flagSet.BoolVar(&s.yolo, "yolo", false, "alias for --unsandboxed")
	flagSet.MarkHidden("yolo")
	flagSet.StringVar(&s.logLevel, "log-level", "info", "log level: debug, info, warn, or error")
}

// registerEmbed adds the @embed rendering flags.
func (s *settingsFlags) registerEmbed(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&s.embedFormat, "embed-fmt", "0x%02X", "fmt verb applied to each @embed byte")
	flagSet.StringVar(&s.embedDelimiter, "embed-delim", ", ", "separator between @embed values")
	flagSet.StringVar(&s.embedMax, "embed-max", "128 MiB", "cap for @embed without limit(N), e.g. 16MiB")
}

// resolve loads the config file and applies explicitly set flags over
// it: defaults < file < flags.
func (s *settingsFlags) resolve(flagSet *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return nil, err
	}

	override := func(name string, target *string, value string) {
		if flagSet.Changed(name) {
			*target = value
		}
	}
	override("bash-path", &cfg.Interpreters.Bash, s.bashPath)
	override("python-path", &cfg.Interpreters.Python, s.pythonPath)
	override("perl-path", &cfg.Interpreters.Perl, s.perlPath)
	override("sandbox", &cfg.Sandbox.Tool, s.sandboxTool)
	override("sandbox-path", &cfg.Sandbox.Path, s.sandboxPath)
	override("sandbox-profile", &cfg.Sandbox.Profile, s.sandboxProfile)
	override("profiles-file", &cfg.Sandbox.ProfilesFile, s.profilesFile)
	override("log-level", &cfg.Log.Level, s.logLevel)
	override("embed-fmt", &cfg.Embed.Format, s.embedFormat)
	override("embed-delim", &cfg.Embed.Delimiter, s.embedDelimiter)
	override("embed-max", &cfg.Embed.MaxBytes, s.embedMax)
	if s.unsandboxed || s.yolo {
		cfg.Sandbox.Disabled = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newWrapper builds the sandbox wrapper described by cfg.
func newWrapper(cfg *config.Config, logger *slog.Logger) (sandbox.Wrapper, error) {
	return sandbox.New(sandbox.Config{
		Disabled:     cfg.Sandbox.Disabled,
		Tool:         cfg.Sandbox.Tool,
		Path:         cfg.Sandbox.Path,
		Profile:      cfg.Sandbox.Profile,
		ProfilesFile: cfg.Sandbox.ProfilesFile,
		Logger:       logger,
	})
}

// interpreters returns the configured interpreter overrides. Unset
// entries keep the engine defaults.
func interpreters(cfg *config.Config) map[script.Language]script.Interpreter {
	result := make(map[script.Language]script.Interpreter)
	if cfg.Interpreters.Bash != "" {
		result[script.Bash] = script.Interpreter{Path: cfg.Interpreters.Bash, Args: []string{"-s"}}
	}
	if cfg.Interpreters.Python != "" {
		result[script.Python] = script.Interpreter{Path: cfg.Interpreters.Python}
	}
	if cfg.Interpreters.Perl != "" {
		result[script.Perl] = script.Interpreter{Path: cfg.Interpreters.Perl}
	}
	return result
}

// embedFormat converts the embed section; cfg must be validated.
func embedFormat(cfg *config.Config) (expand.EmbedFormat, error) {
	maxBytes, err := cfg.MaxBytes()
	if err != nil {
		return expand.EmbedFormat{}, err
	}
	return expand.EmbedFormat{
		Format:    cfg.Embed.Format,
		Delimiter: cfg.Embed.Delimiter,
		MaxBytes:  maxBytes,
	}, nil
}
