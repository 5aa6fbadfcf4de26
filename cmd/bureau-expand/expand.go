// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bureau-expand/cmd/bureau-expand/cli"
	"github.com/bureau-foundation/bureau-expand/lib/clock"
	"github.com/bureau-foundation/bureau-expand/lib/expand"
	"github.com/bureau-foundation/bureau-expand/lib/script"
	"github.com/bureau-foundation/bureau-expand/sandbox"
)

type expandFlags struct {
	settingsFlags
	input string
}

func rootCommand(env *environment) *cli.Command {
	var flags expandFlags
	flagSet := pflag.NewFlagSet("bureau-expand", pflag.ContinueOnError)
	flagSet.StringVarP(&flags.input, "input", "i", "", "template file to expand (required)")
	flags.register(flagSet)
	flags.registerEmbed(flagSet)

	return &cli.Command{
		Name:    "bureau-expand",
		Summary: "Expand @-directives in a template document",
		Description: `Expand a template document to standard output.

Every line is copied through unchanged except directive lines:

  @sizeof <path> [text]      byte size of path, followed by text
  @embed <path> [limit(N)]   bytes of path as delimited literals, 20 per row
  @include <path>            contents of path, verbatim
  @bash / @python / @perl    standard output of the script up to @end

Paths are relative to the working directory. Script blocks run in a
sandbox (firejail by default); pass --unsandboxed to run them directly.
Nothing is written unless the whole document expands.`,
		Usage: "bureau-expand -i <template> [flags]",
		Examples: []cli.Example{
			{
				Description: "Generate a header from a template",
				Command:     "bureau-expand -i font.h.in > font.h",
			},
			{
				Description: "Run script blocks under bubblewrap",
				Command:     "bureau-expand -i table.c.in --sandbox=bwrap > table.c",
			},
			{
				Description: "Check which sandboxes and interpreters are usable",
				Command:     "bureau-expand check",
			},
		},
		Flags:       func() *pflag.FlagSet { return flagSet },
		Subcommands: []*cli.Command{checkCommand(env), versionCommand(env)},
		HelpOutput:  env.stderr,
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			return runExpand(env, flagSet, &flags)
		},
	}
}

func runExpand(env *environment, flagSet *pflag.FlagSet, flags *expandFlags) error {
	if flags.input == "" {
		return fmt.Errorf("missing required flag: -i/--input")
	}

	cfg, err := flags.resolve(flagSet)
	if err != nil {
		return err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger := cli.NewLogger(env.stderr, level).With(
		"command", "expand",
		"template", flags.input,
	)

	wrapper, err := newWrapper(cfg, logger)
	if err != nil {
		return err
	}
	if err := requireSandbox(wrapper); err != nil {
		return err
	}
	if cfg.Sandbox.Disabled {
		logger.Warn("script blocks run without a sandbox, with the invoking user's full privileges")
	}

	format, err := embedFormat(cfg)
	if err != nil {
		return err
	}

	document, err := os.ReadFile(flags.input)
	if err != nil {
		return fmt.Errorf("reading template: %w", err)
	}

	engine, err := script.New(script.Config{
		Interpreters: interpreters(cfg),
		Wrapper:      wrapper,
		Stderr:       env.stderr,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	expander, err := expand.New(expand.Options{
		Embed:   format,
		Scripts: engine,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	timer := clock.Real()
	start := timer.Now()
	output, err := expander.Expand(env.ctx, document)
	if err != nil {
		return err
	}

	output = append(output, '\n')
	if _, err := env.stdout.Write(output); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Debug("template expanded",
		"input_bytes", len(document),
		"output_bytes", len(output),
		"elapsed", timer.Since(start),
	)
	return nil
}

// requireSandbox fails when the wrapper cannot run. The error names an
// installed alternative when there is one.
func requireSandbox(wrapper sandbox.Wrapper) error {
	validator := sandbox.NewValidator()
	validator.ValidateWrapper(wrapper)
	if !validator.HasErrors() {
		return nil
	}
	return fmt.Errorf("%w\n\n%s", validator.Err(), sandboxHint(wrapper, sandbox.DetectCapabilities()))
}

func sandboxHint(wrapper sandbox.Wrapper, caps *sandbox.Capabilities) string {
	const unsandboxed = "pass --unsandboxed to run scripts without a sandbox"
	switch {
	case wrapper.Name() != sandbox.ToolBwrap && caps.BwrapPath != "" && caps.UserNamespacesEnabled:
		return "bubblewrap is available: pass --sandbox=bwrap, or " + unsandboxed
	case wrapper.Name() != sandbox.ToolFirejail && caps.FirejailPath != "":
		return "firejail is available: pass --sandbox=firejail, or " + unsandboxed
	case !caps.CanSandbox():
		return caps.SkipReason() + "; " + unsandboxed
	default:
		return unsandboxed
	}
}
