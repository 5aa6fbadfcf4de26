// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bureau-expand/cmd/bureau-expand/cli"
	"github.com/bureau-foundation/bureau-expand/lib/script"
	"github.com/bureau-foundation/bureau-expand/sandbox"
)

func checkCommand(env *environment) *cli.Command {
	var flags settingsFlags
	flagSet := pflag.NewFlagSet("check", pflag.ContinueOnError)
	flags.register(flagSet)

	return &cli.Command{
		Name:    "check",
		Summary: "Report whether the sandbox and interpreters are usable",
		Description: `Check the configured sandbox wrapper and script interpreters.

Takes the same configuration and flags as expansion. A missing or
unusable sandbox fails the check. A missing interpreter is a warning:
only templates that use that language need it.`,
		Usage: "bureau-expand check [flags]",
		Examples: []cli.Example{
			{
				Description: "Check the default firejail setup",
				Command:     "bureau-expand check",
			},
			{
				Description: "Check a bubblewrap profile from a file",
				Command:     "bureau-expand check --sandbox=bwrap --profiles-file=profiles.yaml --sandbox-profile=build",
			},
		},
		Flags: func() *pflag.FlagSet { return flagSet },
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			return runCheck(env, flagSet, &flags)
		},
	}
}

func runCheck(env *environment, flagSet *pflag.FlagSet, flags *settingsFlags) error {
	cfg, err := flags.resolve(flagSet)
	if err != nil {
		return err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger := cli.NewLogger(env.stderr, level).With("command", "check")

	wrapper, err := newWrapper(cfg, logger)
	if err != nil {
		return err
	}
	engine, err := script.New(script.Config{
		Interpreters: interpreters(cfg),
		Wrapper:      wrapper,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	validator := sandbox.NewValidator()
	validator.ValidateWrapper(wrapper)
	for _, language := range script.Languages {
		interpreter, _ := engine.Interpreter(language)
		validator.ValidateExecutable(string(language), interpreter.Path)
	}

	printChecklist(env.stdout, validator.Results(), cli.IsTerminal(env.stdout))
	fmt.Fprintln(env.stdout)
	if validator.HasErrors() {
		fmt.Fprintln(env.stdout, sandboxHint(wrapper, sandbox.DetectCapabilities()))
		fmt.Fprintln(env.stdout, "Some checks failed.")
		return &cli.ExitError{Code: 1}
	}
	fmt.Fprintln(env.stdout, "All checks passed.")
	return nil
}

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// printChecklist writes one line per result. Status labels are
// coloured when color is set.
func printChecklist(w io.Writer, results []sandbox.ValidationResult, color bool) {
	for _, result := range results {
		status, style := "PASS", passStyle
		switch {
		case !result.Passed:
			status, style = "FAIL", failStyle
		case result.Warning:
			status, style = "WARN", warnStyle
		}

		label := fmt.Sprintf("%-5s", status)
		if color {
			label = style.Render(label)
		}
		fmt.Fprintf(w, "[%s]  %-10s  %s\n", label, result.Name, result.Message)
	}
}
