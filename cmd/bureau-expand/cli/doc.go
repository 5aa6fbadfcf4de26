// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for bureau-expand.
//
// The central type is [Command], which represents a named command with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and
// a Run function. The root command expands a template; its
// subcommands (check, version) are dispatched by the first positional
// argument via [Command.Execute], which also handles flag parsing and
// structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3). This is
// implemented in suggest.go.
//
// [ExitError] lets a command choose its exit status after printing its
// own report, and [NewLogger] builds the slog logger every command
// shares: human-readable text on a terminal, JSON otherwise.
package cli
