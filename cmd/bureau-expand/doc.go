// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Bureau-expand expands a template document to standard output.
//
// Lines are copied through unchanged except for directives, which are
// lines whose first non-blank character is '@':
//
//	@sizeof <path> [text]       the byte size of path, then text
//	@embed <path> [limit(N)]    the bytes of path as comma-separated literals
//	@include <path>             the contents of path, verbatim
//	@bash ... @end              the standard output of a bash script
//	@python ... @end            the standard output of a python script
//	@perl ... @end              the standard output of a perl script
//
// Script blocks run inside a sandbox (firejail by default, or
// bubblewrap). The "check" subcommand reports whether the configured
// sandbox and interpreters are usable:
//
//	bureau-expand -i font.h.in > font.h
//	bureau-expand check --sandbox=bwrap
//
// The expanded document is written in a single write, and only when
// every directive succeeded.
package main
