// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package expand turns a template document into its expanded form.
//
// [Expander.Expand] makes a single pass over the document with a
// directive.Scanner. Literal lines are copied to the output followed by
// a newline. Directive lines are replaced by what their rule computes:
//
//	@sizeof <path> [text]    "    <bytes> <text>\n"
//	@embed <path> [limit(N)] rows of formatted byte values
//	@include <path>          the file's bytes, not re-scanned
//	@bash | @python | @perl  the stdout of the block body, up to @end
//
// Script blocks are handed to a [ScriptRunner] (lib/script's Engine in
// production). Lines starting with @ whose keyword is not one of the
// above are copied through as literal text.
//
// Every failure stops the pass and is returned as an *[Error] naming
// the template line that caused it. No partial output is returned.
package expand
