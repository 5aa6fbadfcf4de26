// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for bureau-expand.
//
// Configuration is loaded from at most one file, named by the --config
// flag or, failing that, the BUREAU_EXPAND_CONFIG environment variable
// (via [Load]). With neither set the built-in [Default] applies. There
// is no automatic file search.
//
// YAML is the primary format. A file ending in .json or .jsonc is read
// as JSON with comments and trailing commas. Unknown keys are rejected
// in both formats so that a misspelled option fails loudly instead of
// being ignored.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded from the
// environment.
//
// Command-line flags override file values; that merge belongs to the
// command, which knows which flags were set explicitly.
//
// Key exports:
//
//   - [Config] -- Interpreters, Sandbox, Embed, Log
//   - [Default] -- the built-in configuration
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- rejects bad tools, embed formats, sizes, levels
package config
