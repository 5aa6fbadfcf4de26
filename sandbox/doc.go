// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sandbox confines the interpreters that template script
// directives run in, so that a script's only observable effect is the
// text it writes to standard output.
//
// The central type is [Wrapper], a process launch strategy that
// rewrites an interpreter's argv into the argv actually spawned.
// Three strategies exist:
//
//   - [Direct] runs the interpreter as-is (the --unsandboxed mode).
//   - [Firejail] prefixes a firejail invocation with a read-only home
//     directory, all capabilities dropped, and networking restricted
//     to netlink.
//   - [Bwrap] translates a [Profile] into bubblewrap arguments. Profiles
//     are YAML documents that declare mounts, namespaces, and the
//     environment; they support single inheritance via the Inherit field
//     and ${VAR} expansion ([Variables.ExpandProfile]).
//
// [New] selects and configures a strategy from a [Config]. The wrapper
// executable is an external collaborator: [LookExecutable] resolves it
// and [Validator] performs the pre-flight checks (tool present and
// executable, user namespaces available for bubblewrap, interpreters
// resolvable) whose results the check command prints.
//
// The sandbox does not manage the process it wraps. Pipes, exit status,
// and cancellation belong to the script engine in lib/script.
package sandbox
