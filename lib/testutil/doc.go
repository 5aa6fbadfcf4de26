// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for the expander's
// packages.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with time.After fallback) so that tests driving child
// processes fail with a message instead of hanging the suite when a
// pipe deadlocks.
//
// [WriteFile] and [WriteTemplate] create fixture files under
// t.TempDir(). [RequireExecutable] resolves an interpreter on PATH and
// skips the test when it is not installed, so suites still pass on
// minimal build hosts.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
