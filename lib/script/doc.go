// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package script runs the bodies of @bash, @python, and @perl blocks.
//
// An [Engine] spawns the configured [Interpreter] for a [Language]
// through a sandbox.Wrapper, writes the block body to the child's
// standard input, and captures its standard output. The child's
// standard error is not captured; it goes to the writer in [Config]
// (the process's own stderr by default).
//
// The stdin writer and the stdout reader run concurrently under an
// errgroup, so a script that produces output before it has consumed
// its whole body cannot deadlock the expander. A child that exits
// without reading all of its input is not an error: the resulting
// EPIPE on the write side is ignored, and the exit status decides.
//
// A non-zero exit is reported as *[ExitError]; failure to spawn the
// wrapper or interpreter is reported as *[StartError]. Cancelling the
// context passed to [Engine.Run] kills the child.
package script
