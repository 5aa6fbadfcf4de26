// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exitCoder is implemented by errors that carry their own exit status,
// such as cli.ExitError.
type exitCoder interface {
	ExitCode() int
}

// Fatal writes "error: err" to stderr and exits with code 1. An error
// carrying an exit status exits with that status instead, without a
// message: the command has already reported it.
func Fatal(err error) {
	os.Exit(report(os.Stderr, err))
}

// report writes the message for err to w and returns the exit status.
func report(w io.Writer, err error) int {
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
