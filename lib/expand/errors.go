// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package expand

import (
	"fmt"

	"github.com/bureau-foundation/bureau-expand/lib/directive"
)

// ErrorKind classifies an expansion failure.
type ErrorKind int

const (
	// ArgumentError is malformed directive syntax.
	ArgumentError ErrorKind = iota + 1
	// ResourceError is a file that cannot be opened, read, or stat'd.
	ResourceError
	// StructuralError is a script block without its @end.
	StructuralError
	// SubprocessError is a script that failed to start or exited
	// unsuccessfully.
	SubprocessError
)

func (k ErrorKind) String() string {
	switch k {
	case ArgumentError:
		return "argument error"
	case ResourceError:
		return "resource error"
	case StructuralError:
		return "structural error"
	case SubprocessError:
		return "subprocess error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a fatal expansion failure tied to a template line.
type Error struct {
	Kind ErrorKind

	// Line is the 1-based number of the offending line. For
	// unterminated blocks it is the opening directive's line.
	Line int

	// Text is the literal text of that line.
	Text string

	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d %q: %s: %v", e.Line, e.Text, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func lineError(kind ErrorKind, line directive.Line, err error) *Error {
	return &Error{Kind: kind, Line: line.Number, Text: line.Text, Err: err}
}
