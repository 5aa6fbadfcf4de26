// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package directive

import (
	"errors"
	"strings"
)

// Sigil is the first non-whitespace byte of every directive line.
const Sigil = '@'

// Sentinel terminates the body of a multi-line directive.
const Sentinel = "@end"

// ErrUnterminated is returned by [Scanner.Body] when the document ends
// before the sentinel line.
var ErrUnterminated = errors.New("missing terminating " + Sentinel)

// Line is one line of the document without its trailing newline.
type Line struct {
	// Number is the 1-based line number within the document.
	Number int

	// Text is the literal line content.
	Text string
}

// Trimmed returns the line with leading whitespace removed.
func (l Line) Trimmed() string {
	return strings.TrimLeft(l.Text, " \t\r\v\f")
}

// IsDirective reports whether the line starts with the directive sigil
// after leading whitespace.
func (l Line) IsDirective() bool {
	trimmed := l.Trimmed()
	return len(trimmed) > 0 && trimmed[0] == Sigil
}

// IsSentinel reports whether the line terminates a multi-line
// directive body.
func (l Line) IsSentinel() bool {
	return strings.HasPrefix(l.Trimmed(), Sentinel)
}

// Scanner yields the lines of a document in order. The document is
// borrowed, never modified, and never rewound.
type Scanner struct {
	document string
	offset   int
	line     int
}

// NewScanner creates a scanner positioned at the start of document.
func NewScanner(document []byte) *Scanner {
	return &Scanner{document: string(document)}
}

// Offset returns the cursor position: the number of document bytes
// consumed so far.
func (s *Scanner) Offset() int {
	return s.offset
}

// Next returns the next line and advances past it, including its
// newline. It returns false once the document is exhausted. A final
// line without a trailing newline is still returned.
func (s *Scanner) Next() (Line, bool) {
	if s.offset >= len(s.document) {
		return Line{}, false
	}

	remaining := s.document[s.offset:]
	text := remaining
	consumed := len(remaining)
	if index := strings.IndexByte(remaining, '\n'); index >= 0 {
		text = remaining[:index]
		consumed = index + 1
	}

	s.offset += consumed
	s.line++
	return Line{Number: s.line, Text: text}, true
}

// Body collects the lines following a multi-line directive's opening
// line, each terminated by a newline, until the sentinel. The sentinel
// line is consumed but excluded. Reaching the end of the document first
// returns ErrUnterminated.
func (s *Scanner) Body() ([]byte, error) {
	var body strings.Builder
	for {
		line, ok := s.Next()
		if !ok {
			return nil, ErrUnterminated
		}
		if line.IsSentinel() {
			return []byte(body.String()), nil
		}
		body.WriteString(line.Text)
		body.WriteByte('\n')
	}
}
