// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package directive

import "strings"

const whitespace = " \t\r\v\f"

// Tokens is a cursor over the space-separated tokens of a line.
type Tokens struct {
	rest string
}

// NewTokens creates a token cursor over text with leading whitespace
// removed.
func NewTokens(text string) *Tokens {
	return &Tokens{rest: strings.TrimLeft(text, whitespace)}
}

// Next returns the text up to the next space and consumes it along with
// the space. Leading whitespace is skipped first and trailing
// whitespace (a carriage return from CRLF input, a tab) is trimmed from
// the returned token. Next returns "" when nothing remains.
func (t *Tokens) Next() string {
	t.rest = strings.TrimLeft(t.rest, whitespace)
	token := t.rest
	t.rest = ""
	if index := strings.IndexByte(token, ' '); index >= 0 {
		token, t.rest = token[:index], token[index+1:]
	}
	return strings.TrimRight(token, whitespace)
}

// Rest returns the unconsumed remainder verbatim.
func (t *Tokens) Rest() string {
	return t.rest
}

// TrimLeft discards leading whitespace from the remainder.
func (t *Tokens) TrimLeft() {
	t.rest = strings.TrimLeft(t.rest, whitespace)
}

// ConsumePrefix removes prefix from the remainder and reports whether it
// was present.
func (t *Tokens) ConsumePrefix(prefix string) bool {
	if !strings.HasPrefix(t.rest, prefix) {
		return false
	}
	t.rest = t.rest[len(prefix):]
	return true
}

// ConsumeDigits removes the leading run of ASCII decimal digits from the
// remainder and returns it. It returns "" when the remainder does not
// start with a digit.
func (t *Tokens) ConsumeDigits() string {
	end := 0
	for end < len(t.rest) && t.rest[end] >= '0' && t.rest[end] <= '9' {
		end++
	}
	digits := t.rest[:end]
	t.rest = t.rest[end:]
	return digits
}
