// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package directive

import (
	"fmt"
	"strconv"
)

// MaxPathLength is the longest file path a directive may name.
const MaxPathLength = 4095

// Kind identifies a directive.
type Kind int

const (
	// Sizeof expands to the size of a file in bytes.
	Sizeof Kind = iota + 1
	// Embed expands to a formatted byte dump of a file.
	Embed
	// Include expands to the raw contents of a file.
	Include
	// Bash expands to the output of a bash script body.
	Bash
	// Python expands to the output of a python3 script body.
	Python
	// Perl expands to the output of a perl script body.
	Perl
)

var keywords = map[string]Kind{
	"sizeof":  Sizeof,
	"embed":   Embed,
	"include": Include,
	"bash":    Bash,
	"python":  Python,
	"perl":    Perl,
}

// Lookup returns the directive kind for keyword, which is given without
// the sigil. Matching is exact and case-sensitive.
func Lookup(keyword string) (Kind, bool) {
	kind, ok := keywords[keyword]
	return kind, ok
}

// String returns the directive as written in a template, sigil included.
func (k Kind) String() string {
	for keyword, kind := range keywords {
		if kind == k {
			return string(Sigil) + keyword
		}
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsScript reports whether the directive takes a multi-line body
// terminated by the sentinel.
func (k Kind) IsScript() bool {
	return k == Bash || k == Python || k == Perl
}

// Directive is one parsed directive line. For script kinds the Body is
// filled in by the caller from [Scanner.Body].
type Directive struct {
	Kind Kind

	// Line is the directive's opening line.
	Line Line

	// Path is the target file of @sizeof, @embed and @include.
	Path string

	// Trailing is the free-form text following the @sizeof path.
	Trailing string

	// Limit caps the bytes read by @embed when HasLimit is set.
	Limit    int64
	HasLimit bool

	// Body is the accumulated script text of a multi-line directive.
	Body []byte
}

// Parse classifies line. It returns false when the line is not a
// directive line or names an unrecognized keyword; such lines are
// literal text. Malformed arguments of a recognized directive are
// returned as errors.
func Parse(line Line) (Directive, bool, error) {
	if !line.IsDirective() {
		return Directive{}, false, nil
	}

	tokens := NewTokens(line.Text)
	keyword := tokens.Next()
	kind, ok := Lookup(keyword[1:])
	if !ok {
		return Directive{}, false, nil
	}

	parsed := Directive{Kind: kind, Line: line}
	switch kind {
	case Sizeof:
		path, err := pathArgument(tokens)
		if err != nil {
			return Directive{}, true, err
		}
		parsed.Path = path
		parsed.Trailing = tokens.Rest()

	case Embed:
		path, err := pathArgument(tokens)
		if err != nil {
			return Directive{}, true, err
		}
		parsed.Path = path
		limit, hasLimit, err := limitAttribute(tokens)
		if err != nil {
			return Directive{}, true, err
		}
		parsed.Limit, parsed.HasLimit = limit, hasLimit

	case Include:
		path, err := pathArgument(tokens)
		if err != nil {
			return Directive{}, true, err
		}
		parsed.Path = path
	}

	return parsed, true, nil
}

func pathArgument(tokens *Tokens) (string, error) {
	path := tokens.Next()
	if path == "" {
		return "", fmt.Errorf("missing file path")
	}
	if len(path) > MaxPathLength {
		return "", fmt.Errorf("path is too long (%d bytes, limit %d)", len(path), MaxPathLength)
	}
	return path, nil
}

// limitAttribute parses an optional "limit(N)" following the @embed
// path. Anything other than the attribute is ignored.
func limitAttribute(tokens *Tokens) (int64, bool, error) {
	tokens.TrimLeft()
	if !tokens.ConsumePrefix("limit(") {
		return 0, false, nil
	}

	digits := tokens.ConsumeDigits()
	if digits == "" {
		return 0, false, fmt.Errorf("limit: expected a decimal byte count after 'limit('")
	}
	limit, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("limit: %w", err)
	}
	if !tokens.ConsumePrefix(")") {
		return 0, false, fmt.Errorf("limit: expected ')'")
	}
	return limit, true, nil
}
