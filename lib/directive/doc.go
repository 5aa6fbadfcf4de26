// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package directive scans template documents into lines and recognizes
// the @-directives embedded in them.
//
// [Scanner] walks a document one line at a time with a cursor that
// only moves forward. A line whose first non-whitespace byte is the
// sigil '@' is a candidate directive; [Parse] turns it into a
// [Directive] when the keyword after the sigil is one of the fixed set
// (@sizeof, @embed, @include, @bash, @python, @perl). Candidates with
// any other keyword are reported as not-a-directive and the caller
// treats them as literal text.
//
// Script directives span several lines. After parsing the opening line
// the caller collects the body with [Scanner.Body], which consumes
// lines up to and including the @end sentinel. The sentinel itself is
// never part of the body.
//
// [Tokens] splits a line on single spaces the way directive arguments
// are read: each call to Next returns one token and Rest returns the
// unconsumed remainder verbatim.
package directive
