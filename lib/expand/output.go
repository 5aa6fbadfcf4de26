// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package expand

import "fmt"

// outputBuffer accumulates the expanded document. It is append-only
// and handed out once, by take.
type outputBuffer struct {
	data  []byte
	taken bool
}

func (b *outputBuffer) write(p []byte) {
	b.data = append(b.data, p...)
}

func (b *outputBuffer) writeString(s string) {
	b.data = append(b.data, s...)
}

func (b *outputBuffer) writeByte(c byte) {
	b.data = append(b.data, c)
}

func (b *outputBuffer) appendf(format string, args ...any) {
	b.data = fmt.Appendf(b.data, format, args...)
}

// grow reserves room for n more bytes.
func (b *outputBuffer) grow(n int) {
	if n <= cap(b.data)-len(b.data) {
		return
	}
	grown := make([]byte, len(b.data), len(b.data)+n)
	copy(grown, b.data)
	b.data = grown
}

func (b *outputBuffer) len() int {
	return len(b.data)
}

// take returns the accumulated bytes. It panics if called twice.
func (b *outputBuffer) take() []byte {
	if b.taken {
		panic("expand: output buffer taken twice")
	}
	b.taken = true
	data := b.data
	b.data = nil
	return data
}
