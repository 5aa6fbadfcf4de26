// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package expand

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bureau-foundation/bureau-expand/lib/directive"
)

// ValuesPerRow is the number of byte values on each @embed row.
const ValuesPerRow = 20

// RowIndent prefixes every @embed row.
const RowIndent = "    "

// DefaultMaxBytes caps an @embed without limit(N): 128 MiB.
const DefaultMaxBytes int64 = 128 << 20

// EmbedFormat controls how @embed renders bytes. It applies to every
// @embed in a run.
type EmbedFormat struct {
	// Format is a fmt verb applied to each byte. Default: "0x%02X".
	Format string

	// Delimiter follows every value except the last. Default: ", ".
	Delimiter string

	// MaxBytes caps the bytes read when no limit(N) is given.
	// Default: DefaultMaxBytes.
	MaxBytes int64
}

// DefaultEmbedFormat returns C-style hex literals separated by ", ".
func DefaultEmbedFormat() EmbedFormat {
	return EmbedFormat{
		Format:    "0x%02X",
		Delimiter: ", ",
		MaxBytes:  DefaultMaxBytes,
	}
}

// CheckFormat renders a probe byte with format and rejects formats
// that fmt reports as malformed, such as a verb that does not apply to
// an integer or a missing operand.
func CheckFormat(format string) error {
	probe := fmt.Sprintf(format, byte(0xAB))
	if strings.Contains(probe, "%!") {
		return fmt.Errorf("embed format %q is not a valid byte format: renders as %q", format, probe)
	}
	return nil
}

// embedLength returns how many bytes to read from a file of the given
// kind and size. Files without a usable size (devices, pipes, empty
// procfs entries) are read up to the cap.
func embedLength(info os.FileInfo, limit int64) int64 {
	size := info.Size()
	if !info.Mode().IsRegular() || size <= 0 {
		return limit
	}
	return min(size, limit)
}

func (e *Expander) expandEmbed(d directive.Directive) error {
	limit := e.embed.MaxBytes
	if d.HasLimit {
		limit = d.Limit
	}

	file, err := os.Open(d.Path)
	if err != nil {
		return lineError(ResourceError, d.Line, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return lineError(ResourceError, d.Line, err)
	}

	data, err := io.ReadAll(io.LimitReader(file, embedLength(info, limit)))
	if err != nil {
		return lineError(ResourceError, d.Line, fmt.Errorf("reading %s: %w", d.Path, err))
	}

	e.renderEmbed(data)
	return nil
}

// renderEmbed writes data as rows of ValuesPerRow formatted values.
// Zero bytes still produce one empty row.
func (e *Expander) renderEmbed(data []byte) {
	format, delimiter := e.embed.Format, e.embed.Delimiter

	// Sized for the default format; the buffer grows past this if needed.
	e.output.grow(len(data)*(4+len(delimiter)) + (len(data)/ValuesPerRow+1)*(len(RowIndent)+1))

	e.output.writeString(RowIndent)
	for i, value := range data {
		if i > 0 && i%ValuesPerRow == 0 {
			e.output.writeByte('\n')
			e.output.writeString(RowIndent)
		}
		e.output.appendf(format, value)
		if i < len(data)-1 {
			e.output.writeString(delimiter)
		}
	}
	e.output.writeByte('\n')
}
