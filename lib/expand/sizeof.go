// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package expand

import (
	"os"
	"strconv"

	"github.com/bureau-foundation/bureau-expand/lib/directive"
)

// expandSizeof writes "    <size> <trailing>\n".
func (e *Expander) expandSizeof(d directive.Directive) error {
	info, err := os.Stat(d.Path)
	if err != nil {
		return lineError(ResourceError, d.Line, err)
	}

	e.output.writeString("    ")
	e.output.writeString(strconv.FormatInt(info.Size(), 10))
	e.output.writeByte(' ')
	e.output.writeString(d.Trailing)
	e.output.writeByte('\n')
	return nil
}
