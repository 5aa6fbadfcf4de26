// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package expand

import (
	"os"

	"github.com/bureau-foundation/bureau-expand/lib/directive"
)

// expandInclude copies the file verbatim. Directives inside it are not
// expanded.
func (e *Expander) expandInclude(d directive.Directive) error {
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return lineError(ResourceError, d.Line, err)
	}
	e.output.write(data)
	return nil
}
