// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

type codedError struct{ code int }

func (e codedError) Error() string { return fmt.Sprintf("exit %d", e.code) }
func (e codedError) ExitCode() int { return e.code }

func TestReport(t *testing.T) {
	var stderr bytes.Buffer
	if code := report(&stderr, errors.New("line 3: boom")); code != 1 {
		t.Errorf("report returned %d, want 1", code)
	}
	if stderr.String() != "error: line 3: boom\n" {
		t.Errorf("stderr = %q", stderr.String())
	}

	stderr.Reset()
	wrapped := fmt.Errorf("check: %w", codedError{code: 2})
	if code := report(&stderr, wrapped); code != 2 {
		t.Errorf("report returned %d, want 2", code)
	}
	if stderr.Len() != 0 {
		t.Errorf("coded errors should print nothing, got %q", stderr.String())
	}
}
