// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"check", "", 5},
		{"check", "check", 0},
		{"chekc", "check", 2},
		{"versoin", "version", 2},
		{"perl", "python", 5},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
		if got := levenshtein(test.b, test.a); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.b, test.a, got, test.want)
		}
	}
}

func TestNewLoggerNonTerminal(t *testing.T) {
	var output bytes.Buffer
	logger := NewLogger(&output, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("sandbox disabled", "mode", "unsandboxed")

	text := output.String()
	if strings.Contains(text, "hidden") {
		t.Errorf("info message logged at warn level: %s", text)
	}
	if !strings.Contains(text, `"msg":"sandbox disabled"`) || !strings.Contains(text, `"mode":"unsandboxed"`) {
		t.Errorf("expected JSON output for non-terminal writer, got %s", text)
	}
	if IsTerminal(&output) {
		t.Error("bytes.Buffer reported as terminal")
	}
}
