// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/bureau-expand/lib/directive"
	"github.com/bureau-foundation/bureau-expand/lib/testutil"
	"github.com/bureau-foundation/bureau-expand/sandbox"
)

func newTestEngine(t *testing.T, config Config) *Engine {
	t.Helper()
	if config.Wrapper == nil {
		config.Wrapper = sandbox.Direct{}
	}
	engine, err := New(config)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return engine
}

func TestRunBash(t *testing.T) {
	testutil.RequireExecutable(t, "bash")
	engine := newTestEngine(t, Config{})

	output, err := engine.Run(context.Background(), Bash, []byte("echo hi\nprintf 'x=%d\\n' $((6*7))\n"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got, want := string(output), "hi\nx=42\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunPythonAndPerl(t *testing.T) {
	tests := []struct {
		language   Language
		executable string
		body       string
	}{
		{Python, "python3", "print('static int x = %d;' % (1 << 4))\n"},
		{Perl, "perl", "printf(\"static int x = %d;\\n\", 1 << 4);\n"},
	}
	for _, test := range tests {
		t.Run(string(test.language), func(t *testing.T) {
			testutil.RequireExecutable(t, test.executable)
			engine := newTestEngine(t, Config{})
			output, err := engine.Run(context.Background(), test.language, []byte(test.body))
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if got, want := string(output), "static int x = 16;\n"; got != want {
				t.Errorf("output = %q, want %q", got, want)
			}
		})
	}
}

func TestRunEmptyBody(t *testing.T) {
	testutil.RequireExecutable(t, "bash")
	engine := newTestEngine(t, Config{})

	output, err := engine.Run(context.Background(), Bash, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(output) != 0 {
		t.Errorf("expected no output, got %q", output)
	}
}

func TestRunExitStatus(t *testing.T) {
	testutil.RequireExecutable(t, "bash")
	var stderr bytes.Buffer
	engine := newTestEngine(t, Config{Stderr: &stderr})

	_, err := engine.Run(context.Background(), Bash, []byte("echo partial\necho oops >&2\nexit 3\n"))
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T: %v", err, err)
	}
	if exitErr.Code != 3 || exitErr.Language != Bash {
		t.Errorf("unexpected exit error: %+v", exitErr)
	}
	if got := stderr.String(); got != "oops\n" {
		t.Errorf("stderr = %q, want %q", got, "oops\n")
	}
}

func TestRunKilledBySignal(t *testing.T) {
	testutil.RequireExecutable(t, "bash")
	engine := newTestEngine(t, Config{})

	_, err := engine.Run(context.Background(), Bash, []byte("kill -KILL $$\n"))
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T: %v", err, err)
	}
	if exitErr.Code != -1 || exitErr.Signal != "killed" {
		t.Errorf("expected signal termination, got %+v", exitErr)
	}
}

func TestRunStartError(t *testing.T) {
	engine := newTestEngine(t, Config{
		Interpreters: map[Language]Interpreter{
			Perl: {Path: "/nonexistent/bureau-expand/perl"},
		},
	})

	_, err := engine.Run(context.Background(), Perl, []byte("print 1;\n"))
	var startErr *StartError
	if !errors.As(err, &startErr) {
		t.Fatalf("expected *StartError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "/nonexistent/bureau-expand/perl") {
		t.Errorf("error should name the interpreter: %v", err)
	}
}

func TestRunChildIgnoresInput(t *testing.T) {
	testutil.RequireExecutable(t, "bash")
	// bash -c ignores stdin entirely, so the body write sees EPIPE.
	engine := newTestEngine(t, Config{
		Interpreters: map[Language]Interpreter{
			Bash: {Path: "bash", Args: []string{"-c", "echo done"}},
		},
	})

	body := bytes.Repeat([]byte("# unread\n"), 1<<16)
	output, err := engine.Run(context.Background(), Bash, body)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if string(output) != "done\n" {
		t.Errorf("output = %q, want %q", output, "done\n")
	}
}

func TestRunLargeOutputBeforeInputConsumed(t *testing.T) {
	testutil.RequireExecutable(t, "bash")
	engine := newTestEngine(t, Config{})

	// bash reads and executes line by line: the loop writes about 1 MiB
	// before the padding after it has been consumed. A sequential
	// write-then-read would fill both pipes and hang.
	var body bytes.Buffer
	body.WriteString("for i in $(seq 1 16384); do printf '%063d\\n' $i; done\n")
	for body.Len() < 1<<20 {
		body.WriteString("# padding padding padding padding padding padding padding padding\n")
	}

	type result struct {
		output []byte
		err    error
	}
	done := make(chan result, 1)
	go func() {
		output, err := engine.Run(context.Background(), Bash, body.Bytes())
		done <- result{output, err}
	}()

	got := testutil.RequireReceive(t, done, 60*time.Second, "script with large output deadlocked")
	if got.err != nil {
		t.Fatalf("Run failed: %v", got.err)
	}
	if len(got.output) != 16384*64 {
		t.Errorf("output length = %d, want %d", len(got.output), 16384*64)
	}
}

func TestRunCancelled(t *testing.T) {
	testutil.RequireExecutable(t, "bash")
	engine := newTestEngine(t, Config{})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := engine.Run(ctx, Bash, []byte("exec sleep 30\n"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

// prefixWrapper stands in for a sandbox tool.
type prefixWrapper struct{ prefix []string }

func (w prefixWrapper) Name() string       { return "prefix" }
func (w prefixWrapper) Executable() string { return w.prefix[0] }
func (w prefixWrapper) Wrap(argv []string) ([]string, error) {
	return append(append([]string(nil), w.prefix...), argv...), nil
}

func TestRunThroughWrapper(t *testing.T) {
	testutil.RequireExecutable(t, "bash")
	testutil.RequireExecutable(t, "env")
	engine := newTestEngine(t, Config{
		Wrapper: prefixWrapper{prefix: []string{"env", "BUREAU_EXPAND_WRAPPED=yes"}},
	})

	output, err := engine.Run(context.Background(), Bash, []byte("echo $BUREAU_EXPAND_WRAPPED\n"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if string(output) != "yes\n" {
		t.Errorf("output = %q, want %q", output, "yes\n")
	}
}

func TestNewRequiresWrapper(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error without a wrapper")
	}
}

func TestLanguageFor(t *testing.T) {
	for kind, want := range map[directive.Kind]Language{
		directive.Bash:   Bash,
		directive.Python: Python,
		directive.Perl:   Perl,
	} {
		got, ok := LanguageFor(kind)
		if !ok || got != want {
			t.Errorf("LanguageFor(%s) = %q, %v; want %q", kind, got, ok, want)
		}
	}
	if _, ok := LanguageFor(directive.Embed); ok {
		t.Error("LanguageFor(@embed) should not map to a language")
	}
}
