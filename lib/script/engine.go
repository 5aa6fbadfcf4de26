// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/bureau-expand/lib/clock"
	"github.com/bureau-foundation/bureau-expand/lib/directive"
	"github.com/bureau-foundation/bureau-expand/sandbox"
)

// Language identifies a script block's interpreter.
type Language string

const (
	Bash   Language = "bash"
	Python Language = "python"
	Perl   Language = "perl"
)

// Languages lists every supported language in a stable order.
var Languages = []Language{Bash, Python, Perl}

// LanguageFor maps a script directive kind to its language.
func LanguageFor(kind directive.Kind) (Language, bool) {
	switch kind {
	case directive.Bash:
		return Bash, true
	case directive.Python:
		return Python, true
	case directive.Perl:
		return Perl, true
	}
	return "", false
}

// Interpreter is the command that reads a script body on stdin.
type Interpreter struct {
	// Path is the executable, resolved on PATH when it has no slash.
	Path string

	// Args are passed after Path.
	Args []string
}

// Argv returns the interpreter's full argument vector.
func (i Interpreter) Argv() []string {
	return append([]string{i.Path}, i.Args...)
}

// DefaultInterpreters returns the interpreters used when the
// configuration names none. bash needs -s to read the script from
// stdin; python3 and perl do so when given no script argument.
func DefaultInterpreters() map[Language]Interpreter {
	return map[Language]Interpreter{
		Bash:   {Path: "bash", Args: []string{"-s"}},
		Python: {Path: "python3"},
		Perl:   {Path: "perl"},
	}
}

// ExitError reports a script that exited unsuccessfully.
type ExitError struct {
	Language Language

	// Code is the exit status, or -1 if the child was killed by a
	// signal.
	Code int

	// Signal names the terminating signal when Code is -1.
	Signal string
}

func (e *ExitError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("%s script terminated by signal %s", e.Language, e.Signal)
	}
	return fmt.Sprintf("%s script exited with status %d", e.Language, e.Code)
}

// StartError reports a script that could not be spawned.
type StartError struct {
	Language Language
	Argv     []string
	Err      error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("starting %s interpreter %q: %v", e.Language, e.Argv[0], e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

// Config configures an Engine.
type Config struct {
	// Interpreters overrides entries of DefaultInterpreters.
	Interpreters map[Language]Interpreter

	// Wrapper confines every interpreter. Required.
	Wrapper sandbox.Wrapper

	// Stderr receives the children's standard error. Default: os.Stderr.
	Stderr io.Writer

	// Dir is the children's working directory. Default: inherited.
	Dir string

	// Logger for per-run debug events. Default: discard.
	Logger *slog.Logger

	// Clock times each run. Default: clock.Real().
	Clock clock.Clock
}

// Engine runs script bodies. It is safe for concurrent use.
type Engine struct {
	interpreters map[Language]Interpreter
	wrapper      sandbox.Wrapper
	stderr       io.Writer
	dir          string
	logger       *slog.Logger
	clock        clock.Clock
}

// New creates an Engine from config.
func New(config Config) (*Engine, error) {
	if config.Wrapper == nil {
		return nil, fmt.Errorf("script engine requires a sandbox wrapper")
	}

	interpreters := DefaultInterpreters()
	for language, interpreter := range config.Interpreters {
		if interpreter.Path == "" {
			continue
		}
		interpreters[language] = interpreter
	}

	engine := &Engine{
		interpreters: interpreters,
		wrapper:      config.Wrapper,
		stderr:       config.Stderr,
		dir:          config.Dir,
		logger:       config.Logger,
		clock:        config.Clock,
	}
	if engine.stderr == nil {
		engine.stderr = os.Stderr
	}
	if engine.logger == nil {
		engine.logger = slog.New(slog.DiscardHandler)
	}
	if engine.clock == nil {
		engine.clock = clock.Real()
	}
	return engine, nil
}

// Interpreter returns the interpreter configured for language.
func (e *Engine) Interpreter(language Language) (Interpreter, bool) {
	interpreter, ok := e.interpreters[language]
	return interpreter, ok
}

// Run executes body with the interpreter for language and returns
// everything the script wrote to stdout.
func (e *Engine) Run(ctx context.Context, language Language, body []byte) ([]byte, error) {
	interpreter, ok := e.interpreters[language]
	if !ok {
		return nil, fmt.Errorf("no interpreter configured for %s", language)
	}
	argv, err := e.wrapper.Wrap(interpreter.Argv())
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = e.dir
	cmd.Stderr = e.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stdout pipe: %w", err)
	}

	start := e.clock.Now()
	if err := cmd.Start(); err != nil {
		return nil, &StartError{Language: language, Argv: argv, Err: err}
	}
	e.logger.Debug("script started",
		"language", language,
		"argv", argv,
		"pid", cmd.Process.Pid,
		"body_bytes", len(body),
	)

	var output []byte
	var group errgroup.Group
	group.Go(func() error {
		_, err := io.Copy(stdin, bytes.NewReader(body))
		closeErr := stdin.Close()
		if err == nil {
			err = closeErr
		}
		if err != nil && !isClosedPipe(err) {
			return fmt.Errorf("writing script body: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		output, err = io.ReadAll(stdout)
		if err != nil {
			return fmt.Errorf("reading script output: %w", err)
		}
		return nil
	})

	ioErr := group.Wait()
	waitErr := cmd.Wait()

	e.logger.Debug("script finished",
		"language", language,
		"output_bytes", len(output),
		"elapsed", e.clock.Since(start),
	)

	if waitErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			result := &ExitError{Language: language, Code: exitErr.ExitCode()}
			if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
				result.Signal = status.Signal().String()
			}
			return nil, result
		}
		return nil, fmt.Errorf("waiting for %s script: %w", language, waitErr)
	}
	if ioErr != nil {
		return nil, ioErr
	}
	return output, nil
}

// isClosedPipe reports whether err comes from writing to a child that
// has stopped reading its stdin.
func isClosedPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, os.ErrClosed)
}
