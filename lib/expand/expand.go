// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package expand

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/bureau-expand/lib/clock"
	"github.com/bureau-foundation/bureau-expand/lib/directive"
	"github.com/bureau-foundation/bureau-expand/lib/script"
)

// ScriptRunner executes a script block body and returns its stdout.
// *script.Engine implements it.
type ScriptRunner interface {
	Run(ctx context.Context, language script.Language, body []byte) ([]byte, error)
}

// Options configures an Expander.
type Options struct {
	// Embed controls @embed rendering and is used as given, so an
	// empty Delimiter joins values directly. The zero value selects
	// DefaultEmbedFormat; a non-positive MaxBytes selects
	// DefaultMaxBytes.
	Embed EmbedFormat

	// Scripts runs @bash, @python, and @perl bodies. Templates with
	// script blocks fail when it is nil.
	Scripts ScriptRunner

	// Logger receives per-directive debug events. Default: discard.
	Logger *slog.Logger

	// Clock times each directive. Default: clock.Real().
	Clock clock.Clock
}

// Expander expands template documents. An Expander is not safe for
// concurrent use; it may be reused for successive documents.
type Expander struct {
	embed   EmbedFormat
	scripts ScriptRunner
	logger  *slog.Logger
	clock   clock.Clock

	output outputBuffer
}

// New creates an Expander. It rejects an embed format that cannot
// render a byte.
func New(options Options) (*Expander, error) {
	embed := options.Embed
	if embed == (EmbedFormat{}) {
		embed = DefaultEmbedFormat()
	}
	if embed.MaxBytes <= 0 {
		embed.MaxBytes = DefaultMaxBytes
	}
	if err := CheckFormat(embed.Format); err != nil {
		return nil, err
	}

	expander := &Expander{
		embed:   embed,
		scripts: options.Scripts,
		logger:  options.Logger,
		clock:   options.Clock,
	}
	if expander.logger == nil {
		expander.logger = slog.New(slog.DiscardHandler)
	}
	if expander.clock == nil {
		expander.clock = clock.Real()
	}
	return expander, nil
}

// Expand returns the expansion of document. Every literal line is
// followed by a newline in the output, including a final line that had
// none. On error nothing is returned.
func (e *Expander) Expand(ctx context.Context, document []byte) ([]byte, error) {
	e.output = outputBuffer{}
	e.output.grow(len(document))

	scanner := directive.NewScanner(document)
	for {
		line, ok := scanner.Next()
		if !ok {
			break
		}

		parsed, isDirective, err := directive.Parse(line)
		if err != nil {
			return nil, lineError(ArgumentError, line, err)
		}
		if !isDirective {
			if line.IsDirective() {
				e.logger.Debug("unrecognized directive copied as text", "line", line.Number, "text", line.Text)
			}
			e.output.writeString(line.Text)
			e.output.writeByte('\n')
			continue
		}

		if parsed.Kind.IsScript() {
			body, err := scanner.Body()
			if err != nil {
				return nil, lineError(StructuralError, line, fmt.Errorf("%s block: %w", parsed.Kind, err))
			}
			parsed.Body = body
		}

		if err := e.dispatch(ctx, parsed); err != nil {
			return nil, err
		}
	}

	return e.output.take(), nil
}

// dispatch runs the rule for d and appends its expansion.
func (e *Expander) dispatch(ctx context.Context, d directive.Directive) error {
	start := e.clock.Now()
	before := e.output.len()

	var err error
	switch d.Kind {
	case directive.Sizeof:
		err = e.expandSizeof(d)
	case directive.Embed:
		err = e.expandEmbed(d)
	case directive.Include:
		err = e.expandInclude(d)
	case directive.Bash, directive.Python, directive.Perl:
		err = e.expandScript(ctx, d)
	default:
		err = lineError(ArgumentError, d.Line, fmt.Errorf("no rule for %s", d.Kind))
	}
	if err != nil {
		return err
	}

	e.logger.Debug("directive expanded",
		"directive", d.Kind.String(),
		"line", d.Line.Number,
		"bytes", e.output.len()-before,
		"elapsed", e.clock.Since(start),
	)
	return nil
}

func (e *Expander) expandScript(ctx context.Context, d directive.Directive) error {
	if e.scripts == nil {
		return lineError(SubprocessError, d.Line, errors.New("script blocks are disabled"))
	}
	language, _ := script.LanguageFor(d.Kind)

	output, err := e.scripts.Run(ctx, language, d.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return lineError(SubprocessError, d.Line, err)
	}
	e.output.write(output)
	return nil
}
