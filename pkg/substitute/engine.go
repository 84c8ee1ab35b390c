// Package substitute implements the line substitution pass: each line gets
// at most one token of the input vocabulary replaced by the token at the same
// index of the output vocabulary.
//
// Candidates are tried from the last index of the input vocabulary to the
// first, and the first one found anywhere in the line wins. Later entries are
// typically the more specific ones (ForStart after For), so they are detected
// before the shorter tokens they contain. Matching is a plain substring
// search; a token inside a larger word still matches.
package substitute

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	rferrors "github.com/provide-io/reformatter/pkg/errors"
	"github.com/provide-io/reformatter/pkg/logging"
	"github.com/provide-io/reformatter/pkg/vocab"
)

// Match describes what happened to a single line.
type Match struct {
	// Line is the transformed line.
	Line string
	// Matched is false when no input token occurs in the line.
	Matched bool
	// Index of the matched token in the input vocabulary.
	Index int
	// Position is the byte offset of the leftmost occurrence.
	Position int
	// Token is the matched input token.
	Token string
	// Replacement is what the token was replaced with; empty in delete mode.
	Replacement string
	// Deleted is set when the output vocabulary is empty.
	Deleted bool
}

// Engine applies one vocabulary pairing. It holds no mutable state and may be
// shared between goroutines.
type Engine struct {
	input  *vocab.Vocabulary
	output *vocab.Vocabulary
	opts   options
	logger hclog.Logger
}

// New creates an Engine that rewrites input tokens into output tokens. An
// empty output vocabulary selects delete mode. Vocabularies of different
// length are accepted; a match beyond the shorter one fails at that line.
func New(input, output *vocab.Vocabulary, opts ...Option) (*Engine, error) {
	if input.IsEmpty() {
		return nil, &rferrors.VocabularyError{Reason: "input vocabulary is empty"}
	}
	if output == nil {
		output = vocab.New(vocab.Delete, nil)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		input:  input,
		output: output,
		opts:   o,
		logger: logging.OrNull(o.logger).Named("substitute"),
	}

	if !output.IsEmpty() && output.Len() != input.Len() {
		e.logger.Warn("⚠️ Vocabulary lengths differ",
			"input", input.Name, "input_len", input.Len(),
			"output", output.Name, "output_len", output.Len())
	}
	e.logger.Debug("🔧 Engine ready",
		"input", input.Name, "output", output.Name,
		"delete_mode", output.IsEmpty(), "delete_policy", o.policy.String())

	return e, nil
}

// DeleteMode reports whether matches are removed rather than replaced.
func (e *Engine) DeleteMode() bool {
	return e.output.IsEmpty()
}

// Line transforms a single line.
func (e *Engine) Line(line string) (Match, error) {
	for i := e.input.Len() - 1; i >= 0; i-- {
		tok := e.input.Tokens[i]
		pos := strings.Index(line, tok)
		if pos < 0 {
			continue
		}
		return e.rewrite(line, i, pos)
	}
	return Match{Line: line, Index: -1, Position: -1}, nil
}

func (e *Engine) rewrite(line string, i, pos int) (Match, error) {
	tok := e.input.Tokens[i]
	m := Match{
		Line:     line,
		Matched:  true,
		Index:    i,
		Position: pos,
		Token:    tok,
	}

	if e.DeleteMode() {
		m.Deleted = true
		if e.opts.policy == DeleteMatch {
			m.Line = line[:pos] + line[pos+len(tok):]
		}
		return m, nil
	}

	repl, ok := e.output.Token(i)
	if !ok {
		return Match{}, &rferrors.IndexOutOfRangeError{Index: i, Token: tok, Len: e.output.Len()}
	}
	m.Replacement = repl
	m.Line = line[:pos] + repl + line[pos+len(tok):]
	return m, nil
}

// Lines transforms every line, keeping order and count. On error no lines
// are returned.
func (e *Engine) Lines(ctx context.Context, lines []string) ([]string, Stats, error) {
	matches := make([]Match, len(lines))

	var err error
	if e.opts.workers <= 1 || len(lines) < 2 {
		err = e.sequential(ctx, lines, matches)
	} else {
		err = e.parallel(ctx, lines, matches)
	}
	if err != nil {
		return nil, Stats{}, err
	}

	out := make([]string, len(lines))
	stats := newStats()
	for i, m := range matches {
		out[i] = m.Line
		stats.record(m)
	}

	e.logger.Debug("✅ Lines transformed",
		"lines", stats.Lines, "substituted", stats.Substituted,
		"deleted", stats.Deleted, "unchanged", stats.Unchanged)
	return out, stats, nil
}

func (e *Engine) sequential(ctx context.Context, lines []string, matches []Match) error {
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		m, err := e.Line(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		matches[i] = m
	}
	return nil
}

// parallel splits lines into one contiguous chunk per worker. Each worker
// writes only its own slots of matches.
func (e *Engine) parallel(ctx context.Context, lines []string, matches []Match) error {
	g, ctx := errgroup.WithContext(ctx)

	workers := e.opts.workers
	if workers > len(lines) {
		workers = len(lines)
	}
	chunk := (len(lines) + workers - 1) / workers

	for start := 0; start < len(lines); start += chunk {
		end := start + chunk
		if end > len(lines) {
			end = len(lines)
		}
		start := start
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				m, err := e.Line(lines[i])
				if err != nil {
					return fmt.Errorf("line %d: %w", i+1, err)
				}
				matches[i] = m
			}
			return nil
		})
	}

	e.logger.Trace("🧵 Parallel transform", "workers", workers, "chunk", chunk)
	return g.Wait()
}
