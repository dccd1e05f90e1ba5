package conllup

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jamesainslie/go-conllup/token"
)

// ctxCheckInterval is how many lines are read between context checks.
const ctxCheckInterval = 1024

// Mode is the granularity at which filtering decisions apply.
type Mode int

const (
	// ModeDocument applies decisions to the whole document.
	ModeDocument Mode = iota
	// ModeSentence applies decisions to each sentence of a document that
	// declared partial dataset membership.
	ModeSentence
)

func (m Mode) String() string {
	if m == ModeSentence {
		return "sentence"
	}
	return "document"
}

// Stats summarises one Generate run.
type Stats struct {
	Lines            int
	Documents        int
	DocumentsKept    int
	DocumentsDropped int
	SentencesKept    int
	SentencesDropped int
	Tokens           int // token lines projected (kept or later dropped)
	PeakBuffered     int // largest number of bytes held back at once
}

// Generator converts CONLLUP to CONLLU. A Generator holds only
// configuration and is safe for concurrent use; every Generate call owns
// its own stream state.
type Generator struct {
	policy     policy
	transfers  token.Transfers
	keepStatus bool
	logger     *slog.Logger
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Generator{
		policy:     cfg.policy,
		transfers:  cfg.transfers,
		keepStatus: cfg.keepStatus,
		logger:     cfg.logger,
	}
}

// Generate reads CONLLUP from r and writes CONLLU to w in a single pass.
// Output already produced before an error is flushed to w.
func (g *Generator) Generate(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	out := bufio.NewWriter(w)
	s := newStream(g, out)

	err := s.run(ctx, bufio.NewReader(r))
	s.stats.Lines = s.line
	if ferr := out.Flush(); ferr != nil && err == nil {
		err = fmt.Errorf("writing output: %w", ferr)
	}
	return s.stats, err
}

func (s *stream) run(ctx context.Context, r *bufio.Reader) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}

	for {
		line, rerr := r.ReadString('\n')
		if line != "" {
			s.line++
			if s.line%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return fmt.Errorf("%w: %w", ErrCanceled, err)
				}
			}
			if err := s.dispatch(line); err != nil {
				return err
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return fmt.Errorf("reading input: %w", rerr)
		}
	}

	return s.closeDocument()
}
