// Package validate converts a CONLLUP corpus without filtering and pipes
// the result through the Universal Dependencies validator.
package validate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-conllup"
)

// DefaultTimeout bounds a validator run.
const DefaultTimeout = 90 * time.Second

// DefaultCommand runs the UD validator from a ud-tools checkout.
var DefaultCommand = []string{"python3", "ud-tools/validate.py"}

var (
	// ErrNoLanguage indicates Options.Lang was not set.
	ErrNoLanguage = errors.New("validate: language is required")

	// ErrValidatorFailed indicates the validator exited with a non-zero status.
	ErrValidatorFailed = errors.New("validate: validation failed")

	// ErrValidatorTimeout indicates the validator did not finish in time.
	ErrValidatorTimeout = errors.New("validate: validator timed out")
)

// Options configures a validator run. Zero values select the validator's
// strict defaults.
type Options struct {
	Command []string // validator argv prefix (default: DefaultCommand)
	Timeout time.Duration

	Quiet         bool
	MaxErr        int // 0 leaves the validator default
	Lang          string
	Level         int // 0 means 5
	MultipleRoots bool
	NoTreeText    bool
	NoSpaceAfter  bool
	Coref         bool

	Stdout io.Writer // default os.Stdout
	Stderr io.Writer // default os.Stderr
	Logger *slog.Logger
}

// Args returns the validator flags for o.
func (o Options) Args() []string {
	var args []string
	if o.Quiet {
		args = append(args, "--quiet")
	}
	if o.MaxErr > 0 {
		args = append(args, "--max-err", strconv.Itoa(o.MaxErr))
	}
	if o.Lang != "" {
		args = append(args, "--lang", o.Lang)
	}
	level := o.Level
	if level == 0 {
		level = 5
	}
	args = append(args, "--level", strconv.Itoa(level))
	if o.MultipleRoots {
		args = append(args, "--multiple-roots")
	}
	if o.NoTreeText {
		args = append(args, "--no-tree-text")
	}
	if o.NoSpaceAfter {
		args = append(args, "--no-space-after")
	}
	if o.Coref {
		args = append(args, "--coref")
	}
	return args
}

// Run converts r to CONLLU and feeds it to the validator's stdin. The
// returned Stats describe the conversion.
func Run(ctx context.Context, r io.Reader, opts Options) (conllup.Stats, error) {
	if opts.Lang == "" {
		return conllup.Stats{}, ErrNoLanguage
	}
	command := opts.Command
	if len(command) == 0 {
		command = DefaultCommand
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	argv := append(append([]string{}, command[1:]...), opts.Args()...)
	cmd := exec.CommandContext(ctx, command[0], argv...)
	cmd.Stdout = writerOr(opts.Stdout, os.Stdout)
	cmd.Stderr = writerOr(opts.Stderr, os.Stderr)
	cmd.WaitDelay = time.Second

	pr, pw := io.Pipe()
	cmd.Stdin = pr

	logger.Debug("starting validator", "command", command[0], "args", argv, "timeout", timeout)
	if err := cmd.Start(); err != nil {
		return conllup.Stats{}, fmt.Errorf("starting validator: %w", err)
	}

	var (
		g     errgroup.Group
		stats conllup.Stats
	)
	gen := conllup.New(conllup.WithLogger(logger))
	g.Go(func() error {
		s, err := gen.Generate(ctx, r, pw)
		stats = s
		pw.CloseWithError(err)
		return err
	})

	waitErr := cmd.Wait()
	// Unblocks the generator if the validator stopped reading early.
	_ = pr.Close()
	genErr := g.Wait()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return stats, fmt.Errorf("%w after %s", ErrValidatorTimeout, timeout)
	}
	if genErr != nil && !errors.Is(genErr, io.ErrClosedPipe) {
		return stats, genErr
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return stats, fmt.Errorf("%w: %w", ErrValidatorFailed, waitErr)
		}
		return stats, fmt.Errorf("running validator: %w", waitErr)
	}

	logger.Debug("validator passed", "lines", stats.Lines, "documents", stats.Documents)
	return stats, nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
