package conllup

import (
	"errors"
	"fmt"

	"github.com/jamesainslie/go-conllup/token"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrMalformedToken indicates a token line with the wrong column count.
	ErrMalformedToken = token.ErrMalformedToken

	// ErrCanceled indicates the context was done before the input was consumed.
	ErrCanceled = errors.New("conllup: generation canceled")
)

// LineError attaches the 1-based input line number to a parse failure.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
