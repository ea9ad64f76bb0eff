package numbering

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps one of these.
var (
	// ErrFormat: a token does not match any of the recognised numbering shapes.
	ErrFormat = errors.New("unrecognised numbering format")
	// ErrInvalidIncrement: an increment directive cannot be applied.
	ErrInvalidIncrement = errors.New("invalid increment")
	// ErrUnsupported: the operator exists in the grammar but is not implemented.
	ErrUnsupported = errors.New("not yet implemented")
	// ErrUnrecognizedToken: the token cannot be classified at all.
	ErrUnrecognizedToken = errors.New("unrecognised token")
	// ErrLookbackRange: a lookback reaches past the start of the series.
	ErrLookbackRange = errors.New("lookback out of range")
	// ErrNoSeries: a command needs a series but none has been started.
	ErrNoSeries = errors.New("no numbering series")
)

// TokenError carries the row an error happened on so the caller can report it.
type TokenError struct {
	Row   int // 0-based position in the stream
	Token string
	Err   error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("row %d: %q: %v", e.Row, e.Token, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}
