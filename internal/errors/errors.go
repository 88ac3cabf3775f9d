// Package errors provides sentinel errors and error types for the domination
// search. It defines common failure conditions and structured error types that
// preserve context while allowing inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInfeasibleBoard indicates no legal seed placement exists for a piece
	// set under the given settings.
	ErrInfeasibleBoard = errors.New("no legal board for pieces and settings")

	// ErrInvalidPiece indicates a malformed piece token such as "Qz9".
	ErrInvalidPiece = errors.New("invalid piece")

	// ErrInvalidBoard indicates a board representation that cannot be restored.
	ErrInvalidBoard = errors.New("invalid board representation")

	// ErrInvalidSettings indicates a malformed settings string or invalid values.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrInvalidSearch indicates a malformed search (continue) string.
	ErrInvalidSearch = errors.New("invalid search string")

	// ErrUnknownPieceType indicates a piece type the coverage evaluator cannot
	// dispatch. It is only ever raised through a panic.
	ErrUnknownPieceType = errors.New("unknown piece type")
)

// ParseError describes a textual input that could not be parsed. It is used
// for piece tokens, board representations, settings and search strings.
type ParseError struct {
	Err      error  // The underlying error
	Input    string // The text being parsed
	Field    string // Which part of the input was bad
	Expected string // What was expected
	Got      string // What was found instead
}

// Error returns a formatted error message with the available context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %q", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %q", e.Got))
	}

	if e.Input != "" {
		parts = append(parts, fmt.Sprintf("in %q", e.Input))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// SearchError attaches the search being run to an error, so failures from
// concurrently running searches can be told apart.
type SearchError struct {
	Err    error  // The underlying error
	Pieces string // Piece set of the search
	Start  int    // Start of the symmetry piece range
	End    int    // End of the symmetry piece range
}

// Error returns the search context followed by the underlying error.
func (e *SearchError) Error() string {
	context := fmt.Sprintf("search %s [%d-%d)", e.Pieces, e.Start, e.End)
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error.
func (e *SearchError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
