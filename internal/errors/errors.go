// Package errors provides sentinel errors and error types for the rule engine.
// Callers inspect them with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
var (
	// ErrNoPiece indicates an operation needed a piece on an empty square.
	ErrNoPiece = errors.New("no piece at square")

	// ErrSquareOccupied indicates a piece was placed on an occupied square.
	ErrSquareOccupied = errors.New("square already occupied")

	// ErrSlotInUse indicates a piece was restored into a slot that is not free.
	ErrSlotInUse = errors.New("piece slot in use")

	// ErrIllegalMove indicates a move that violates the game rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidConfig indicates an invalid variant, position or run configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotAtFront indicates a move was recorded while reviewing an earlier position.
	ErrNotAtFront = errors.New("not at the front of the move list")

	// ErrNothingToRewind indicates a rewind with no applied moves.
	ErrNothingToRewind = errors.New("no move to rewind")

	// ErrUnboundedMoves indicates move enumeration hit an unlimited slide.
	ErrUnboundedMoves = errors.New("unbounded sliding moves")

	// ErrIndexOutOfRange indicates navigation to a move index outside the move list.
	ErrIndexOutOfRange = errors.New("move index out of range")

	// ErrGameOver indicates a move was attempted after the game concluded.
	ErrGameOver = errors.New("game is already over")
)

// MoveError wraps errors with move context: the ply it happened on and the
// squares involved. It supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err  error  // The underlying error
	Ply  int    // 1-based ply number (0 if not applicable)
	Move string // The move being processed, e.g. "5,2>5,4"
	File string // Source game file (if known)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.File != "" {
		parts = append(parts, e.File)
	}
	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Move != "" {
		parts = append(parts, fmt.Sprintf("move %s", e.Move))
	}

	context := strings.Join(parts, ", ")
	switch {
	case e.Err == nil:
		return context
	case context == "":
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", context, e.Err)
}

// Unwrap returns the underlying error.
func (e *MoveError) Unwrap() error {
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

// Rejection is an untrusted move that failed validation. It unwraps to
// ErrIllegalMove.
type Rejection struct {
	Reason string
}

// Error returns the rejection reason prefixed by the sentinel message.
func (r *Rejection) Error() string {
	return ErrIllegalMove.Error() + ": " + r.Reason
}

// Unwrap returns ErrIllegalMove.
func (r *Rejection) Unwrap() error {
	return ErrIllegalMove
}

// Rejectf returns a *Rejection with a formatted reason.
func Rejectf(format string, args ...interface{}) error {
	return &Rejection{Reason: fmt.Sprintf(format, args...)}
}

// Reason extracts the rejection reason from err, or err.Error() when err is
// not a rejection.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var r *Rejection
	if errors.As(err, &r) {
		return r.Reason
	}
	return err.Error()
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
