// Package errors provides sentinel errors and error types for the chess engine.
// It defines the rejection reasons a move attempt can produce and the
// invariant violations that signal a caller or engine defect, while allowing
// error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrIllegalMove is the root of every move rejection. All of the more
	// specific rejection sentinels below wrap it.
	ErrIllegalMove = errors.New("illegal move")

	// ErrWrongTurn indicates the piece's team is not the side to move.
	ErrWrongTurn = fmt.Errorf("%w: not this team's turn", ErrIllegalMove)

	// ErrGameOver indicates a move attempt after checkmate, stalemate or a draw.
	ErrGameOver = fmt.Errorf("%w: game is over", ErrIllegalMove)

	// ErrKingExposed indicates the move would leave the mover's own king attacked.
	ErrKingExposed = fmt.Errorf("%w: king would be in check", ErrIllegalMove)

	// ErrOffBoard indicates a destination outside the board.
	ErrOffBoard = fmt.Errorf("%w: square off the board", ErrIllegalMove)

	// ErrUnknownPiece indicates a piece that is not on this game's board.
	ErrUnknownPiece = fmt.Errorf("%w: piece not on the board", ErrIllegalMove)

	// ErrNothingToUndo indicates an undo request with an empty history.
	ErrNothingToUndo = errors.New("no move to undo")

	// ErrInvalidFEN indicates a malformed or impossible FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownSession indicates a session id with no live game.
	ErrUnknownSession = errors.New("unknown session")

	// ErrInvariant indicates a broken board invariant (missing king,
	// duplicate occupancy, off-board placement).
	ErrInvariant = errors.New("invariant violation")
)

// MoveError wraps a move rejection with the move that was attempted. It
// implements the error interface and supports unwrapping via errors.Is()
// and errors.As().
type MoveError struct {
	Err   error  // The underlying rejection sentinel
	Piece string // Description of the piece asked to move (if known)
	From  string // Source square (if known)
	To    string // Destination square (if known)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Piece != "" {
		parts = append(parts, e.Piece)
	}
	if e.From != "" || e.To != "" {
		parts = append(parts, fmt.Sprintf("%s-%s", e.From, e.To))
	}

	context := strings.Join(parts, " ")
	if context == "" {
		if e.Err != nil {
			return e.Err.Error()
		}
		return ErrIllegalMove.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// InvariantError describes a fatal inconsistency. It is raised with panic,
// never returned, because continuing would corrupt check detection.
type InvariantError struct {
	Op     string // The board operation that detected the violation
	Detail string
}

// Error returns the formatted violation.
func (e *InvariantError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%v: %s", ErrInvariant, e.Detail)
	}
	return fmt.Sprintf("%v: %s: %s", ErrInvariant, e.Op, e.Detail)
}

// Unwrap returns ErrInvariant.
func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

// Invariantf builds an InvariantError for op with a formatted detail.
func Invariantf(op, format string, args ...interface{}) *InvariantError {
	return &InvariantError{Op: op, Detail: fmt.Sprintf(format, args...)}
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

// Is reports whether any error in err's chain matches target. It is
// re-exported so callers importing this package need not also import the
// standard errors package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
