package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors_Are verifies that sentinel errors are properly defined
// and can be checked with errors.Is()
func TestSentinelErrors_Are(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ErrIllegalMove", ErrIllegalMove, ErrIllegalMove},
		{"ErrWrongTurn", ErrWrongTurn, ErrWrongTurn},
		{"ErrGameOver", ErrGameOver, ErrGameOver},
		{"ErrKingExposed", ErrKingExposed, ErrKingExposed},
		{"ErrOffBoard", ErrOffBoard, ErrOffBoard},
		{"ErrUnknownPiece", ErrUnknownPiece, ErrUnknownPiece},
		{"ErrNothingToUndo", ErrNothingToUndo, ErrNothingToUndo},
		{"ErrInvalidFEN", ErrInvalidFEN, ErrInvalidFEN},
		{"ErrInvalidConfig", ErrInvalidConfig, ErrInvalidConfig},
		{"ErrUnknownSession", ErrUnknownSession, ErrUnknownSession},
		{"ErrInvariant", ErrInvariant, ErrInvariant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

// TestRejections_WrapIllegalMove verifies every rejection reason is an illegal move
func TestRejections_WrapIllegalMove(t *testing.T) {
	for _, err := range []error{ErrWrongTurn, ErrGameOver, ErrKingExposed, ErrOffBoard, ErrUnknownPiece} {
		if !errors.Is(err, ErrIllegalMove) {
			t.Errorf("errors.Is(%v, ErrIllegalMove) = false, want true", err)
		}
	}
	for _, err := range []error{ErrNothingToUndo, ErrInvalidFEN, ErrInvariant} {
		if errors.Is(err, ErrIllegalMove) {
			t.Errorf("errors.Is(%v, ErrIllegalMove) = true, want false", err)
		}
	}
}

// TestMoveError_Error verifies the error message format
func TestMoveError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *MoveError
		contains []string
	}{
		{
			name: "full context",
			err: &MoveError{
				Err:   ErrKingExposed,
				Piece: "White Bishop e2",
				From:  "e2",
				To:    "b5",
			},
			contains: []string{"White Bishop", "e2-b5", "king would be in check"},
		},
		{
			name:     "no context",
			err:      &MoveError{Err: ErrGameOver},
			contains: []string{"game is over"},
		},
		{
			name:     "empty",
			err:      &MoveError{},
			contains: []string{"illegal move"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("MoveError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestMoveError_As verifies that errors.As works with MoveError
func TestMoveError_As(t *testing.T) {
	moveErr := &MoveError{Err: ErrWrongTurn, From: "e7", To: "e5"}
	wrapped := fmt.Errorf("session abc: %w", moveErr)

	var extracted *MoveError
	if !errors.As(wrapped, &extracted) {
		t.Fatal("errors.As() could not extract MoveError")
	}
	if extracted.To != "e5" {
		t.Errorf("extracted.To = %q, want %q", extracted.To, "e5")
	}
	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("errors.Is(wrapped, ErrIllegalMove) = false, want true")
	}
}

// TestInvariantError verifies formatting and unwrapping of invariant violations
func TestInvariantError(t *testing.T) {
	err := Invariantf("remove", "attempt to remove %s", "White King e1")

	if !errors.Is(err, ErrInvariant) {
		t.Error("errors.Is(err, ErrInvariant) = false, want true")
	}
	msg := err.Error()
	for _, s := range []string{"invariant violation", "remove", "White King e1"} {
		if !containsIgnoreCase(msg, s) {
			t.Errorf("InvariantError.Error() = %q, should contain %q", msg, s)
		}
	}
}

// TestWrap verifies the Wrap helper function
func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrInvalidFEN, "loading position")

	if !errors.Is(wrapped, ErrInvalidFEN) {
		t.Error("Wrap should preserve the underlying error")
	}
	if msg := wrapped.Error(); !containsIgnoreCase(msg, "loading position") {
		t.Errorf("Wrap should include context, got %q", msg)
	}
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

// TestWrapf verifies the Wrapf helper function
func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrIllegalMove, "ply %d", 15)

	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("Wrapf should preserve the underlying error")
	}
	if msg := wrapped.Error(); !containsIgnoreCase(msg, "ply 15") {
		t.Errorf("Wrapf should include formatted context, got %q", msg)
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
