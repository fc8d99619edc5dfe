package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	sentinels := []error{
		ErrNoPiece, ErrSquareOccupied, ErrSlotInUse, ErrIllegalMove, ErrInvalidConfig,
		ErrNotAtFront, ErrNothingToRewind, ErrUnboundedMoves, ErrIndexOutOfRange, ErrGameOver,
	}

	for _, sentinel := range sentinels {
		t.Run(sentinel.Error(), func(t *testing.T) {
			wrapped := Wrapf(sentinel, "square %s", "3,4")
			if !errors.Is(wrapped, sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", wrapped, sentinel)
			}
		})
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
				Err:  ErrIllegalMove,
				Ply:  12,
				Move: "5,2>5,5",
				File: "game.yaml",
			},
			contains: []string{"game.yaml", "ply 12", "5,2>5,5", "illegal move"},
		},
		{
			name:     "minimal context",
			err:      &MoveError{Err: ErrNoPiece},
			contains: []string{"no piece at square"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("MoveError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestMoveError_Unwrap verifies errors.Is and errors.As work through MoveError
func TestMoveError_Unwrap(t *testing.T) {
	err := fmt.Errorf("replay: %w", &MoveError{Err: ErrNotAtFront, Ply: 3})

	if !errors.Is(err, ErrNotAtFront) {
		t.Errorf("errors.Is(err, ErrNotAtFront) = false, want true")
	}

	var moveErr *MoveError
	if !errors.As(err, &moveErr) {
		t.Fatalf("errors.As(err, *MoveError) = false, want true")
	}
	if moveErr.Ply != 3 {
		t.Errorf("moveErr.Ply = %d, want 3", moveErr.Ply)
	}
}

func TestRejection(t *testing.T) {
	err := Wrap(Rejectf("piece at %s belongs to %s", "1,2", "black"), "ply 4")

	if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("errors.Is(rejection, ErrIllegalMove) = false, want true")
	}
	if got, want := Reason(err), "piece at 1,2 belongs to black"; got != want {
		t.Errorf("Reason() = %q, want %q", got, want)
	}
	if got := Reason(ErrNoPiece); got != ErrNoPiece.Error() {
		t.Errorf("Reason(ErrNoPiece) = %q, want %q", got, ErrNoPiece.Error())
	}
	if Reason(nil) != "" {
		t.Errorf("Reason(nil) = %q, want empty", Reason(nil))
	}
}

func TestWrap_Nil(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Errorf("Wrap(nil) != nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Errorf("Wrapf(nil) != nil")
	}
}
