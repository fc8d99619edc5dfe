package testutil

import (
	"fmt"
	"testing"

	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/errors"
)

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "hello", "hello")
	AssertEqual(t, 42, 42)
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(t, chess.C(1, 2), chess.C(1, 2), "coords %s", "equal")
}

func TestAssertEqual_EmptyEqualsNil(t *testing.T) {
	var nilSlice []chess.Coords
	AssertEqual(t, nilSlice, []chess.Coords{})
	var nilMap map[chess.Coords]bool
	AssertEqual(t, nilMap, map[chess.Coords]bool{})
}

func TestAssertSameElements(t *testing.T) {
	less := func(a, b int) bool { return a < b }
	AssertSameElements(t, []int{3, 1, 2}, []int{1, 2, 3}, less)
}

func TestAssertErrorIs(t *testing.T) {
	err := errors.Wrapf(errors.ErrNoPiece, "move from %v", chess.C(0, 0))
	AssertErrorIs(t, err, errors.ErrNoPiece)
	AssertErrorIs(t, errors.Rejectf("wrong colour"), errors.ErrIllegalMove)
}

func TestAssertHelpers_Success(t *testing.T) {
	AssertNoError(t, nil)
	AssertContains(t, "draw repetition", "repetition")
	AssertTrue(t, true)
	AssertFalse(t, false)
}

type recorder struct {
	testing.TB
	failures []string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func (r *recorder) Error(args ...interface{}) {
	r.failures = append(r.failures, fmt.Sprint(args...))
}

func TestAssertEqual_ReportsDiff(t *testing.T) {
	r := &recorder{}
	AssertEqual(r, chess.C(1, 2), chess.C(1, 3), "square")
	if len(r.failures) != 1 {
		t.Fatalf("AssertEqual recorded %d failures, want 1", len(r.failures))
	}
	AssertContains(t, r.failures[0], "square: mismatch")
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"single int", []interface{}{42}, "42"},
		{"format string", []interface{}{"hello %s", "world"}, "hello world"},
		{"format multiple", []interface{}{"%s %d %s", "test", 42, "end"}, "test 42 end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMessage(tt.args...)
			if got != tt.want {
				t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
