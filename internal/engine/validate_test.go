package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/errors"
	"github.com/lgbarn/infinite-chess-go/internal/testutil"
)

func mustUCI(t *testing.T, s string) chess.Draft {
	t.Helper()
	d, err := testutil.ParseUCI(s)
	require.NoError(t, err)
	return d
}

func TestIsOpponentsMoveLegal(t *testing.T) {
	mate := chess.Conclusion{Winner: chess.Black, Condition: "checkmate"}
	stalemate := chess.Conclusion{Winner: chess.Neutral, Condition: chess.DrawStalemate}

	tests := []struct {
		name    string
		fen     string
		history []string
		move    string
		claimed *chess.Conclusion
		reason  string // empty when legal
	}{
		{name: "legal opening move", fen: testutil.StartFEN, move: "e2e4"},
		{name: "empty start square", fen: testutil.StartFEN, move: "e3e4", reason: "no piece at 5,3"},
		{name: "wrong colour", fen: testutil.StartFEN, move: "e7e5", reason: "on white's turn"},
		{name: "unreachable destination", fen: testutil.StartFEN, move: "e2e5", reason: "cannot move from 5,2 to 5,5"},
		{name: "promotion where none is possible", fen: testutil.StartFEN, move: "e2e4q", reason: "not possible"},
		{name: "missing promotion", fen: "4k3/1P6/8/8/8/8/8/4K3 w - - 0 1", move: "b7b8", reason: "must promote"},
		{name: "promotion choice", fen: "4k3/1P6/8/8/8/8/8/4K3 w - - 0 1", move: "b7b8r"},
		{name: "leaves king in check", fen: "4k3/8/8/8/1b6/8/3P4/4K3 w - - 0 1", move: "d2d3", reason: "cannot move"},
		{name: "mate claimed correctly", fen: testutil.StartFEN, history: []string{"f2f3", "e7e5", "g2g4"}, move: "d8h4", claimed: &mate},
		{name: "mate not claimed", fen: testutil.StartFEN, history: []string{"f2f3", "e7e5", "g2g4"}, move: "d8h4", reason: "no conclusion was claimed"},
		{name: "wrong conclusion claimed", fen: testutil.StartFEN, history: []string{"f2f3", "e7e5", "g2g4"}, move: "d8h4", claimed: &stalemate, reason: "the game ends by black checkmate"},
		{name: "conclusion claimed while game goes on", fen: testutil.StartFEN, move: "e2e4", claimed: &mate, reason: "game goes on"},
		{name: "game already over", fen: testutil.StartFEN, history: []string{"f2f3", "e7e5", "g2g4", "d8h4"}, move: "a2a3", reason: "already ended"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newFENGame(t, tt.fen)
			mustPlay(t, g, tt.history...)
			before := g.State()

			err := g.IsOpponentsMoveLegal(mustUCI(t, tt.move), tt.claimed)
			testutil.AssertEqual(t, g.State(), before, "validation must not change the game")
			assert.Len(t, g.Moves(), len(tt.history))

			if tt.reason == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
			testutil.AssertContains(t, errors.Reason(err), tt.reason)
		})
	}
}

func TestIsOpponentsMoveLegal_NotAtFront(t *testing.T) {
	g := newFENGame(t, testutil.StartFEN)
	mustPlay(t, g, "e2e4", "e7e5")
	require.NoError(t, g.RewindGameToIndex(0))

	err := g.IsOpponentsMoveLegal(mustUCI(t, "e7e5"), nil)
	testutil.AssertContains(t, errors.Reason(err), "not at the latest position")
}

func TestIsOpponentsMoveLegal_KeepsConclusion(t *testing.T) {
	g := newFENGame(t, testutil.StartFEN)
	mustPlay(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	concl, over := g.GetGameConclusion()
	require.True(t, over)

	_ = g.IsOpponentsMoveLegal(mustUCI(t, "a2a3"), nil)
	got, over := g.GetGameConclusion()
	require.True(t, over)
	assert.Equal(t, concl, got)
}

func TestIsOpponentsMoveLegal_FarSquares(t *testing.T) {
	// The pawn on 0,5 blocks the rook's way left.
	g := newGame(t, testutil.UnboundedRules(),
		at(chess.W(chess.King), 0, 0),
		at(chess.W(chess.Rook), 1, 5),
		at(chess.W(chess.Pawn), 0, 5),
		at(chess.B(chess.King), 100, 100),
	)
	rook := chess.C(1, 5)

	tests := []struct {
		name   string
		end    chess.Coords
		reason string
	}{
		{"far slide up", chess.C(1, chess.MaxCoord), ""},
		{"through own pawn", chess.C(-5, 5), "cannot move"},
		{"wraps around to the unblocked side", chess.C(chess.NegInfinity, 5), "out of play"},
		{"just past the edge of play", chess.C(1, chess.MaxCoord+1), "out of play"},
		{"far end of the row", chess.C(chess.Infinity, 5), "out of play"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.IsOpponentsMoveLegal(chess.Draft{Start: rook, End: tt.end}, nil)
			if tt.reason == "" {
				require.NoError(t, err)
				return
			}
			testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
			testutil.AssertContains(t, errors.Reason(err), tt.reason)
		})
	}

	lm, err := g.LegalMovesAt(rook)
	require.NoError(t, err)
	_, ok := lm.Allows(rook, chess.C(chess.NegInfinity, 5))
	assert.False(t, ok)
}

func TestNewGame_OutOfPlay(t *testing.T) {
	_, err := NewGame(testutil.UnboundedRules(), []chess.Placement{
		at(chess.W(chess.King), 0, 0),
		at(chess.B(chess.King), chess.MaxCoord+1, 0),
	})
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}

func FuzzIsOpponentsMoveLegal(f *testing.F) {
	f.Add(int64(5), int64(2), int64(5), int64(4), 0)
	f.Add(int64(0), int64(0), int64(1000), int64(-1000), 5)
	f.Add(int64(2), int64(7), int64(2), int64(8), 2)
	f.Add(int64(1), int64(1), int64(math.MinInt64), int64(1), 0)

	f.Fuzz(func(t *testing.T, x1, y1, x2, y2 int64, promo int) {
		g := newFENGame(t, testutil.StartFEN)
		before := g.State()
		d := chess.Draft{Start: chess.C(x1, y1), End: chess.C(x2, y2), Promotion: chess.Species(promo)}

		if err := g.IsOpponentsMoveLegal(d, nil); err != nil && !errors.Is(err, errors.ErrIllegalMove) {
			t.Fatalf("unexpected error kind: %v", err)
		}
		testutil.AssertEqual(t, g.State(), before)
	})
}
