package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/errors"
	"github.com/lgbarn/infinite-chess-go/internal/testutil"
)

var (
	up      = chess.Direction{DX: 0, DY: 1}
	across  = chess.Direction{DX: 1, DY: 0}
	rising  = chess.Direction{DX: 1, DY: 1}
	falling = chess.Direction{DX: 1, DY: -1}
)

func TestLegalMoves_VoidBlocksObstacleCaptured(t *testing.T) {
	g := newGame(t, testutil.UnboundedRules(),
		at(chess.W(chess.Rook), 0, 0),
		at(chess.N(chess.Void), 0, 3),
		at(chess.N(chess.Obstacle), 3, 0),
		at(chess.W(chess.King), -10, -10),
		at(chess.B(chess.King), 10, 10),
	)
	lm, err := g.LegalMovesAt(chess.C(0, 0))
	require.NoError(t, err)

	testutil.AssertEqual(t, lm.Sliding, map[chess.Direction]chess.Range{
		up:     {Min: chess.NegInfinity, Max: 2},
		across: {Min: chess.NegInfinity, Max: 3},
	})
	assert.Empty(t, lm.Individual)

	_, err = lm.Expand(chess.C(0, 0))
	testutil.AssertErrorIs(t, err, errors.ErrUnboundedMoves)
}

func TestLegalMoves_WorldBorderClampsSlides(t *testing.T) {
	g := newGame(t, testutil.BorderedRules(),
		at(chess.W(chess.Rook), 4, 4),
		at(chess.W(chess.Knight), 1, 1),
		at(chess.W(chess.King), 8, 1),
		at(chess.B(chess.King), 1, 8),
	)

	lm, err := g.LegalMovesAt(chess.C(4, 4))
	require.NoError(t, err)
	testutil.AssertEqual(t, lm.Sliding, map[chess.Direction]chess.Range{
		up:     {Min: -3, Max: 4},
		across: {Min: -3, Max: 4},
	})
	targets, err := lm.Expand(chess.C(4, 4))
	require.NoError(t, err)
	assert.Len(t, targets, 14)

	lm, err = g.LegalMovesAt(chess.C(1, 1))
	require.NoError(t, err)
	testutil.AssertSameElements(t, targetSquares(lm.Individual),
		[]chess.Coords{{X: 2, Y: 3}, {X: 3, Y: 2}}, lessCoords)
}

func TestLegalMoves_HawkLeaps(t *testing.T) {
	g := newGame(t, testutil.UnboundedRules(), at(chess.W(chess.Hawk), 0, 0))
	lm, err := g.LegalMovesAt(chess.C(0, 0))
	require.NoError(t, err)
	assert.Len(t, lm.Individual, 16)
	assert.Empty(t, lm.Sliding)
}

func TestLegalMoves_Pawn(t *testing.T) {
	tests := []struct {
		name   string
		pieces []chess.Placement
		want   []chess.Coords
	}{
		{
			name:   "double push with right",
			pieces: []chess.Placement{atRight(chess.W(chess.Pawn), 0, 0)},
			want:   []chess.Coords{{X: 0, Y: 1}, {X: 0, Y: 2}},
		},
		{
			name:   "single push without right",
			pieces: []chess.Placement{at(chess.W(chess.Pawn), 0, 0)},
			want:   []chess.Coords{{X: 0, Y: 1}},
		},
		{
			name:   "double push blocked on second square",
			pieces: []chess.Placement{atRight(chess.W(chess.Pawn), 0, 0), at(chess.B(chess.Knight), 0, 2)},
			want:   []chess.Coords{{X: 0, Y: 1}},
		},
		{
			name:   "blocked pawn captures diagonally",
			pieces: []chess.Placement{atRight(chess.W(chess.Pawn), 0, 0), at(chess.B(chess.Knight), 0, 1), at(chess.B(chess.Rook), -1, 1), at(chess.W(chess.Rook), 1, 1)},
			want:   []chess.Coords{{X: -1, Y: 1}},
		},
		{
			name:   "pawn captures obstacle",
			pieces: []chess.Placement{at(chess.W(chess.Pawn), 0, 0), at(chess.N(chess.Obstacle), 1, 1), at(chess.N(chess.Void), 0, 1)},
			want:   []chess.Coords{{X: 1, Y: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, testutil.UnboundedRules(), tt.pieces...)
			lm, err := g.LegalMovesAt(chess.C(0, 0))
			require.NoError(t, err)
			testutil.AssertSameElements(t, targetSquares(lm.Individual), tt.want, lessCoords)
		})
	}
}

func TestLegalMoves_PinnedRookKeepsPinLine(t *testing.T) {
	g := newGame(t, testutil.UnboundedRules(),
		at(chess.W(chess.King), 5, 1),
		at(chess.W(chess.Rook), 5, 3),
		at(chess.B(chess.Rook), 5, 8),
		at(chess.B(chess.King), 1, 8),
	)
	lm, err := g.LegalMovesAt(chess.C(5, 3))
	require.NoError(t, err)
	testutil.AssertEqual(t, lm.Sliding, map[chess.Direction]chess.Range{
		up: {Min: -1, Max: 5},
	})
}

func TestLegalMoves_PinCheckRestoresBoard(t *testing.T) {
	g := newGame(t, testutil.UnboundedRules(),
		at(chess.W(chess.King), 5, 1),
		at(chess.W(chess.Rook), 2, 2),
		at(chess.W(chess.Rook), 5, 3),
		at(chess.B(chess.Rook), 5, 8),
		at(chess.B(chess.King), 1, 8),
	)
	before := g.State()
	for i := 0; i < 3; i++ {
		_, err := g.LegalMovesAt(chess.C(5, 3))
		require.NoError(t, err)
	}
	testutil.AssertEqual(t, g.State(), before, "lifted piece goes back to its own slot")
}

func TestLegalMoves_PinnedKnightIsFrozen(t *testing.T) {
	g := newGame(t, testutil.UnboundedRules(),
		at(chess.W(chess.King), 5, 1),
		at(chess.W(chess.Knight), 5, 3),
		at(chess.B(chess.Rook), 5, 8),
		at(chess.B(chess.King), 1, 8),
	)
	lm, err := g.LegalMovesAt(chess.C(5, 3))
	require.NoError(t, err)
	assert.True(t, lm.Empty())
}

func TestLegalMoves_PinnedByDistantSlider(t *testing.T) {
	g := newGame(t, testutil.UnboundedRules(),
		at(chess.W(chess.King), 0, 0),
		at(chess.W(chess.Bishop), 3, 3),
		at(chess.B(chess.Queen), 1000000, 1000000),
		at(chess.B(chess.King), -50, 7),
	)
	lm, err := g.LegalMovesAt(chess.C(3, 3))
	require.NoError(t, err)
	testutil.AssertEqual(t, lm.Sliding, map[chess.Direction]chess.Range{
		rising: {Min: -2, Max: 999997},
	})
	assert.NotContains(t, lm.Sliding, falling)
}

func TestLegalMoves_SingleCheckInterposition(t *testing.T) {
	g := newGame(t, testutil.UnboundedRules(),
		at(chess.W(chess.King), 5, 1),
		at(chess.W(chess.Bishop), 3, 1),
		at(chess.B(chess.Rook), 5, 8),
		at(chess.B(chess.King), 1, 8),
	)
	require.Len(t, g.InCheck(), 1)

	lm, err := g.LegalMovesAt(chess.C(3, 1))
	require.NoError(t, err)
	assert.Empty(t, lm.Sliding)
	testutil.AssertSameElements(t, targetSquares(lm.Individual), []chess.Coords{{X: 5, Y: 3}}, lessCoords)
}

func TestLegalMoves_SingleCheckCaptureBySlide(t *testing.T) {
	g := newGame(t, testutil.UnboundedRules(),
		at(chess.W(chess.King), 0, 0),
		at(chess.W(chess.Rook), 7, -4),
		at(chess.B(chess.Bishop), 7, 7),
		at(chess.B(chess.King), -20, 3),
	)
	lm, err := g.LegalMovesAt(chess.C(7, -4))
	require.NoError(t, err)
	assert.Empty(t, lm.Sliding)
	testutil.AssertSameElements(t, targetSquares(lm.Individual), []chess.Coords{{X: 7, Y: 7}}, lessCoords)
}

func TestLegalMoves_DoubleCheckOnlyKingMoves(t *testing.T) {
	g := newGame(t, testutil.UnboundedRules(),
		at(chess.W(chess.King), 5, 1),
		at(chess.W(chess.Rook), 1, 2),
		at(chess.B(chess.Rook), 5, 8),
		at(chess.B(chess.Bishop), 8, 4),
		at(chess.B(chess.King), 1, 8),
	)
	require.Len(t, g.InCheck(), 1)

	lm, err := g.LegalMovesAt(chess.C(1, 2))
	require.NoError(t, err)
	assert.True(t, lm.Empty())

	lm, err = g.LegalMovesAt(chess.C(5, 1))
	require.NoError(t, err)
	assert.False(t, lm.Empty())
}

func TestLegalMoves_RoyalCaptureAllowsWalkingIntoCheck(t *testing.T) {
	rules := withWinConditions(testutil.UnboundedRules(), chess.RoyalCapture)
	g := newGame(t, rules,
		at(chess.W(chess.King), 0, 0),
		at(chess.B(chess.Rook), 1, 10),
		at(chess.B(chess.King), 20, 20),
	)
	lm, err := g.LegalMovesAt(chess.C(0, 0))
	require.NoError(t, err)
	_, ok := lm.Allows(chess.C(0, 0), chess.C(1, 1))
	assert.True(t, ok)
}

func TestLegalMoves_Deterministic(t *testing.T) {
	g := newFENGame(t, testutil.KiwipeteFEN)
	first := legalUCI(t, g)
	for i := 0; i < 5; i++ {
		testutil.AssertEqual(t, legalUCI(t, g), first)
	}
}
