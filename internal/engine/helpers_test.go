package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/testutil"
)

// newFENGame starts a game on the bordered 8x8 region.
func newFENGame(t testing.TB, fen string) *Game {
	t.Helper()
	return newFENGameWithRules(t, fen, testutil.BorderedRules())
}

func newFENGameWithRules(t testing.TB, fen string, rules chess.Rules) *Game {
	t.Helper()
	pos := testutil.MustParseFEN(t, fen)
	opts := []GameOption{WithTurn(pos.Turn)}
	if pos.EnPassant != nil {
		opts = append(opts, WithEnPassant(*pos.EnPassant))
	}
	g, err := NewGame(rules, pos.Placements, opts...)
	require.NoError(t, err)
	return g
}

func newGame(t testing.TB, rules chess.Rules, placements ...chess.Placement) *Game {
	t.Helper()
	g, err := NewGame(rules, placements)
	require.NoError(t, err)
	return g
}

func at(typ chess.PieceType, x, y int64) chess.Placement {
	return chess.Placement{Type: typ, Coords: chess.C(x, y)}
}

func atRight(typ chess.PieceType, x, y int64) chess.Placement {
	return chess.Placement{Type: typ, Coords: chess.C(x, y), SpecialRight: true}
}

// mustPlay makes each long-algebraic move after checking it is legal.
func mustPlay(t testing.TB, g *Game, moves ...string) *chess.Move {
	t.Helper()
	var last *chess.Move
	for _, s := range moves {
		d, err := testutil.ParseUCI(s)
		require.NoError(t, err)
		last = mustPlayDraft(t, g, d)
	}
	return last
}

func mustPlayDraft(t testing.TB, g *Game, d chess.Draft) *chess.Move {
	t.Helper()
	lm, err := g.LegalMovesAt(d.Start)
	require.NoError(t, err, d.String())
	_, ok := lm.Allows(d.Start, d.End)
	require.True(t, ok, "%v is not legal", d)
	m, err := g.Play(d)
	require.NoError(t, err, d.String())
	return m
}

func draft(x1, y1, x2, y2 int64) chess.Draft {
	return chess.Draft{Start: chess.C(x1, y1), End: chess.C(x2, y2)}
}

func targetSquares(ts []Target) []chess.Coords {
	out := make([]chess.Coords, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.To)
	}
	return out
}

func lessCoords(a, b chess.Coords) bool {
	return compareCoords(a, b) < 0
}

func legalUCI(t testing.TB, g *Game) []string {
	t.Helper()
	drafts, err := g.LegalDrafts()
	require.NoError(t, err)
	out := make([]string, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, testutil.UCI(d))
	}
	return out
}

func withWinConditions(r chess.Rules, conds ...chess.WinCondition) chess.Rules {
	r.WinConditions = map[chess.Colour][]chess.WinCondition{
		chess.White: conds,
		chess.Black: conds,
	}
	return r
}

type turnRecorder struct {
	turns []chess.Colour
}

func (r *turnRecorder) TurnFlipped(next chess.Colour) {
	r.turns = append(r.turns, next)
}
