package engine

import (
	"github.com/lgbarn/infinite-chess-go/internal/board"
	"github.com/lgbarn/infinite-chess-go/internal/chess"
)

// pawnMoves appends pushes, the double push while the pawn holds its
// special right, diagonal captures and en passant.
func (g *Game) pawnMoves(p board.Piece, lm *LegalMoves) {
	colour := p.Type.Colour()
	fwd := chess.ForwardOffset(colour)
	x, y := p.Coords.X, p.Coords.Y

	one := chess.C(x, y+fwd)
	if g.inBorder(one) && !g.board.Occupied(one) {
		lm.Individual = append(lm.Individual, Target{To: one})
		two := chess.C(x, y+2*fwd)
		if g.hasRight(p.Coords) && g.inBorder(two) && !g.board.Occupied(two) {
			lm.Individual = append(lm.Individual, Target{To: two})
		}
	}

	for _, dx := range []int64{-1, 1} {
		to := chess.C(x+dx, y+fwd)
		if !g.inBorder(to) {
			continue
		}
		t := g.board.TypeAt(to)
		if t != chess.NoPiece {
			if capturable(t, colour) {
				lm.Individual = append(lm.Individual, Target{To: to})
			}
			continue
		}
		if ep := g.enPassant; ep != nil && ep.Square == to && isEnemy(g.board.TypeAt(ep.Pawn), colour) {
			victim := ep.Pawn
			lm.Individual = append(lm.Individual, Target{To: to, EnPassant: &victim})
		}
	}
}

// isDoublePush reports whether m is a pawn's two-square advance, which
// creates an en-passant opportunity.
func isDoublePush(m *chess.Move) bool {
	return m.Type.Species() == chess.Pawn && m.Start.X == m.End.X && abs(m.End.Y-m.Start.Y) == 2
}

// promotionFor returns the piece a pawn of colour becomes on reaching to,
// or NoPiece. An unspecified species defaults to the first one allowed.
func (g *Game) promotionFor(colour chess.Colour, to chess.Coords, want chess.Species) chess.PieceType {
	if !g.rules.IsPromotionRank(colour, to.Y) {
		return chess.NoPiece
	}
	if want == chess.NoSpecies {
		allowed := g.rules.PromotionsAllowed[colour]
		if len(allowed) == 0 {
			return chess.NoPiece
		}
		want = allowed[0]
	}
	return chess.MakePieceType(colour, want)
}
