package engine

import (
	"github.com/lgbarn/infinite-chess-go/internal/board"
	"github.com/lgbarn/infinite-chess-go/internal/chess"
)

var horizontal = chess.Direction{DX: 1, DY: 0}

// castlingMoves appends two-square castling moves. The partner is the
// nearest piece along the rank; it must be a rook-like piece of the same
// colour holding its special right, at least three squares away. The
// castler must not be attacked, nor the two squares it crosses.
func (g *Game) castlingMoves(p board.Piece, lm *LegalMoves) {
	if !g.hasRight(p.Coords) {
		return
	}
	colour := p.Type.Colour()
	if g.IsAttacked(p.Coords, colour) {
		return
	}

	before, after := g.board.Neighbours(horizontal, p.Coords)
	for _, side := range []struct {
		dir     int64
		partner *board.Piece
	}{{-1, before}, {1, after}} {
		partner := side.partner
		if partner == nil || partner.Type.Colour() != colour || !g.hasRight(partner.Coords) {
			continue
		}
		if abs(partner.Coords.X-p.Coords.X) < 3 || !g.rookLike(partner.Type.Species()) {
			continue
		}
		cross := chess.C(p.Coords.X+side.dir, p.Coords.Y)
		land := chess.C(p.Coords.X+2*side.dir, p.Coords.Y)
		if !g.inBorder(land) || g.IsAttacked(cross, colour) || g.IsAttacked(land, colour) {
			continue
		}
		lm.Individual = append(lm.Individual, Target{
			To:     land,
			Castle: &chess.Castle{Dir: side.dir, Partner: partner.Coords},
		})
	}
}

// rookLike reports whether s can be a castling partner.
func (g *Game) rookLike(s chess.Species) bool {
	if s.IsRoyal() || s == chess.Pawn {
		return false
	}
	_, ok := g.moveset(s).Slides(horizontal)
	return ok
}

// castlePartnerEnd is where the partner lands: beside the castler, on the
// side it came from.
func castlePartnerEnd(m *chess.Move) chess.Coords {
	return chess.C(m.End.X-m.Castle.Dir, m.End.Y)
}
