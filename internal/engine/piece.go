package engine

import (
	"github.com/lgbarn/infinite-chess-go/internal/board"
	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/errors"
)

// moveFor builds the move record of p travelling to target t.
func (g *Game) moveFor(p board.Piece, t Target, promotion chess.Species) *chess.Move {
	m := &chess.Move{
		Type:   p.Type,
		Start:  p.Coords,
		End:    t.To,
		Castle: t.Castle,
	}
	if t.EnPassant != nil {
		at := *t.EnPassant
		m.EnPassant = &at
		m.Captured = g.board.TypeAt(at)
	} else {
		m.Captured = g.board.TypeAt(t.To)
	}
	if p.Type.Species() == chess.Pawn {
		m.Promotion = g.promotionFor(p.Type.Colour(), t.To, promotion)
	}
	return m
}

// BuildMove turns a draft into a move record, deriving castling, en-passant
// and promotion details from the current position. It does not check
// legality; see IsOpponentsMoveLegal.
func (g *Game) BuildMove(d chess.Draft) (*chess.Move, error) {
	p, ok := g.board.PieceAt(d.Start)
	if !ok {
		return nil, errors.Wrapf(errors.ErrNoPiece, "build move %v", d)
	}
	t := Target{To: d.End}
	dx, dy := d.End.X-d.Start.X, d.End.Y-d.Start.Y

	switch p.Type.Species().Category() {
	case chess.CategoryPawn:
		if ep := g.enPassant; ep != nil && dx != 0 && ep.Square == d.End && !g.board.Occupied(d.End) {
			victim := ep.Pawn
			t.EnPassant = &victim
		}
	case chess.CategoryCastler:
		if dy == 0 && abs(dx) == 2 && g.hasRight(d.Start) {
			before, after := g.board.Neighbours(horizontal, d.Start)
			partner := after
			if dx < 0 {
				partner = before
			}
			if partner != nil {
				t.Castle = &chess.Castle{Dir: sign(dx), Partner: partner.Coords}
			}
		}
	}
	return g.moveFor(p, t, d.Promotion), nil
}
