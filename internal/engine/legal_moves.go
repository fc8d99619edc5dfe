package engine

import (
	"github.com/lgbarn/infinite-chess-go/internal/board"
	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/errors"
	"golang.org/x/exp/slices"
)

// Target is one individually listed destination. Castle and EnPassant tag
// the special moves.
type Target struct {
	To        chess.Coords
	Castle    *chess.Castle
	EnPassant *chess.Coords // Square of the pawn captured en passant
}

// LegalMoves is the move set of one piece: listed destinations plus a step
// range along each sliding direction.
type LegalMoves struct {
	Individual []Target
	Sliding    map[chess.Direction]chess.Range
}

// Allows returns the target for moving from to to, if the moves include it.
func (lm LegalMoves) Allows(from, to chess.Coords) (Target, bool) {
	for _, t := range lm.Individual {
		if t.To == to {
			return t, true
		}
	}
	for d, r := range lm.Sliding {
		if k, ok := d.StepsBetween(from, to); ok && r.Contains(k) {
			return Target{To: to}, true
		}
	}
	return Target{}, false
}

// Empty reports whether the piece has no move at all.
func (lm LegalMoves) Empty() bool {
	if len(lm.Individual) > 0 {
		return false
	}
	for _, r := range lm.Sliding {
		if !r.Empty() {
			return false
		}
	}
	return true
}

// Expand lists every destination, sliding ones included, in a deterministic
// order. It fails with ErrUnboundedMoves if a slide has no end.
func (lm LegalMoves) Expand(from chess.Coords) ([]Target, error) {
	out := slices.Clone(lm.Individual)
	for _, d := range sortedDirections(lm.Sliding) {
		r := lm.Sliding[d]
		if !r.Bounded() {
			return nil, errors.Wrapf(errors.ErrUnboundedMoves, "slide from %v along %v", from, d)
		}
		for k := r.Min; k <= r.Max; k++ {
			if k == 0 {
				continue
			}
			to := from.Step(d, k)
			if !containsTarget(out, to) {
				out = append(out, Target{To: to})
			}
		}
	}
	return out, nil
}

func sortedDirections(m map[chess.Direction]chess.Range) []chess.Direction {
	dirs := make([]chess.Direction, 0, len(m))
	for d := range m {
		dirs = append(dirs, d)
	}
	slices.SortFunc(dirs, func(a, b chess.Direction) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return dirs
}

func containsTarget(ts []Target, to chess.Coords) bool {
	for _, t := range ts {
		if t.To == to {
			return true
		}
	}
	return false
}

// CalculateLegalMoves returns the legal moves of piece p. When an opponent
// wins by checkmate, moves that leave p's royals attacked are removed.
func (g *Game) CalculateLegalMoves(p board.Piece) LegalMoves {
	lm := g.pseudoLegalMoves(p)
	colour := p.Type.Colour()
	if colour != chess.Neutral && g.checkmateApplies(colour) {
		g.removeSelfChecks(p, &lm)
	}
	return lm
}

// LegalMovesAt is CalculateLegalMoves for the piece on c.
func (g *Game) LegalMovesAt(c chess.Coords) (LegalMoves, error) {
	p, ok := g.board.PieceAt(c)
	if !ok {
		return LegalMoves{}, errors.Wrapf(errors.ErrNoPiece, "legal moves at %v", c)
	}
	return g.CalculateLegalMoves(p), nil
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func (g *Game) HasLegalMoves(colour chess.Colour) bool {
	for _, p := range g.board.PiecesOf(colour) {
		if !g.CalculateLegalMoves(p).Empty() {
			return true
		}
	}
	return false
}

func (g *Game) pseudoLegalMoves(p board.Piece) LegalMoves {
	colour := p.Type.Colour()
	if colour == chess.Neutral {
		return LegalMoves{}
	}
	ms := g.moveset(p.Type.Species())

	var lm LegalMoves
	for _, offset := range ms.Individual {
		to := p.Coords.Add(offset)
		if g.canLand(colour, to) {
			lm.Individual = append(lm.Individual, Target{To: to})
		}
	}
	for d, r := range ms.Sliding {
		r = g.slideRange(p.Coords, colour, d, r)
		if r.Empty() {
			continue
		}
		if lm.Sliding == nil {
			lm.Sliding = make(map[chess.Direction]chess.Range, len(ms.Sliding))
		}
		lm.Sliding[d] = r
	}

	switch p.Type.Species().Category() {
	case chess.CategoryPawn:
		g.pawnMoves(p, &lm)
	case chess.CategoryCastler:
		g.castlingMoves(p, &lm)
	}
	return lm
}

// capturable reports whether a piece of colour may move onto a square
// holding t. Enemies and obstacles can be captured; voids never.
func capturable(t chess.PieceType, colour chess.Colour) bool {
	if t == chess.NoPiece || t.Species() == chess.Void {
		return false
	}
	return t.Colour() != colour
}

// canLand reports whether a leaper of colour may land on c.
func (g *Game) canLand(colour chess.Colour, c chess.Coords) bool {
	if !g.inBorder(c) {
		return false
	}
	t := g.board.TypeAt(c)
	return t == chess.NoPiece || capturable(t, colour)
}

// slideRange clamps r to the nearest blocker on each side of from along d,
// and to the world border.
func (g *Game) slideRange(from chess.Coords, colour chess.Colour, d chess.Direction, r chess.Range) chess.Range {
	before, after := g.board.Neighbours(d, from)
	if after != nil {
		k, _ := d.StepsBetween(from, after.Coords)
		if !capturable(after.Type, colour) {
			k--
		}
		r = r.Clamp(chess.NegInfinity, k)
	}
	if before != nil {
		k, _ := d.StepsBetween(from, before.Coords)
		if !capturable(before.Type, colour) {
			k++
		}
		r = r.Clamp(k, chess.Infinity)
	}
	if g.rules.WorldBorder != nil {
		br := g.rules.WorldBorder.StepRange(from, d)
		r = r.Clamp(br.Min, br.Max)
	}
	return r
}
