package engine

import (
	"github.com/lgbarn/infinite-chess-go/internal/board"
	"github.com/lgbarn/infinite-chess-go/internal/chess"
)

var perftOptions = MoveOptions{FlipTurn: true, RecordMove: true, Simulated: true}

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Each promotion choice counts as its own move. Positions where a slide has
// no end cannot be enumerated and return ErrUnboundedMoves.
func (g *Game) Perft(depth int) (int64, error) {
	if depth <= 0 {
		return 1, nil
	}
	defer g.keepConclusion()()
	var nodes int64
	err := g.eachMove(func(m *chess.Move) error {
		if depth == 1 {
			nodes++
			return nil
		}
		if err := g.MakeMove(m, perftOptions); err != nil {
			return err
		}
		n, err := g.Perft(depth - 1)
		if rerr := g.RewindMove(RewindOptions{RemoveMove: true, Simulated: true}); rerr != nil {
			return rerr
		}
		nodes += n
		return err
	})
	return nodes, err
}

// Divide returns the perft count below each legal move of the side to move.
func (g *Game) Divide(depth int) (map[chess.Draft]int64, error) {
	defer g.keepConclusion()()
	out := make(map[chess.Draft]int64)
	err := g.eachMove(func(m *chess.Move) error {
		if err := g.MakeMove(m, perftOptions); err != nil {
			return err
		}
		n, err := g.Perft(depth - 1)
		if rerr := g.RewindMove(RewindOptions{RemoveMove: true, Simulated: true}); rerr != nil {
			return rerr
		}
		out[m.Draft()] = n
		return err
	})
	return out, err
}

// LegalDrafts lists every legal move of the side to move.
func (g *Game) LegalDrafts() ([]chess.Draft, error) {
	var out []chess.Draft
	err := g.eachMove(func(m *chess.Move) error {
		out = append(out, m.Draft())
		return nil
	})
	return out, err
}

// keepConclusion saves the conclusion and returns a func restoring it, as
// rewinding clears it.
func (g *Game) keepConclusion() func() {
	saved := g.conclusion
	return func() { g.conclusion = saved }
}

// eachMove calls fn with every legal move of the side to move, one per
// promotion choice.
func (g *Game) eachMove(fn func(*chess.Move) error) error {
	colour := g.whosTurn
	for _, p := range g.board.PiecesOf(colour) {
		targets, err := g.CalculateLegalMoves(p).Expand(p.Coords)
		if err != nil {
			return err
		}
		for _, t := range targets {
			for _, promo := range g.promotionChoices(p, t.To) {
				if err := fn(g.moveFor(p, t, promo)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (g *Game) promotionChoices(p board.Piece, to chess.Coords) []chess.Species {
	colour := p.Type.Colour()
	if p.Type.Species() != chess.Pawn || !g.rules.IsPromotionRank(colour, to.Y) {
		return []chess.Species{chess.NoSpecies}
	}
	if allowed := g.rules.PromotionsAllowed[colour]; len(allowed) > 0 {
		return allowed
	}
	return []chess.Species{chess.NoSpecies}
}
