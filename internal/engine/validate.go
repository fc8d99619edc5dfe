package engine

import (
	"golang.org/x/exp/slices"

	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/errors"
)

// IsOpponentsMoveLegal checks an untrusted move, and the conclusion its
// sender claims it leads to, against the current position. It returns nil
// for a legal move and a *errors.Rejection carrying a readable reason
// otherwise. It never panics and leaves the game unchanged.
func (g *Game) IsOpponentsMoveLegal(d chess.Draft, claimed *chess.Conclusion) error {
	if g.conclusion != nil {
		return errors.Rejectf("game already ended: %v", g.conclusion)
	}
	if !g.AtFront() {
		return errors.Rejectf("not at the latest position")
	}
	for _, c := range []chess.Coords{d.Start, d.End} {
		if !c.InPlay() {
			return errors.Rejectf("square %v is out of play", c)
		}
	}
	p, ok := g.board.PieceAt(d.Start)
	if !ok {
		return errors.Rejectf("no piece at %v", d.Start)
	}
	if colour := p.Type.Colour(); colour != g.whosTurn {
		return errors.Rejectf("moved a %v piece on %v's turn", colour, g.whosTurn)
	}

	target, ok := g.CalculateLegalMoves(p).Allows(p.Coords, d.End)
	if !ok {
		return errors.Rejectf("%v cannot move from %v to %v", p.Type, d.Start, d.End)
	}

	colour := p.Type.Colour()
	promotes := p.Type.Species() == chess.Pawn && g.rules.IsPromotionRank(colour, d.End.Y) &&
		len(g.rules.PromotionsAllowed[colour]) > 0
	switch {
	case d.Promotion != chess.NoSpecies && !promotes:
		return errors.Rejectf("promotion to %v is not possible on %v", d.Promotion, d.End)
	case promotes && d.Promotion == chess.NoSpecies:
		return errors.Rejectf("pawn reaching %v must promote", d.End)
	case promotes && !slices.Contains(g.rules.PromotionsAllowed[colour], d.Promotion):
		return errors.Rejectf("promotion to %v is not allowed", d.Promotion)
	}

	m := g.moveFor(p, target, d.Promotion)
	if err := g.MakeMove(m, MoveOptions{FlipTurn: true, RecordMove: true, DoGameOverChecks: true, Simulated: true}); err != nil {
		return errors.Rejectf("move could not be applied: %v", err)
	}
	got := g.conclusion
	if err := g.RewindMove(RewindOptions{RemoveMove: true, Simulated: true}); err != nil {
		return errors.Rejectf("move could not be rewound: %v", err)
	}

	switch {
	case claimed == nil && got != nil:
		return errors.Rejectf("move ends the game by %v but no conclusion was claimed", got)
	case claimed != nil && got == nil:
		return errors.Rejectf("claimed conclusion %v but the game goes on", claimed)
	case claimed != nil && *claimed != *got:
		return errors.Rejectf("claimed conclusion %v but the game ends by %v", claimed, got)
	}
	return nil
}
