package engine

import "github.com/lgbarn/infinite-chess-go/internal/chess"

type placed struct {
	at  chess.Coords
	typ chess.PieceType
}

// isRepetitionDraw reports whether the current position has occurred twice
// before with the same player to move.
//
// The applied moves are walked backwards while tracking how the current
// position differs from the earlier one: surplus holds pieces present now
// but not then, deficit the reverse. Whenever both are empty the positions
// are equal. The walk stops at the first irreversible move.
func (g *Game) isRepetitionDraw() bool {
	surplus := make(map[placed]int)
	deficit := make(map[placed]int)
	cycle := len(g.rules.TurnOrder)
	equalities := 0

	for i := g.index; i >= 0; i-- {
		m := g.moves[i]
		if m.IsIrreversible() {
			break
		}
		shift(surplus, deficit, placed{at: m.End, typ: m.Type})
		shift(deficit, surplus, placed{at: m.Start, typ: m.Type})

		if len(surplus) == 0 && len(deficit) == 0 && (g.index+1-i)%cycle == 0 {
			equalities++
			if equalities >= 2 {
				return true
			}
		}
	}
	return false
}

// shift adds p to into, unless it cancels an entry of from.
func shift(into, from map[placed]int, p placed) {
	if from[p] > 0 {
		if from[p]--; from[p] == 0 {
			delete(from, p)
		}
		return
	}
	into[p]++
}
