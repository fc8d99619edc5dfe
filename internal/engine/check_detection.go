package engine

import (
	"github.com/lgbarn/infinite-chess-go/internal/board"
	"github.com/lgbarn/infinite-chess-go/internal/chess"
)

// Attacker is a piece attacking a square. Dir is the line of attack for
// sliding attackers.
type Attacker struct {
	Coords  chess.Coords
	Sliding bool
	Dir     chess.Direction
}

// IsAttacked returns true if the square is attacked by any enemy of defender.
func (g *Game) IsAttacked(c chess.Coords, defender chess.Colour) bool {
	return len(g.attackers(c, defender, false)) > 0
}

// Attackers returns every enemy of defender attacking c, without duplicates.
func (g *Game) Attackers(c chess.Coords, defender chess.Colour) []Attacker {
	return g.attackers(c, defender, true)
}

// isEnemy reports whether t belongs to a player other than colour.
// Neutral pieces are nobody's enemy.
func isEnemy(t chess.PieceType, colour chess.Colour) bool {
	return t != chess.NoPiece && t.Colour() != chess.Neutral && t.Colour() != colour
}

func (g *Game) attackers(c chess.Coords, defender chess.Colour, all bool) []Attacker {
	var found []Attacker
	add := func(a Attacker) bool {
		for _, f := range found {
			if f.Coords == a.Coords {
				return !all
			}
		}
		found = append(found, a)
		return !all
	}

	// Leapers: a piece at c-offset reaches c when its species leaps by offset.
	for offset, species := range g.vicinity {
		from := c.Sub(offset)
		t := g.board.TypeAt(from)
		if !isEnemy(t, defender) {
			continue
		}
		for _, s := range species {
			if s == t.Species() {
				if add(Attacker{Coords: from}) {
					return found
				}
				break
			}
		}
	}

	// Pawns capture one square diagonally forward in their own direction.
	for _, dy := range []int64{-1, 1} {
		for _, dx := range []int64{-1, 1} {
			from := chess.C(c.X+dx, c.Y+dy)
			t := g.board.TypeAt(from)
			if !isEnemy(t, defender) || t.Species() != chess.Pawn {
				continue
			}
			if c.Y-from.Y != chess.ForwardOffset(t.Colour()) {
				continue
			}
			if add(Attacker{Coords: from}) {
				return found
			}
		}
	}

	// Sliders: only the nearest piece on each side of a line can reach c.
	for _, d := range g.board.Directions() {
		before, after := g.board.Neighbours(d, c)
		for _, p := range []*board.Piece{before, after} {
			if p == nil || !g.slidesTo(*p, d, c, defender) {
				continue
			}
			if add(Attacker{Coords: p.Coords, Sliding: true, Dir: d}) {
				return found
			}
		}
	}
	return found
}

// slidesTo reports whether enemy piece p reaches c along d, assuming no
// piece stands between them.
func (g *Game) slidesTo(p board.Piece, d chess.Direction, c chess.Coords, defender chess.Colour) bool {
	if !isEnemy(p.Type, defender) {
		return false
	}
	r, ok := g.moveset(p.Type.Species()).Slides(d)
	if !ok {
		return false
	}
	k, ok := d.StepsBetween(p.Coords, c)
	return ok && r.Contains(k)
}

// royalsAttacked reports whether any royal of colour is attacked.
func (g *Game) royalsAttacked(colour chess.Colour) bool {
	for _, r := range g.royals(colour) {
		if g.IsAttacked(r, colour) {
			return true
		}
	}
	return false
}
