package engine

import (
	"fmt"

	"github.com/lgbarn/infinite-chess-go/internal/board"
	"github.com/lgbarn/infinite-chess-go/internal/chess"
)

// removeSelfChecks drops the moves of p that would leave a royal of its
// colour attacked.
//
// Sliding moves are never simulated. A royal's slides are dropped. In check
// with one attacker, slides are replaced by the individual moves that
// capture the attacker or land on its line of attack; with more attackers
// they are dropped. Out of check, a pinned piece keeps only the slide along
// its pin. Every individual move is then simulated.
func (g *Game) removeSelfChecks(p board.Piece, lm *LegalMoves) {
	colour := p.Type.Colour()
	royals := g.royals(colour)
	if len(royals) == 0 {
		return
	}

	if p.Type.Species().IsRoyal() {
		lm.Sliding = nil
	}

	var attackers []Attacker
	var attacked chess.Coords
	for _, r := range royals {
		if as := g.Attackers(r, colour); len(as) > 0 {
			attackers = append(attackers, as...)
			attacked = r
		}
	}

	switch {
	case len(attackers) > 1:
		lm.Sliding = nil
	case len(attackers) == 1:
		for _, to := range interpositions(p.Coords, lm.Sliding, attackers[0], attacked) {
			if !containsTarget(lm.Individual, to) {
				lm.Individual = append(lm.Individual, Target{To: to})
			}
		}
		lm.Sliding = nil
	case len(lm.Sliding) > 0:
		g.restrictToPin(p, lm, royals)
	}

	kept := lm.Individual[:0:0]
	for _, t := range lm.Individual {
		m := g.moveFor(p, t, chess.NoSpecies)
		if check, err := g.SimulateMove(m, colour); err == nil && !check {
			kept = append(kept, t)
		}
	}
	lm.Individual = kept
}

// interpositions returns the squares reachable by the slides of a piece on
// from that capture attacker or block its line to royal.
func interpositions(from chess.Coords, slides map[chess.Direction]chess.Range, a Attacker, royal chess.Coords) []chess.Coords {
	var out []chess.Coords
	if !a.Sliding {
		for d, r := range slides {
			if k, ok := d.StepsBetween(from, a.Coords); ok && r.Contains(k) {
				out = append(out, a.Coords)
				break
			}
		}
		return out
	}

	// The attack segment runs from the attacker (step 0, a capture) up to
	// but excluding the royal (step n).
	n, _ := a.Dir.StepsBetween(a.Coords, royal)
	toward := a.Dir
	if n < 0 {
		toward = chess.Direction{DX: -a.Dir.DX, DY: -a.Dir.DY}
		n = -n
	}

	for d, r := range slides {
		k, j, ok := intersect(from, d, a.Coords, toward)
		if !ok {
			// Parallel lines: only a capture along the shared line helps.
			if k, onLine := d.StepsBetween(from, a.Coords); onLine && r.Contains(k) {
				out = appendUnique(out, a.Coords)
			}
			continue
		}
		if j < 0 || j >= n || !r.Contains(k) {
			continue
		}
		out = appendUnique(out, from.Step(d, k))
	}
	return out
}

// intersect solves from + k*d == at + j*e for whole k and j by Cramer's
// rule. ok is false when the lines are parallel or meet off the lattice.
func intersect(from chess.Coords, d chess.Direction, at chess.Coords, e chess.Direction) (k, j int64, ok bool) {
	det := e.DX*d.DY - d.DX*e.DY
	if det == 0 {
		return 0, 0, false
	}
	ax, ay := at.X-from.X, at.Y-from.Y
	kNum := e.DX*ay - ax*e.DY
	jNum := d.DX*ay - d.DY*ax
	if kNum%det != 0 || jNum%det != 0 {
		return 0, 0, false
	}
	return kNum / det, jNum / det, true
}

func appendUnique(cs []chess.Coords, c chess.Coords) []chess.Coords {
	for _, x := range cs {
		if x == c {
			return cs
		}
	}
	return append(cs, c)
}

// restrictToPin lifts p off the board and looks for sliders that would then
// attack one of its royals through p's square. A pinned piece keeps only
// the slide along the pin line; a piece pinned along two lines keeps none.
func (g *Game) restrictToPin(p board.Piece, lm *LegalMoves, royals []chess.Coords) {
	colour := p.Type.Colour()
	var candidates []chess.Coords
	for _, r := range royals {
		for _, d := range g.board.Directions() {
			if _, ok := d.StepsBetween(r, p.Coords); ok {
				candidates = append(candidates, r)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return
	}

	g.board.Mute()
	defer g.board.Unmute()
	lifted, err := g.board.Remove(p.Coords)
	if err != nil {
		panic(fmt.Sprintf("engine: lift %v for pin check: %v", p.Coords, err))
	}
	var pins []chess.Direction
	for _, r := range candidates {
		for _, a := range g.Attackers(r, colour) {
			if !a.Sliding {
				continue
			}
			if _, ok := a.Dir.StepsBetween(r, p.Coords); ok && !containsDirection(pins, a.Dir) {
				pins = append(pins, a.Dir)
			}
		}
	}
	if _, err := g.board.AddAt(lifted.Type, lifted.Coords, lifted.Index); err != nil {
		panic(fmt.Sprintf("engine: restore %v after pin check: %v", lifted.Coords, err))
	}

	switch len(pins) {
	case 0:
	case 1:
		r, ok := lm.Sliding[pins[0]]
		lm.Sliding = nil
		if ok {
			lm.Sliding = map[chess.Direction]chess.Range{pins[0]: r}
		}
	default:
		lm.Sliding = nil
	}
}

func containsDirection(ds []chess.Direction, d chess.Direction) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}
