package engine

import (
	"math"

	"github.com/lgbarn/infinite-chess-go/internal/chess"
)

const many = math.MaxInt

// materialCap is the piece count, neutrals excluded, from which material
// is always sufficient.
const materialCap = 11

// material is the army of one side besides its king. Bishops are split by
// square colour and sorted, most numerous first.
type material struct {
	counts  map[chess.Species]int
	bishops [2]int
}

// drawnMaterial lists, for a lone king against king plus the army, upper
// bounds of armies that cannot force mate on an unbounded board.
var drawnMaterial = []material{
	{},
	{counts: map[chess.Species]int{chess.Queen: 1}},
	{bishops: [2]int{many, 1}},
	{counts: map[chess.Species]int{chess.Knight: 3}},
	{counts: map[chess.Species]int{chess.Hawk: 2}},
	{counts: map[chess.Species]int{chess.Rook: 1, chess.Knight: 1}},
	{counts: map[chess.Species]int{chess.Rook: 1}, bishops: [2]int{1, 0}},
	{counts: map[chess.Species]int{chess.Archbishop: 1}, bishops: [2]int{1, 0}},
	{counts: map[chess.Species]int{chess.Archbishop: 1, chess.Knight: 1}},
	{counts: map[chess.Species]int{chess.Knight: 1}, bishops: [2]int{many, 0}},
	{counts: map[chess.Species]int{chess.Knight: 1}, bishops: [2]int{1, 1}},
	{counts: map[chess.Species]int{chess.Knight: 2}, bishops: [2]int{1, 0}},
	{counts: map[chess.Species]int{chess.Guard: 1}},
	{counts: map[chess.Species]int{chess.Chancellor: 1}},
	{counts: map[chess.Species]int{chess.Knightrider: 2}},
}

// within reports whether army m fits under the bounds of limit.
func (m material) within(limit material) bool {
	for s, n := range m.counts {
		if n > limit.counts[s] {
			return false
		}
	}
	return m.bishops[0] <= limit.bishops[0] && m.bishops[1] <= limit.bishops[1]
}

func (m material) empty() bool {
	return len(m.counts) == 0 && m.bishops == [2]int{}
}

// HasInsufficientMaterial returns true if neither side can force mate.
// It only applies to two-player games decided purely by checkmate, where
// each side has exactly one king and no other royal.
func (g *Game) HasInsufficientMaterial() bool {
	colours := g.rules.Colours()
	if len(colours) != 2 {
		return false
	}
	for _, c := range colours {
		conds := g.rules.WinConditions[c]
		if len(conds) != 1 || conds[0] != chess.Checkmate {
			return false
		}
	}

	armies := make(map[chess.Colour]*material, 2)
	kings := make(map[chess.Colour]int, 2)
	for _, c := range colours {
		armies[c] = &material{counts: make(map[chess.Species]int)}
	}
	total := 0
	for _, p := range g.board.Pieces() {
		colour, s := p.Type.Colour(), p.Type.Species()
		if colour == chess.Neutral {
			continue
		}
		total++
		if total >= materialCap {
			return false
		}
		army, ok := armies[colour]
		if !ok {
			return false
		}
		switch {
		case s == chess.Pawn:
			return false
		case s == chess.King:
			kings[colour]++
		case s.IsRoyal():
			return false
		case s == chess.Bishop:
			army.bishops[p.Coords.Parity()]++
		default:
			army.counts[s]++
		}
	}

	for _, c := range colours {
		if kings[c] != 1 {
			return false
		}
		if b := &armies[c].bishops; b[0] < b[1] {
			b[0], b[1] = b[1], b[0]
		}
	}

	for _, pair := range [][2]chess.Colour{{colours[0], colours[1]}, {colours[1], colours[0]}} {
		strong, bare := armies[pair[0]], armies[pair[1]]
		if !bare.empty() {
			continue
		}
		for _, limit := range drawnMaterial {
			if strong.within(limit) {
				return true
			}
		}
	}
	return false
}
