// Package moveset holds the static movement templates of every species.
package moveset

import (
	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"golang.org/x/exp/slices"
)

// Moveset is the movement template of one species: leaps that land on a
// fixed offset, and slides along directions with a step range.
type Moveset struct {
	Individual []chess.Coords
	Sliding    map[chess.Direction]chess.Range
}

// Slides reports whether the moveset contains a slide along d.
func (m Moveset) Slides(d chess.Direction) (chess.Range, bool) {
	r, ok := m.Sliding[d]
	return r, ok
}

var (
	orthogonal = []chess.Direction{{DX: 1, DY: 0}, {DX: 0, DY: 1}}
	diagonal   = []chess.Direction{{DX: 1, DY: 1}, {DX: 1, DY: -1}}
	knightLine = []chess.Direction{{DX: 1, DY: 2}, {DX: 1, DY: -2}, {DX: 2, DY: 1}, {DX: 2, DY: -1}}
)

var (
	kingLeaps   = symmetric(1, 1, 1, 0)
	knightLeaps = symmetric(1, 2)
	hawkLeaps   = symmetric(2, 0, 3, 0, 2, 2, 3, 3)
	camelLeaps  = symmetric(1, 3)
	giraffeLeap = symmetric(1, 4)
	zebraLeaps  = symmetric(2, 3)
)

// symmetric expands (a, b) pairs into all 8 reflections and rotations,
// dropping duplicates.
func symmetric(pairs ...int64) []chess.Coords {
	var out []chess.Coords
	for i := 0; i+1 < len(pairs); i += 2 {
		a, b := pairs[i], pairs[i+1]
		for _, c := range []chess.Coords{
			{X: a, Y: b}, {X: -a, Y: b}, {X: a, Y: -b}, {X: -a, Y: -b},
			{X: b, Y: a}, {X: -b, Y: a}, {X: b, Y: -a}, {X: -b, Y: -a},
		} {
			if !slices.Contains(out, c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// For returns the moveset of a species. slideLimit caps every slide; zero
// means unlimited. Pawns, obstacles and voids have empty templates: pawn
// movement is generated by the pawn special-move handler.
func For(s chess.Species, slideLimit int64) Moveset {
	var leaps []chess.Coords
	var slides []chess.Direction

	switch s {
	case chess.Knight:
		leaps = knightLeaps
	case chess.Bishop:
		slides = diagonal
	case chess.Rook:
		slides = orthogonal
	case chess.Queen:
		slides = concat(orthogonal, diagonal)
	case chess.King, chess.Guard:
		leaps = kingLeaps
	case chess.Chancellor:
		leaps, slides = knightLeaps, orthogonal
	case chess.Archbishop:
		leaps, slides = knightLeaps, diagonal
	case chess.Amazon:
		leaps, slides = knightLeaps, concat(orthogonal, diagonal)
	case chess.Hawk:
		leaps = hawkLeaps
	case chess.Camel:
		leaps = camelLeaps
	case chess.Giraffe:
		leaps = giraffeLeap
	case chess.Zebra:
		leaps = zebraLeaps
	case chess.Centaur, chess.RoyalCentaur:
		leaps = concat(kingLeaps, knightLeaps)
	case chess.Knightrider:
		slides = knightLine
	}

	m := Moveset{Individual: leaps}
	if len(slides) > 0 {
		r := chess.Unlimited
		if slideLimit > 0 {
			r = chess.Range{Min: -slideLimit, Max: slideLimit}
		}
		m.Sliding = make(map[chess.Direction]chess.Range, len(slides))
		for _, d := range slides {
			m.Sliding[d] = r
		}
	}
	return m
}

func concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// Directions returns the union of sliding directions used by the given
// species, in a deterministic order.
func Directions(species []chess.Species) []chess.Direction {
	var dirs []chess.Direction
	for _, s := range species {
		for d := range For(s, 0).Sliding {
			if !slices.Contains(dirs, d) {
				dirs = append(dirs, d)
			}
		}
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

// Vicinity maps a leap offset to the species whose individual moveset
// contains it. A piece at square P of species S attacks P+offset when S is
// listed under offset.
type Vicinity map[chess.Coords][]chess.Species

// BuildVicinity builds the reverse index for the species in play.
func BuildVicinity(species []chess.Species) Vicinity {
	v := make(Vicinity)
	for _, s := range species {
		for _, offset := range For(s, 0).Individual {
			if !slices.Contains(v[offset], s) {
				v[offset] = append(v[offset], s)
			}
		}
	}
	return v
}

// Has reports whether species s leaps by offset.
func (v Vicinity) Has(offset chess.Coords, s chess.Species) bool {
	return slices.Contains(v[offset], s)
}
