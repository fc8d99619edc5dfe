package board

import (
	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"golang.org/x/exp/slices"
)

// TypeListState is the observable state of one piece type list.
type TypeListState struct {
	Slots []Slot
	Free  []int
}

// LineState is one organised line and its ordered occupants.
type LineState struct {
	Dir    chess.Direction
	Key    chess.LineKey
	Pieces []chess.Coords
}

// Snapshot is a deep, deterministic copy of the board's indices, suitable
// for equality comparison.
type Snapshot struct {
	Lists   map[chess.PieceType]TypeListState
	Squares map[chess.Coords]chess.PieceType
	Lines   []LineState
}

// Snapshot captures the board state.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Lists:   make(map[chess.PieceType]TypeListState, len(b.lists)),
		Squares: make(map[chess.Coords]chess.PieceType, len(b.squares)),
	}
	for t, l := range b.lists {
		s.Lists[t] = TypeListState{
			Slots: cloneOrNil(l.slots),
			Free:  cloneOrNil(l.free),
		}
	}
	for c, occ := range b.squares {
		s.Squares[c] = occ.typ
	}
	for _, d := range b.dirs {
		for key, bucket := range b.lines[d] {
			s.Lines = append(s.Lines, LineState{Dir: d, Key: key, Pieces: slices.Clone(bucket)})
		}
	}
	slices.SortFunc(s.Lines, func(a, b LineState) int {
		switch {
		case a.Dir != b.Dir:
			if a.Dir.Less(b.Dir) {
				return -1
			}
			return 1
		case a.Key.C != b.Key.C:
			if a.Key.C < b.Key.C {
				return -1
			}
			return 1
		case a.Key.X < b.Key.X:
			return -1
		case a.Key.X > b.Key.X:
			return 1
		}
		return 0
	})
	return s
}

func cloneOrNil[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}

// Verify cross-checks the derived indices against the type lists and
// returns every inconsistency found.
func (b *Board) Verify() []string {
	var problems []string
	seen := 0
	for t, l := range b.lists {
		for i, s := range l.slots {
			if !s.Used {
				if !slices.Contains(l.free, i) {
					problems = append(problems, t.String()+": empty slot missing from free list")
				}
				continue
			}
			seen++
			occ, ok := b.squares[s.Coords]
			if !ok || occ.typ != t || occ.index != i {
				problems = append(problems, t.String()+" at "+s.Coords.String()+": square index disagrees")
			}
			for _, d := range b.dirs {
				if _, found := searchLine(b.LineBucket(d, s.Coords), d, s.Coords); !found {
					problems = append(problems, t.String()+" at "+s.Coords.String()+": missing from line "+d.String())
				}
			}
		}
	}
	if seen != len(b.squares) {
		problems = append(problems, "square index holds pieces absent from the type lists")
	}
	return problems
}
