// Package board provides the sparse piece storage of an unbounded board and
// its derived by-square and by-line indices.
package board

import (
	"cmp"

	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/errors"
	"golang.org/x/exp/slices"
)

// Piece is a piece on the board. Index is its slot in the type's list; it
// is only stable while the piece stays on the board.
type Piece struct {
	Type   chess.PieceType
	Coords chess.Coords
	Index  int
}

// Slot is one entry of a piece type list.
type Slot struct {
	Coords chess.Coords
	Used   bool
}

// typeList is the slot arena of one piece type. Freed slots are kept in
// free and reused LIFO, so list length never shrinks on capture.
type typeList struct {
	slots []Slot
	free  []int
}

type occupant struct {
	typ   chess.PieceType
	index int
}

// Board holds every piece plus the by-square and by-line indices.
// It is not safe for concurrent use.
type Board struct {
	lists   map[chess.PieceType]*typeList
	squares map[chess.Coords]occupant
	lines   map[chess.Direction]map[chess.LineKey][]chess.Coords
	dirs    []chess.Direction

	observers []Observer
	muted     int
}

// New creates an empty board organising lines for the given directions.
func New(dirs []chess.Direction) *Board {
	b := &Board{
		lists:   make(map[chess.PieceType]*typeList),
		squares: make(map[chess.Coords]occupant),
		lines:   make(map[chess.Direction]map[chess.LineKey][]chess.Coords, len(dirs)),
	}
	for _, d := range dirs {
		d, _ = d.Canonical()
		if _, ok := b.lines[d]; ok {
			continue
		}
		b.dirs = append(b.dirs, d)
		b.lines[d] = make(map[chess.LineKey][]chess.Coords)
	}
	return b
}

// Directions returns the organised sliding directions.
func (b *Board) Directions() []chess.Direction {
	return b.dirs
}

// Add places a piece, reusing the most recently freed slot of its type
// when one exists.
func (b *Board) Add(t chess.PieceType, c chess.Coords) (Piece, error) {
	if _, ok := b.squares[c]; ok {
		return Piece{}, errors.Wrapf(errors.ErrSquareOccupied, "add %v at %v", t, c)
	}
	l := b.list(t)
	var idx int
	if n := len(l.free); n > 0 {
		idx = l.free[n-1]
		l.free = l.free[:n-1]
		l.slots[idx] = Slot{Coords: c, Used: true}
	} else {
		idx = len(l.slots)
		l.slots = append(l.slots, Slot{Coords: c, Used: true})
	}
	b.organize(t, c, idx)
	b.notify(Change{Kind: Added, Type: t, Slot: idx, To: c})
	return Piece{Type: t, Coords: c, Index: idx}, nil
}

// AddAt places a piece into a specific slot, which must be free or one past
// the end of the list. It is used to restore captured pieces exactly.
func (b *Board) AddAt(t chess.PieceType, c chess.Coords, idx int) (Piece, error) {
	if _, ok := b.squares[c]; ok {
		return Piece{}, errors.Wrapf(errors.ErrSquareOccupied, "restore %v at %v", t, c)
	}
	l := b.list(t)
	switch {
	case idx == len(l.slots):
		l.slots = append(l.slots, Slot{Coords: c, Used: true})
	case idx >= 0 && idx < len(l.slots) && !l.slots[idx].Used:
		if i := lastIndex(l.free, idx); i >= 0 {
			l.free = slices.Delete(l.free, i, i+1)
		}
		l.slots[idx] = Slot{Coords: c, Used: true}
	default:
		return Piece{}, errors.Wrapf(errors.ErrSlotInUse, "restore %v into slot %d", t, idx)
	}
	b.organize(t, c, idx)
	b.notify(Change{Kind: Added, Type: t, Slot: idx, To: c})
	return Piece{Type: t, Coords: c, Index: idx}, nil
}

func lastIndex(s []int, v int) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == v {
			return i
		}
	}
	return -1
}

// Remove deletes the piece on c, leaving its slot empty and recording it
// in the free list.
func (b *Board) Remove(c chess.Coords) (Piece, error) {
	occ, ok := b.squares[c]
	if !ok {
		return Piece{}, errors.Wrapf(errors.ErrNoPiece, "remove at %v", c)
	}
	l := b.lists[occ.typ]
	l.slots[occ.index] = Slot{}
	l.free = append(l.free, occ.index)
	b.unorganize(c)
	b.notify(Change{Kind: Removed, Type: occ.typ, Slot: occ.index, From: c})
	return Piece{Type: occ.typ, Coords: c, Index: occ.index}, nil
}

// Retract deletes the piece on c and shrinks its list. The piece must sit
// in the last slot of its list. It undoes an Add that extended the list.
func (b *Board) Retract(c chess.Coords) (Piece, error) {
	occ, ok := b.squares[c]
	if !ok {
		return Piece{}, errors.Wrapf(errors.ErrNoPiece, "retract at %v", c)
	}
	l := b.lists[occ.typ]
	if occ.index != len(l.slots)-1 {
		return Piece{}, errors.Wrapf(errors.ErrSlotInUse, "retract %v from slot %d of %d", occ.typ, occ.index, len(l.slots))
	}
	l.slots = l.slots[:occ.index]
	if len(l.slots) == 0 && len(l.free) == 0 {
		delete(b.lists, occ.typ)
	}
	b.unorganize(c)
	b.notify(Change{Kind: Removed, Type: occ.typ, Slot: occ.index, From: c})
	return Piece{Type: occ.typ, Coords: c, Index: occ.index}, nil
}

// Move relocates the piece on from to the empty square to, keeping its slot.
func (b *Board) Move(from, to chess.Coords) (Piece, error) {
	occ, ok := b.squares[from]
	if !ok {
		return Piece{}, errors.Wrapf(errors.ErrNoPiece, "move from %v", from)
	}
	if _, taken := b.squares[to]; taken {
		return Piece{}, errors.Wrapf(errors.ErrSquareOccupied, "move %v to %v", occ.typ, to)
	}
	b.unorganize(from)
	b.lists[occ.typ].slots[occ.index].Coords = to
	b.organize(occ.typ, to, occ.index)
	b.notify(Change{Kind: Moved, Type: occ.typ, Slot: occ.index, From: from, To: to})
	return Piece{Type: occ.typ, Coords: to, Index: occ.index}, nil
}

// PieceAt returns the piece on c.
func (b *Board) PieceAt(c chess.Coords) (Piece, bool) {
	occ, ok := b.squares[c]
	if !ok {
		return Piece{}, false
	}
	return Piece{Type: occ.typ, Coords: c, Index: occ.index}, true
}

// TypeAt returns the type of the piece on c, or NoPiece.
func (b *Board) TypeAt(c chess.Coords) chess.PieceType {
	return b.squares[c].typ
}

// Occupied reports whether any piece stands on c.
func (b *Board) Occupied(c chess.Coords) bool {
	_, ok := b.squares[c]
	return ok
}

// PieceIndex returns the slot of the piece of type t on c.
func (b *Board) PieceIndex(t chess.PieceType, c chess.Coords) (int, bool) {
	occ, ok := b.squares[c]
	if !ok || occ.typ != t {
		return -1, false
	}
	return occ.index, true
}

// LineBucket returns the pieces on the line through c along d, ordered by
// step position. The returned slice must not be modified.
func (b *Board) LineBucket(d chess.Direction, c chess.Coords) []chess.Coords {
	d, _ = d.Canonical()
	lines, ok := b.lines[d]
	if !ok {
		return nil
	}
	return lines[d.LineKey(c)]
}

// Neighbours returns the nearest pieces on each side of c along d. c itself
// is skipped whether or not it is occupied.
func (b *Board) Neighbours(d chess.Direction, c chess.Coords) (before, after *Piece) {
	d, _ = d.Canonical()
	bucket := b.LineBucket(d, c)
	if len(bucket) == 0 {
		return nil, nil
	}
	i, found := searchLine(bucket, d, c)
	j := i
	if found {
		j = i + 1
	}
	if i > 0 {
		p, _ := b.PieceAt(bucket[i-1])
		before = &p
	}
	if j < len(bucket) {
		p, _ := b.PieceAt(bucket[j])
		after = &p
	}
	return before, after
}

// Slots returns the slot list of a piece type. The returned slice must not
// be modified.
func (b *Board) Slots(t chess.PieceType) []Slot {
	if l, ok := b.lists[t]; ok {
		return l.slots
	}
	return nil
}

// FreeSlots returns the number of reusable slots of a piece type.
func (b *Board) FreeSlots(t chess.PieceType) int {
	if l, ok := b.lists[t]; ok {
		return len(l.free)
	}
	return 0
}

// Types returns every piece type with a list, in ascending order.
func (b *Board) Types() []chess.PieceType {
	types := make([]chess.PieceType, 0, len(b.lists))
	for t := range b.lists {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Pieces returns every piece, grouped by type and ordered by slot.
func (b *Board) Pieces() []Piece {
	out := make([]Piece, 0, len(b.squares))
	for _, t := range b.Types() {
		for i, s := range b.lists[t].slots {
			if s.Used {
				out = append(out, Piece{Type: t, Coords: s.Coords, Index: i})
			}
		}
	}
	return out
}

// PiecesOf returns the pieces owned by colour.
func (b *Board) PiecesOf(colour chess.Colour) []Piece {
	var out []Piece
	for _, p := range b.Pieces() {
		if p.Type.Colour() == colour {
			out = append(out, p)
		}
	}
	return out
}

// CountOf returns how many pieces of type t are on the board.
func (b *Board) CountOf(t chess.PieceType) int {
	l, ok := b.lists[t]
	if !ok {
		return 0
	}
	return len(l.slots) - len(l.free)
}

// Count returns the number of pieces on the board.
func (b *Board) Count() int {
	return len(b.squares)
}

func (b *Board) list(t chess.PieceType) *typeList {
	l, ok := b.lists[t]
	if !ok {
		l = &typeList{}
		b.lists[t] = l
	}
	return l
}

func (b *Board) organize(t chess.PieceType, c chess.Coords, idx int) {
	b.squares[c] = occupant{typ: t, index: idx}
	for _, d := range b.dirs {
		key := d.LineKey(c)
		bucket := b.lines[d][key]
		i, _ := searchLine(bucket, d, c)
		b.lines[d][key] = slices.Insert(bucket, i, c)
	}
}

func (b *Board) unorganize(c chess.Coords) {
	delete(b.squares, c)
	for _, d := range b.dirs {
		key := d.LineKey(c)
		bucket := b.lines[d][key]
		i, found := searchLine(bucket, d, c)
		if !found {
			continue
		}
		if len(bucket) == 1 {
			delete(b.lines[d], key)
			continue
		}
		b.lines[d][key] = slices.Delete(bucket, i, i+1)
	}
}

func searchLine(bucket []chess.Coords, d chess.Direction, c chess.Coords) (int, bool) {
	return slices.BinarySearchFunc(bucket, d.Axis(c), func(e chess.Coords, axis int64) int {
		return cmp.Compare(d.Axis(e), axis)
	})
}
