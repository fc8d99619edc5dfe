// Package render draws board regions and keeps a renderer-side copy of the
// piece list in step with the board's change feed.
package render

import (
	"golang.org/x/exp/slices"

	"github.com/lgbarn/infinite-chess-go/internal/board"
	"github.com/lgbarn/infinite-chess-go/internal/chess"
)

type slotKey struct {
	typ  chess.PieceType
	slot int
}

// Instance is one entry of the instance buffer.
type Instance struct {
	Type   chess.PieceType
	Coords chess.Coords
	Live   bool
}

// SlotMap mirrors the board's pieces in a flat instance buffer. Each
// (type, slot) owns one buffer offset while its piece is on the board;
// freed offsets are reused, so the buffer only grows when more pieces are
// on the board than ever before.
type SlotMap struct {
	offsets map[slotKey]int
	buf     []Instance
	free    []int
	version int
}

// NewSlotMap fills a SlotMap from b and subscribes it to b's change feed.
func NewSlotMap(b *board.Board) *SlotMap {
	m := &SlotMap{offsets: make(map[slotKey]int)}
	for _, p := range b.Pieces() {
		m.add(slotKey{typ: p.Type, slot: p.Index}, p.Coords)
	}
	b.Subscribe(m)
	return m
}

// BoardChanged implements board.Observer.
func (m *SlotMap) BoardChanged(c board.Change) {
	key := slotKey{typ: c.Type, slot: c.Slot}
	switch c.Kind {
	case board.Added:
		m.add(key, c.To)
	case board.Removed:
		if off, ok := m.offsets[key]; ok {
			m.buf[off] = Instance{}
			m.free = append(m.free, off)
			delete(m.offsets, key)
		}
	case board.Moved:
		if off, ok := m.offsets[key]; ok {
			m.buf[off].Coords = c.To
		}
	}
	m.version++
}

func (m *SlotMap) add(key slotKey, at chess.Coords) {
	off := len(m.buf)
	if n := len(m.free); n > 0 {
		off = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		m.buf = append(m.buf, Instance{})
	}
	m.buf[off] = Instance{Type: key.typ, Coords: at, Live: true}
	m.offsets[key] = off
}

// Offset returns the buffer offset owned by a piece slot.
func (m *SlotMap) Offset(t chess.PieceType, slot int) (int, bool) {
	off, ok := m.offsets[slotKey{typ: t, slot: slot}]
	return off, ok
}

// Buffer returns the instance buffer. Dead entries have Live unset.
// The returned slice must not be modified.
func (m *SlotMap) Buffer() []Instance {
	return m.buf
}

// Len returns the number of live instances.
func (m *SlotMap) Len() int {
	return len(m.offsets)
}

// Version counts the changes applied since creation.
func (m *SlotMap) Version() int {
	return m.version
}

// Live returns the live instances ordered by square.
func (m *SlotMap) Live() []Instance {
	out := make([]Instance, 0, len(m.offsets))
	for _, inst := range m.buf {
		if inst.Live {
			out = append(out, inst)
		}
	}
	slices.SortFunc(out, func(a, b Instance) int {
		switch {
		case a.Coords.Y != b.Coords.Y:
			return cmpInt(a.Coords.Y, b.Coords.Y)
		case a.Coords.X != b.Coords.X:
			return cmpInt(a.Coords.X, b.Coords.X)
		}
		return int(a.Type) - int(b.Type)
	})
	return out
}

func cmpInt(a, b int64) int {
	if a < b {
		return -1
	}
	return 1
}
