package board

import "github.com/lgbarn/infinite-chess-go/internal/chess"

// ChangeKind classifies a board mutation.
type ChangeKind int

const (
	Added ChangeKind = iota
	Removed
	Moved
)

// String returns the name of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "moved"
	}
}

// Change is one entry of the change feed. From is unset for Added, To is
// unset for Removed.
type Change struct {
	Kind ChangeKind
	Type chess.PieceType
	Slot int
	From chess.Coords
	To   chess.Coords
}

// Observer receives the change feed. Observers are called synchronously
// after each mutation and must not mutate the board.
type Observer interface {
	BoardChanged(Change)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Change)

// BoardChanged calls f(c).
func (f ObserverFunc) BoardChanged(c Change) {
	f(c)
}

// Subscribe registers an observer of the change feed.
func (b *Board) Subscribe(o Observer) {
	b.observers = append(b.observers, o)
}

// Mute suspends the change feed until the matching Unmute. Calls nest.
// Simulated moves are applied and reverted while muted.
func (b *Board) Mute() {
	b.muted++
}

// Unmute resumes the change feed.
func (b *Board) Unmute() {
	if b.muted > 0 {
		b.muted--
	}
}

func (b *Board) notify(c Change) {
	if b.muted > 0 {
		return
	}
	for _, o := range b.observers {
		o.BoardChanged(c)
	}
}
