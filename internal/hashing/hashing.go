// Package hashing provides position hashes over an unbounded board and
// duplicate detection of final positions.
package hashing

import (
	"github.com/lgbarn/infinite-chess-go/internal/board"
	"github.com/lgbarn/infinite-chess-go/internal/chess"
)

// A zobrist table cannot be precomputed for an unbounded board, so the key
// of each (type, square) is derived on demand by mixing its parts.
const (
	strongSeed uint64 = 0x6a09e667f3bcc908
	weakSeed   uint64 = 0xbb67ae8584caa73b
)

// splitmix64 finalizer.
func mix(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func squareKey(seed uint64, t chess.PieceType, c chess.Coords) uint64 {
	h := mix(seed ^ uint64(t))
	h = mix(h ^ uint64(c.X))
	return mix(h ^ uint64(c.Y))
}

// PieceKey returns the hash contribution of a piece of type t on c.
func PieceKey(t chess.PieceType, c chess.Coords) uint64 {
	return squareKey(strongSeed, t, c)
}

// TurnKey returns the hash contribution of colour being to move.
func TurnKey(colour chess.Colour) uint64 {
	return mix(strongSeed ^ 0xff ^ uint64(colour)<<8)
}

// PositionHash returns the XOR of the keys of every piece on the board.
func PositionHash(b *board.Board) uint64 {
	var h uint64
	for _, p := range b.Pieces() {
		h ^= PieceKey(p.Type, p.Coords)
	}
	return h
}

// WeakHash is an independent second hash used to confirm PositionHash
// collisions.
func WeakHash(b *board.Board) uint64 {
	var h uint64
	for _, p := range b.Pieces() {
		h += squareKey(weakSeed, p.Type, p.Coords)
	}
	return h
}

// Tracker keeps PositionHash of a board current from its change feed.
// Simulated moves are muted on the board and never reach it.
type Tracker struct {
	hash uint64
}

// NewTracker hashes b and subscribes to its change feed.
func NewTracker(b *board.Board) *Tracker {
	t := &Tracker{hash: PositionHash(b)}
	b.Subscribe(t)
	return t
}

// BoardChanged implements board.Observer.
func (t *Tracker) BoardChanged(c board.Change) {
	switch c.Kind {
	case board.Added:
		t.hash ^= PieceKey(c.Type, c.To)
	case board.Removed:
		t.hash ^= PieceKey(c.Type, c.From)
	case board.Moved:
		t.hash ^= PieceKey(c.Type, c.From) ^ PieceKey(c.Type, c.To)
	}
}

// Hash returns the current position hash.
func (t *Tracker) Hash() uint64 {
	return t.hash
}

// Sign builds the signature of the tracked board's final position without
// rehashing it.
func (t *Tracker) Sign(b *board.Board, toMove chess.Colour, plies int) GameSignature {
	return GameSignature{
		Hash:     t.hash ^ TurnKey(toMove),
		Plies:    plies,
		WeakHash: WeakHash(b),
	}
}

// GameSignature stores identifying information about a game.
type GameSignature struct {
	// Hash is the position hash of the final position, with the player to move
	Hash uint64
	// Plies is the number of moves played
	Plies int
	// WeakHash is a second hash for confirming matches
	WeakHash uint64
}

// Sign builds the signature of a final position.
func Sign(b *board.Board, toMove chess.Colour, plies int) GameSignature {
	return GameSignature{
		Hash:     PositionHash(b) ^ TurnKey(toMove),
		Plies:    plies,
		WeakHash: WeakHash(b),
	}
}

// DuplicateDetector tracks seen final positions.
type DuplicateDetector struct {
	// hashTable stores seen signatures by hash
	hashTable map[uint64][]GameSignature
	// useExactMatch also requires equal ply counts
	useExactMatch bool
	// maxCapacity limits stored signatures; 0 is unlimited
	maxCapacity int
	count       int
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// NewDuplicateDetector creates a new duplicate detector.
// maxCapacity of 0 means unlimited capacity.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// CheckAndAdd reports whether sig was seen before and records it if not.
// Once the detector is full new signatures are checked but not stored.
func (d *DuplicateDetector) CheckAndAdd(sig GameSignature) bool {
	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return true
		}
	}
	if d.IsFull() {
		return false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	d.count++
	return false
}

func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	return !d.useExactMatch || a.Plies == b.Plies
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of stored signatures.
func (d *DuplicateDetector) UniqueCount() int {
	return d.count
}

// IsFull reports whether the capacity limit is reached.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.count >= d.maxCapacity
}
