// Package chess provides the core types shared by the infinite-chess rule engine.
package chess

import "strings"

// Colour represents the owner of a piece or the player whose turn it is.
type Colour int

const (
	Neutral Colour = iota // Obstacles and voids belong to nobody
	White
	Black
	NumColours
)

// String returns the lower-case name of a colour.
func (c Colour) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "neutral"
	}
}

// Opposite returns the opposing player colour. Neutral has no opposite.
func (c Colour) Opposite() Colour {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return Neutral
	}
}

// ForwardOffset returns +1 for White, -1 for Black (pawn direction along y).
func ForwardOffset(c Colour) int64 {
	if c == Black {
		return -1
	}
	return 1
}

// ParseColour converts a colour name into a Colour.
func ParseColour(s string) (Colour, bool) {
	switch strings.ToLower(s) {
	case "white":
		return White, true
	case "black":
		return Black, true
	case "neutral":
		return Neutral, true
	}
	return Neutral, false
}

// Species identifies a kind of piece independent of its owner.
type Species int

const (
	NoSpecies Species = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	Guard
	Chancellor
	Archbishop
	Amazon
	Hawk
	Camel
	Giraffe
	Zebra
	Centaur
	RoyalCentaur
	Knightrider
	Obstacle
	Void
	NumSpecies
)

var speciesNames = [NumSpecies]string{
	"none", "pawn", "knight", "bishop", "rook", "queen", "king", "guard",
	"chancellor", "archbishop", "amazon", "hawk", "camel", "giraffe", "zebra",
	"centaur", "royalcentaur", "knightrider", "obstacle", "void",
}

// Abbreviations used by the starting-position shorthand (upper-case form).
var speciesAbbrs = [NumSpecies]string{
	"", "P", "N", "B", "R", "Q", "K", "GU",
	"CH", "AR", "AM", "HA", "CA", "GI", "ZE",
	"CE", "RC", "NR", "OB", "VO",
}

// String returns the lower-case name of a species.
func (s Species) String() string {
	if s >= 0 && s < NumSpecies {
		return speciesNames[s]
	}
	return "unknown"
}

// Abbr returns the upper-case abbreviation of a species.
func (s Species) Abbr() string {
	if s > NoSpecies && s < NumSpecies {
		return speciesAbbrs[s]
	}
	return "?"
}

// IsRoyal reports whether losing this species matters for royal win conditions.
func (s Species) IsRoyal() bool {
	return s == King || s == RoyalCentaur
}

// IsNeutral reports whether this species only ever appears as a neutral piece.
func (s Species) IsNeutral() bool {
	return s == Obstacle || s == Void
}

// Category is the closed set of special-move behaviours a species can have.
type Category int

const (
	CategoryNone    Category = iota // No special moves
	CategoryPawn                    // Forward pushes, diagonal captures, en passant, promotion
	CategoryCastler                 // Royal that may castle with a rook-like partner
)

// Category returns the special-move category of a species.
func (s Species) Category() Category {
	switch s {
	case Pawn:
		return CategoryPawn
	case King, RoyalCentaur:
		return CategoryCastler
	default:
		return CategoryNone
	}
}

// ParseSpecies converts a species name (e.g. "knight") into a Species.
func ParseSpecies(name string) (Species, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s := Pawn; s < NumSpecies; s++ {
		if speciesNames[s] == name {
			return s, true
		}
	}
	return NoSpecies, false
}

// SpeciesFromAbbr converts an abbreviation (any case) into a Species.
func SpeciesFromAbbr(abbr string) (Species, bool) {
	abbr = strings.ToUpper(abbr)
	for s := Pawn; s < NumSpecies; s++ {
		if speciesAbbrs[s] == abbr {
			return s, true
		}
	}
	return NoSpecies, false
}

// PieceType combines a species with its owner.
type PieceType int

// PieceShift is used for encoding coloured piece types.
const PieceShift = 2

// NoPiece is the zero PieceType, used where a move captured or promoted nothing.
const NoPiece PieceType = 0

// MakePieceType creates a coloured piece type.
func MakePieceType(colour Colour, species Species) PieceType {
	return PieceType((int(species) << PieceShift) | int(colour))
}

// W creates a white piece type.
func W(s Species) PieceType {
	return MakePieceType(White, s)
}

// B creates a black piece type.
func B(s Species) PieceType {
	return MakePieceType(Black, s)
}

// N creates a neutral piece type.
func N(s Species) PieceType {
	return MakePieceType(Neutral, s)
}

// Colour extracts the owner of a piece type.
func (t PieceType) Colour() Colour {
	return Colour(int(t) & (1<<PieceShift - 1))
}

// Species extracts the species of a piece type.
func (t PieceType) Species() Species {
	return Species(int(t) >> PieceShift)
}

// String returns e.g. "white knight".
func (t PieceType) String() string {
	if t == NoPiece {
		return "none"
	}
	return t.Colour().String() + " " + t.Species().String()
}
