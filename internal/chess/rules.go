package chess

import (
	"fmt"
	"strings"
)

// WinCondition names one way a player can win.
type WinCondition string

const (
	Checkmate         WinCondition = "checkmate"
	RoyalCapture      WinCondition = "royalcapture"
	AllRoyalsCaptured WinCondition = "allroyalscaptured"
	AllPiecesCaptured WinCondition = "allpiecescaptured"
	ThreeCheck        WinCondition = "threecheck"
	KingOfTheHill     WinCondition = "koth"
)

// ParseWinCondition validates a win condition name.
func ParseWinCondition(s string) (WinCondition, bool) {
	switch w := WinCondition(strings.ToLower(s)); w {
	case Checkmate, RoyalCapture, AllRoyalsCaptured, AllPiecesCaptured, ThreeCheck, KingOfTheHill:
		return w, true
	}
	return "", false
}

// Rules holds the per-game rule parameters.
type Rules struct {
	// Who moves on each ply, cycled. A colour may appear more than once.
	TurnOrder []Colour

	WinConditions     map[Colour][]WinCondition
	PromotionRanks    map[Colour][]int64
	PromotionsAllowed map[Colour][]Species

	// Plies without a capture or pawn move after which the game is drawn.
	// Zero disables the rule.
	MoveRule int

	// Maximum steps any slider may travel. Zero means unlimited.
	SlideLimit int64

	// Optional playable region. Nil means the board is unbounded.
	WorldBorder *Bounds
}

// HasWinCondition reports whether colour wins by the given condition.
func (r *Rules) HasWinCondition(colour Colour, w WinCondition) bool {
	for _, c := range r.WinConditions[colour] {
		if c == w {
			return true
		}
	}
	return false
}

// IsPromotionRank reports whether a pawn of colour promotes on rank y.
func (r *Rules) IsPromotionRank(colour Colour, y int64) bool {
	for _, rank := range r.PromotionRanks[colour] {
		if rank == y {
			return true
		}
	}
	return false
}

// Colours returns the distinct colours of the turn order, in order.
func (r *Rules) Colours() []Colour {
	var out []Colour
	seen := make(map[Colour]bool)
	for _, c := range r.TurnOrder {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Placement is one piece of a starting position.
type Placement struct {
	Type         PieceType
	Coords       Coords
	SpecialRight bool
}

// Conclusion condition names used for draws.
const (
	DrawStalemate  = "stalemate"
	DrawRepetition = "repetition"
	DrawMoveRule   = "moverule"
	DrawInsuffMat  = "insuffmat"
)

// Conclusion is a terminal game result. A Neutral winner means a draw.
type Conclusion struct {
	Winner    Colour
	Condition string
}

// IsDraw reports whether nobody won.
func (c Conclusion) IsDraw() bool {
	return c.Winner == Neutral
}

// String returns e.g. "white checkmate" or "draw repetition".
func (c Conclusion) String() string {
	if c.IsDraw() {
		return "draw " + c.Condition
	}
	return c.Winner.String() + " " + c.Condition
}

// ParseConclusion parses the String form of a Conclusion.
func ParseConclusion(s string) (Conclusion, error) {
	who, cond, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok || cond == "" {
		return Conclusion{}, fmt.Errorf("conclusion %q: want \"<winner|draw> <condition>\"", s)
	}
	if who == "draw" {
		return Conclusion{Winner: Neutral, Condition: cond}, nil
	}
	colour, ok := ParseColour(who)
	if !ok || colour == Neutral {
		return Conclusion{}, fmt.Errorf("conclusion %q: unknown winner %q", s, who)
	}
	return Conclusion{Winner: colour, Condition: cond}, nil
}
