package testutil

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/lgbarn/infinite-chess-go/internal/chess"
)

// Standard 8x8 positions, mapped onto squares (1,1)..(8,8) with a1 at (1,1).
const (
	StartFEN     = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	KiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	EndgameFEN   = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	PromotionFEN = "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1"
)

// Position is a parsed FEN: the pieces, the side to move and any en-passant
// opportunity.
type Position struct {
	Placements []chess.Placement
	Turn       chess.Colour
	EnPassant  *chess.EnPassant
}

var fenSpecies = map[byte]chess.Species{
	'p': chess.Pawn, 'n': chess.Knight, 'b': chess.Bishop,
	'r': chess.Rook, 'q': chess.Queen, 'k': chess.King,
}

// ParseFEN converts a FEN string into placements. Pawns on their home rank
// hold their special right, as do kings and rooks named by the castling field.
func ParseFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Position{}, fmt.Errorf("fen %q: want at least 4 fields", fen)
	}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Position{}, fmt.Errorf("fen %q: want 8 ranks", fen)
	}

	rights := castlingSquares(fields[2])
	var pos Position
	for i, rank := range ranks {
		y := int64(8 - i)
		x := int64(1)
		for j := 0; j < len(rank); j++ {
			ch := rank[j]
			if ch >= '1' && ch <= '8' {
				x += int64(ch - '0')
				continue
			}
			lower := ch | 0x20
			species, ok := fenSpecies[lower]
			if !ok {
				return Position{}, fmt.Errorf("fen %q: unknown piece %q", fen, ch)
			}
			colour := chess.White
			if ch == lower {
				colour = chess.Black
			}
			c := chess.C(x, y)
			right := rights[c]
			if species == chess.Pawn {
				right = (colour == chess.White && y == 2) || (colour == chess.Black && y == 7)
			}
			pos.Placements = append(pos.Placements, chess.Placement{
				Type:         chess.MakePieceType(colour, species),
				Coords:       c,
				SpecialRight: right,
			})
			x++
		}
	}

	switch fields[1] {
	case "w":
		pos.Turn = chess.White
	case "b":
		pos.Turn = chess.Black
	default:
		return Position{}, fmt.Errorf("fen %q: bad side to move %q", fen, fields[1])
	}

	if ep := fields[3]; ep != "-" {
		sq, err := ParseSquare(ep)
		if err != nil {
			return Position{}, fmt.Errorf("fen %q: %w", fen, err)
		}
		// The pawn that double-pushed stands one rank past the square.
		pawn := chess.C(sq.X, sq.Y-chess.ForwardOffset(pos.Turn))
		pos.EnPassant = &chess.EnPassant{Square: sq, Pawn: pawn}
	}
	return pos, nil
}

func castlingSquares(field string) map[chess.Coords]bool {
	rights := make(map[chess.Coords]bool)
	for _, r := range field {
		switch r {
		case 'K':
			rights[chess.C(5, 1)], rights[chess.C(8, 1)] = true, true
		case 'Q':
			rights[chess.C(5, 1)], rights[chess.C(1, 1)] = true, true
		case 'k':
			rights[chess.C(5, 8)], rights[chess.C(8, 8)] = true, true
		case 'q':
			rights[chess.C(5, 8)], rights[chess.C(1, 8)] = true, true
		}
	}
	return rights
}

// MustParseFEN parses a FEN string, calling t.Fatal on failure.
func MustParseFEN(t testing.TB, fen string) Position {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	return pos
}

// ParseSquare converts algebraic notation such as "e4" into coordinates.
func ParseSquare(s string) (chess.Coords, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return chess.Coords{}, fmt.Errorf("bad square %q", s)
	}
	return chess.C(int64(s[0]-'a'+1), int64(s[1]-'0')), nil
}

// Square converts coordinates in the 8x8 region back into algebraic notation.
func Square(c chess.Coords) string {
	return string(rune('a'+c.X-1)) + strconv.FormatInt(c.Y, 10)
}

var uciPromotions = map[byte]chess.Species{
	'q': chess.Queen, 'r': chess.Rook, 'b': chess.Bishop, 'n': chess.Knight,
}

// ParseUCI converts a long-algebraic move such as "e7e8q" into a draft.
func ParseUCI(s string) (chess.Draft, error) {
	if len(s) != 4 && len(s) != 5 {
		return chess.Draft{}, fmt.Errorf("bad move %q", s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return chess.Draft{}, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return chess.Draft{}, err
	}
	d := chess.Draft{Start: from, End: to}
	if len(s) == 5 {
		p, ok := uciPromotions[s[4]]
		if !ok {
			return chess.Draft{}, fmt.Errorf("bad promotion in %q", s)
		}
		d.Promotion = p
	}
	return d, nil
}

// UCI formats a draft in the 8x8 region as long algebraic notation.
func UCI(d chess.Draft) string {
	s := Square(d.Start) + Square(d.End)
	if d.Promotion != chess.NoSpecies {
		s += strings.ToLower(d.Promotion.Abbr())
	}
	return s
}

// BorderedRules returns orthodox two-player rules confined to the 8x8
// region (1,1)..(8,8), so positions can be compared with 8x8 move generators.
func BorderedRules() chess.Rules {
	return chess.Rules{
		TurnOrder: []chess.Colour{chess.White, chess.Black},
		WinConditions: map[chess.Colour][]chess.WinCondition{
			chess.White: {chess.Checkmate},
			chess.Black: {chess.Checkmate},
		},
		PromotionRanks: map[chess.Colour][]int64{
			chess.White: {8},
			chess.Black: {1},
		},
		PromotionsAllowed: map[chess.Colour][]chess.Species{
			chess.White: {chess.Queen, chess.Rook, chess.Bishop, chess.Knight},
			chess.Black: {chess.Queen, chess.Rook, chess.Bishop, chess.Knight},
		},
		MoveRule:    100,
		WorldBorder: &chess.Bounds{Left: 1, Bottom: 1, Right: 8, Top: 8},
	}
}

// UnboundedRules returns BorderedRules without the world border.
func UnboundedRules() chess.Rules {
	r := BorderedRules()
	r.WorldBorder = nil
	return r
}
