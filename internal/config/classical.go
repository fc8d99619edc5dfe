package config

import "github.com/lgbarn/infinite-chess-go/internal/chess"

// ClassicalPosition is the standard chess setup in position shorthand.
// Pawns, kings and rooks hold their special rights.
const ClassicalPosition = "P1,2+|P2,2+|P3,2+|P4,2+|P5,2+|P6,2+|P7,2+|P8,2+|" +
	"p1,7+|p2,7+|p3,7+|p4,7+|p5,7+|p6,7+|p7,7+|p8,7+|" +
	"R1,1+|R8,1+|r1,8+|r8,8+|N2,1|N7,1|n2,8|n7,8|" +
	"B3,1|B6,1|b3,8|b6,8|Q4,1|q4,8|K5,1+|k5,8+"

// ClassicalRules returns the rules of the default infinite-chess variant:
// an unbounded board, checkmate for both sides, promotion on the eighth and
// first ranks and the 50-move rule.
func ClassicalRules() chess.Rules {
	promotions := []chess.Species{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}
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
			chess.White: promotions,
			chess.Black: append([]chess.Species(nil), promotions...),
		},
		MoveRule: 100,
	}
}

// Classical returns the default variant with no moves played.
func Classical() *Game {
	placements, err := ParsePosition(ClassicalPosition)
	if err != nil {
		panic(err)
	}
	return &Game{Rules: ClassicalRules(), Placements: placements}
}
