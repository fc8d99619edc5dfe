package engine

import (
	"github.com/lgbarn/infinite-chess-go/internal/chess"
)

// Squares a royal must reach under king of the hill.
var hillSquares = []chess.Coords{{X: 4, Y: 4}, {X: 5, Y: 4}, {X: 4, Y: 5}, {X: 5, Y: 5}}

// GetGameConclusion returns the result of the game, if it is over.
func (g *Game) GetGameConclusion() (chess.Conclusion, bool) {
	if g.conclusion == nil {
		return chess.Conclusion{}, false
	}
	return *g.conclusion, true
}

// evaluate checks the game-end conditions after mover played m, cheapest
// and most decisive first.
func (g *Game) evaluate(m *chess.Move, mover chess.Colour) *chess.Conclusion {
	win := func(cond chess.WinCondition) *chess.Conclusion {
		return &chess.Conclusion{Winner: mover, Condition: string(cond)}
	}
	draw := func(cond string) *chess.Conclusion {
		return &chess.Conclusion{Winner: chess.Neutral, Condition: cond}
	}
	has := func(cond chess.WinCondition) bool {
		return g.rules.HasWinCondition(mover, cond)
	}

	if has(chess.AllPiecesCaptured) && g.opponentsWiped(mover) {
		return win(chess.AllPiecesCaptured)
	}
	capturedRoyal := m.Captured != chess.NoPiece && m.Captured.Species().IsRoyal()
	if has(chess.RoyalCapture) && capturedRoyal {
		return win(chess.RoyalCapture)
	}
	if has(chess.AllRoyalsCaptured) && capturedRoyal && len(g.royals(m.Captured.Colour())) == 0 {
		return win(chess.AllRoyalsCaptured)
	}
	if has(chess.ThreeCheck) && g.checksGiven(m, mover) >= 3 {
		return win(chess.ThreeCheck)
	}
	if has(chess.KingOfTheHill) && m.Type.Species().IsRoyal() && m.Promotion == chess.NoPiece {
		for _, sq := range hillSquares {
			if m.End == sq {
				return win(chess.KingOfTheHill)
			}
		}
	}
	if g.whosTurn != mover && has(chess.Checkmate) && !g.HasLegalMoves(g.whosTurn) {
		if len(g.inCheck) > 0 {
			return win(chess.Checkmate)
		}
		return draw(chess.DrawStalemate)
	}
	if g.rules.MoveRule > 0 && g.moveRule >= g.rules.MoveRule {
		return draw(chess.DrawMoveRule)
	}
	if g.isRepetitionDraw() {
		return draw(chess.DrawRepetition)
	}
	if (m.Captured != chess.NoPiece || m.Type.Species() == chess.Pawn) && g.HasInsufficientMaterial() {
		return draw(chess.DrawInsuffMat)
	}
	return nil
}

// opponentsWiped reports whether every opponent of colour has lost all
// its pieces.
func (g *Game) opponentsWiped(colour chess.Colour) bool {
	for _, o := range g.opponents(colour) {
		if len(g.board.PiecesOf(o)) > 0 {
			return false
		}
	}
	return true
}

// checksGiven counts the applied moves by colour that gave check, last
// included even when it was not recorded.
func (g *Game) checksGiven(last *chess.Move, colour chess.Colour) int {
	applied := g.moves[:g.index+1]
	n := 0
	for _, m := range applied {
		if m.Check && m.Type.Colour() == colour {
			n++
		}
	}
	if (len(applied) == 0 || applied[len(applied)-1] != last) && last.Check {
		n++
	}
	return n
}
