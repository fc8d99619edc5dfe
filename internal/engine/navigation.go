package engine

import (
	"github.com/lgbarn/infinite-chess-go/internal/errors"
)


// RewindGameToIndex rewinds or forwards until the move at target is the
// last one applied. -1 is the starting position. No move is discarded.
func (g *Game) RewindGameToIndex(target int) error {
	if target < -1 || target >= len(g.moves) {
		return errors.Wrapf(errors.ErrIndexOutOfRange, "move index %d outside [-1, %d]", target, len(g.moves)-1)
	}
	for g.index > target {
		if err := g.RewindMove(RewindOptions{}); err != nil {
			return err
		}
	}
	for g.index < target {
		if err := g.forward(); err != nil {
			return err
		}
	}
	return nil
}

// ForwardToFront re-applies every move ahead of the current index.
func (g *Game) ForwardToFront() error {
	return g.RewindGameToIndex(len(g.moves) - 1)
}

// TruncateForward discards the moves ahead of the current index so a new
// move can be recorded from a reviewed position.
func (g *Game) TruncateForward() {
	for i := g.index + 1; i < len(g.moves); i++ {
		g.moves[i] = nil
	}
	g.moves = g.moves[:g.index+1]
	g.dropStaleConclusion()
}

// forward replays the next move in the list, passing the turn on only if
// the move did so when it was first made.
func (g *Game) forward() error {
	m := g.moves[g.index+1]
	opts := MoveOptions{FlipTurn: m.Rewind.FlippedTurn, RecordMove: true, DoGameOverChecks: true}
	return g.play(m, opts, false)
}
