package engine

import (
	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/errors"
)

// MoveOptions selects what MakeMove does beyond moving pieces.
type MoveOptions struct {
	FlipTurn         bool // Pass the turn to the next colour in the turn order
	RecordMove       bool // Append the move to the move list
	DoGameOverChecks bool // Evaluate the game-end conditions afterwards
	Simulated        bool // Mute the change feed and the turn listener
}

// PlayOptions are the options for a normal move in a live game.
var PlayOptions = MoveOptions{FlipTurn: true, RecordMove: true, DoGameOverChecks: true}

// RewindOptions selects what RewindMove does beyond moving pieces.
type RewindOptions struct {
	RemoveMove bool // Drop the move from the list instead of keeping it for forwarding
	Simulated  bool // Mute the change feed and the turn listener
}

// MakeMove applies m. Recorded moves must be made at the front of the move
// list, and, when game-over checks are requested, before a conclusion.
// A failed call leaves the game unchanged.
func (g *Game) MakeMove(m *chess.Move, opts MoveOptions) error {
	if opts.RecordMove && !g.AtFront() {
		return errors.Wrapf(errors.ErrNotAtFront, "make move %v at index %d of %d", m.Draft(), g.index, len(g.moves))
	}
	if opts.RecordMove && opts.DoGameOverChecks && g.conclusion != nil {
		return errors.Wrapf(errors.ErrGameOver, "make move %v after %v", m.Draft(), g.conclusion)
	}
	return g.play(m, opts, true)
}

// Play builds and makes a move from a draft with PlayOptions.
func (g *Game) Play(d chess.Draft) (*chess.Move, error) {
	m, err := g.BuildMove(d)
	if err != nil {
		return nil, err
	}
	if err := g.MakeMove(m, PlayOptions); err != nil {
		return nil, err
	}
	return m, nil
}

// play applies m with the bookkeeping opts asks for. appendRecord is false
// when forwarding over a move already in the list.
func (g *Game) play(m *chess.Move, opts MoveOptions, appendRecord bool) error {
	if opts.Simulated {
		g.board.Mute()
		defer g.board.Unmute()
	}
	mover := m.Type.Colour()
	if err := g.apply(m); err != nil {
		return err
	}
	m.Rewind.FlippedTurn = opts.FlipTurn
	if opts.RecordMove {
		if appendRecord {
			g.moves = append(g.moves, m)
		}
		g.index++
	}
	if opts.FlipTurn {
		g.setTurn(g.turn + 1)
	}
	g.updateCheck()
	m.Check = len(g.inCheck) > 0
	if opts.DoGameOverChecks {
		g.conclusion = g.evaluate(m, mover)
		if g.conclusion == nil {
			g.conclusion = g.frontConclusion()
		}
		m.Mate = g.conclusion != nil && g.conclusion.Condition == string(chess.Checkmate)
	}
	if opts.FlipTurn && !opts.Simulated && g.listener != nil {
		g.listener.TurnFlipped(g.whosTurn)
	}
	return nil
}

// RewindMove undoes the last applied move using its rewind info. Without
// RemoveMove the move stays in the list and can be forwarded again.
func (g *Game) RewindMove(opts RewindOptions) error {
	if g.index < 0 {
		return errors.ErrNothingToRewind
	}
	if opts.RemoveMove && !g.AtFront() {
		return errors.Wrapf(errors.ErrNotAtFront, "remove move at index %d of %d", g.index, len(g.moves))
	}
	if opts.Simulated {
		g.board.Mute()
		defer g.board.Unmute()
	}
	m := g.moves[g.index]
	if err := g.undo(m); err != nil {
		return err
	}
	if opts.RemoveMove {
		g.moves[g.index] = nil
		g.moves = g.moves[:g.index]
		g.dropStaleConclusion()
	}
	g.index--
	g.conclusion = g.frontConclusion()
	if !m.Rewind.FlippedTurn {
		return nil
	}
	g.setTurn(g.turn - 1)
	if !opts.Simulated && g.listener != nil {
		g.listener.TurnFlipped(g.whosTurn)
	}
	return nil
}

// SimulateMove applies m, reports whether any royal of colour is then
// attacked, and rewinds. The change feed is muted throughout and m itself
// is left untouched.
func (g *Game) SimulateMove(m *chess.Move, colour chess.Colour) (bool, error) {
	g.board.Mute()
	defer g.board.Unmute()
	sim := *m
	if err := g.apply(&sim); err != nil {
		return false, err
	}
	check := g.royalsAttacked(colour)
	if err := g.undo(&sim); err != nil {
		return false, err
	}
	return check, nil
}

// apply moves the pieces of m and fills in m.Rewind. All preconditions are
// checked before the first mutation.
func (g *Game) apply(m *chess.Move) error {
	if err := g.checkApplicable(m); err != nil {
		return err
	}
	rw := chess.Rewind{
		InCheck:       g.inCheck,
		StartRight:    g.hasRight(m.Start),
		EndRight:      g.hasRight(m.End),
		EnPassant:     g.enPassant,
		MoveRuleState: g.moveRule,
	}
	g.setRight(m.Start, false)
	g.setRight(m.End, false)
	g.enPassant = nil

	var err error
	switch {
	case m.Castle != nil:
		rw.Undo, err = g.applyCastle(m)
	case m.EnPassant != nil:
		rw.Undo, err = g.applyEnPassant(m)
	case m.Promotion != chess.NoPiece:
		rw.Undo, err = g.applyPromotion(m)
	default:
		rw.Undo, err = g.applyStandard(m)
	}
	if err != nil {
		return err
	}

	if isDoublePush(m) {
		mid := chess.C(m.Start.X, (m.Start.Y+m.End.Y)/2)
		g.enPassant = &chess.EnPassant{Square: mid, Pawn: m.End}
	}
	if m.Captured != chess.NoPiece || m.Type.Species() == chess.Pawn {
		g.moveRule = 0
	} else {
		g.moveRule++
	}
	m.Rewind = rw
	return nil
}

func (g *Game) checkApplicable(m *chess.Move) error {
	if t := g.board.TypeAt(m.Start); t == chess.NoPiece || t != m.Type {
		return errors.Wrapf(errors.ErrNoPiece, "apply %v: found %v", m, t)
	}
	switch {
	case m.Castle != nil:
		if !g.board.Occupied(m.Castle.Partner) {
			return errors.Wrapf(errors.ErrNoPiece, "apply %v: no castling partner at %v", m, m.Castle.Partner)
		}
		if g.board.Occupied(m.End) || g.board.Occupied(castlePartnerEnd(m)) {
			return errors.Wrapf(errors.ErrSquareOccupied, "apply %v", m)
		}
	case m.EnPassant != nil:
		if g.board.TypeAt(*m.EnPassant) != m.Captured || m.Captured == chess.NoPiece {
			return errors.Wrapf(errors.ErrNoPiece, "apply %v: no pawn to capture at %v", m, *m.EnPassant)
		}
		if g.board.Occupied(m.End) {
			return errors.Wrapf(errors.ErrSquareOccupied, "apply %v", m)
		}
	default:
		if t := g.board.TypeAt(m.End); t != m.Captured {
			return errors.Wrapf(errors.ErrSquareOccupied, "apply %v: %v stands on %v", m, t, m.End)
		}
	}
	return nil
}

func (g *Game) applyStandard(m *chess.Move) (chess.Undo, error) {
	u := chess.StandardUndo{CapturedSlot: -1}
	if m.Captured != chess.NoPiece {
		captured, err := g.board.Remove(m.End)
		if err != nil {
			return nil, err
		}
		u.CapturedSlot = captured.Index
	}
	if _, err := g.board.Move(m.Start, m.End); err != nil {
		return nil, err
	}
	return u, nil
}

func (g *Game) applyEnPassant(m *chess.Move) (chess.Undo, error) {
	captured, err := g.board.Remove(*m.EnPassant)
	if err != nil {
		return nil, err
	}
	if _, err := g.board.Move(m.Start, m.End); err != nil {
		return nil, err
	}
	return chess.EnPassantUndo{CapturedAt: *m.EnPassant, CapturedSlot: captured.Index}, nil
}

func (g *Game) applyPromotion(m *chess.Move) (chess.Undo, error) {
	u := chess.PromotionUndo{CapturedSlot: -1}
	if m.Captured != chess.NoPiece {
		captured, err := g.board.Remove(m.End)
		if err != nil {
			return nil, err
		}
		u.CapturedSlot = captured.Index
	}
	pawn, err := g.board.Remove(m.Start)
	if err != nil {
		return nil, err
	}
	u.PawnSlot = pawn.Index
	u.PromotedAppended = g.board.FreeSlots(m.Promotion) == 0
	if _, err := g.board.Add(m.Promotion, m.End); err != nil {
		return nil, err
	}
	return u, nil
}

func (g *Game) applyCastle(m *chess.Move) (chess.Undo, error) {
	u := chess.CastleUndo{
		PartnerStart: m.Castle.Partner,
		PartnerEnd:   castlePartnerEnd(m),
		PartnerRight: g.hasRight(m.Castle.Partner),
	}
	g.setRight(u.PartnerStart, false)
	if _, err := g.board.Move(m.Start, m.End); err != nil {
		return nil, err
	}
	if _, err := g.board.Move(u.PartnerStart, u.PartnerEnd); err != nil {
		return nil, err
	}
	return u, nil
}

// undo reverses apply using only m.Rewind.
func (g *Game) undo(m *chess.Move) error {
	rw := m.Rewind
	var err error
	switch u := rw.Undo.(type) {
	case chess.StandardUndo:
		err = g.undoStandard(m, u)
	case chess.EnPassantUndo:
		err = g.undoEnPassant(m, u)
	case chess.PromotionUndo:
		err = g.undoPromotion(m, u)
	case chess.CastleUndo:
		err = g.undoCastle(m, u)
	default:
		return errors.Wrapf(errors.ErrNothingToRewind, "move %v was never applied", m)
	}
	if err != nil {
		return err
	}
	g.setRight(m.Start, rw.StartRight)
	g.setRight(m.End, rw.EndRight)
	g.enPassant = rw.EnPassant
	g.moveRule = rw.MoveRuleState
	g.inCheck = rw.InCheck
	return nil
}

func (g *Game) undoStandard(m *chess.Move, u chess.StandardUndo) error {
	if _, err := g.board.Move(m.End, m.Start); err != nil {
		return err
	}
	if u.CapturedSlot >= 0 {
		if _, err := g.board.AddAt(m.Captured, m.End, u.CapturedSlot); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) undoEnPassant(m *chess.Move, u chess.EnPassantUndo) error {
	if _, err := g.board.Move(m.End, m.Start); err != nil {
		return err
	}
	_, err := g.board.AddAt(m.Captured, u.CapturedAt, u.CapturedSlot)
	return err
}

func (g *Game) undoPromotion(m *chess.Move, u chess.PromotionUndo) error {
	var err error
	if u.PromotedAppended {
		_, err = g.board.Retract(m.End)
	} else {
		_, err = g.board.Remove(m.End)
	}
	if err != nil {
		return err
	}
	if _, err := g.board.AddAt(m.Type, m.Start, u.PawnSlot); err != nil {
		return err
	}
	if u.CapturedSlot >= 0 {
		if _, err := g.board.AddAt(m.Captured, m.End, u.CapturedSlot); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) undoCastle(m *chess.Move, u chess.CastleUndo) error {
	if _, err := g.board.Move(u.PartnerEnd, u.PartnerStart); err != nil {
		return err
	}
	if _, err := g.board.Move(m.End, m.Start); err != nil {
		return err
	}
	g.setRight(u.PartnerStart, u.PartnerRight)
	return nil
}
