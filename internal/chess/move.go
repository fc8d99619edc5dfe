package chess

import "fmt"

// Castle describes the partner half of a castling move.
type Castle struct {
	Dir     int64  // -1 or +1 along x
	Partner Coords // Where the partner stood before castling
}

// EnPassant is the square an en-passant capture may land on, together with
// the pawn that would be removed by it.
type EnPassant struct {
	Square Coords
	Pawn   Coords
}

// Draft is a move as proposed by a player: where from, where to, and the
// promotion species if any.
type Draft struct {
	Start     Coords
	End       Coords
	Promotion Species
}

// String returns "x,y>x,y" with an optional "=species" suffix.
func (d Draft) String() string {
	if d.Promotion != NoSpecies {
		return fmt.Sprintf("%s>%s=%s", d.Start, d.End, d.Promotion)
	}
	return fmt.Sprintf("%s>%s", d.Start, d.End)
}

// Move is an executed (or executable) move record.
type Move struct {
	Type      PieceType
	Start     Coords
	End       Coords
	Captured  PieceType  // NoPiece if nothing was captured
	Promotion PieceType  // NoPiece unless a pawn promoted
	EnPassant *Coords    // Square of the pawn captured en passant
	Castle    *Castle    // Partner details for a castling move
	Check     bool       // The move left the next player in check
	Mate      bool       // The move ended the game by checkmate
	Rewind    Rewind     // Filled in when the move is applied
}

// Draft returns the player-facing form of the move.
func (m *Move) Draft() Draft {
	d := Draft{Start: m.Start, End: m.End}
	if m.Promotion != NoPiece {
		d.Promotion = m.Promotion.Species()
	}
	return d
}

// String returns a debugging representation of the move.
func (m *Move) String() string {
	return m.Type.String() + " " + m.Draft().String()
}

// IsIrreversible reports whether no earlier position can recur after m.
func (m *Move) IsIrreversible() bool {
	return m.Captured != NoPiece || m.Type.Species() == Pawn || m.Castle != nil
}

// Rewind is the snapshot needed to undo a move without recomputation.
type Rewind struct {
	InCheck       []Coords   // Royals in check before the move
	StartRight    bool       // Special right held on the start square
	EndRight      bool       // Special right held on the end square
	EnPassant     *EnPassant // En-passant flag before the move
	MoveRuleState int        // Plies since the last capture or pawn move
	FlippedTurn   bool       // The move passed the turn on
	Undo          Undo       // Move-kind specific inverse
}

// Undo is the move-kind specific half of a Rewind. The set of
// implementations is closed: StandardUndo, CastleUndo, EnPassantUndo and
// PromotionUndo.
type Undo interface {
	isUndo()
}

// StandardUndo reverses a plain relocation with an optional capture.
type StandardUndo struct {
	CapturedSlot int // -1 when nothing was captured
}

// CastleUndo reverses a castling move.
type CastleUndo struct {
	PartnerStart Coords
	PartnerEnd   Coords
	PartnerRight bool
}

// EnPassantUndo reverses an en-passant capture.
type EnPassantUndo struct {
	CapturedAt   Coords
	CapturedSlot int
}

// PromotionUndo reverses a promotion, with an optional capture on the
// promotion square.
type PromotionUndo struct {
	PawnSlot         int
	PromotedAppended bool // The promoted piece extended its list instead of reusing a freed slot
	CapturedSlot     int  // -1 when nothing was captured
}

func (StandardUndo) isUndo()  {}
func (CastleUndo) isUndo()    {}
func (EnPassantUndo) isUndo() {}
func (PromotionUndo) isUndo() {}
