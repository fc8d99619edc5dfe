package output

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// JSONReport represents a report in JSON format.
type JSONReport struct {
	File       string           `json:"file"`
	Status     string           `json:"status"` // "concluded", "ongoing", "illegal" or "error"
	Conclusion string           `json:"conclusion,omitempty"`
	Claimed    string           `json:"claimed,omitempty"`
	Mismatch   bool             `json:"claimMismatch,omitempty"`
	Illegal    *JSONRejection   `json:"illegal,omitempty"`
	Error      string           `json:"error,omitempty"`
	PlyCount   int              `json:"plyCount"`
	Hash       string           `json:"hash,omitempty"`
	Checks     map[string]int   `json:"checks,omitempty"`
	Perft      map[string]int64 `json:"perft,omitempty"`
	SVG        string           `json:"svg,omitempty"`
	Moves      []JSONMove       `json:"moves,omitempty"`
}

// JSONRejection represents a rejected move.
type JSONRejection struct {
	Ply    int    `json:"ply"`
	Move   string `json:"move"`
	Reason string `json:"reason"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	Ply       int      `json:"ply"`
	Color     string   `json:"color"`
	Piece     string   `json:"piece"`
	From      [2]int64 `json:"from"`
	To        [2]int64 `json:"to"`
	Captured  string   `json:"captured,omitempty"`
	Promotion string   `json:"promotion,omitempty"`
	Castle    bool     `json:"castle,omitempty"`
	EnPassant bool     `json:"enPassant,omitempty"`
	Check     bool     `json:"check,omitempty"`
	Mate      bool     `json:"mate,omitempty"`
	Text      string   `json:"text"`
}

// JSONOutput holds multiple reports for array output.
type JSONOutput struct {
	Games []*JSONReport `json:"games"`
}

// ReportToJSON converts a report to JSON format.
func ReportToJSON(r *Report) *JSONReport {
	jr := &JSONReport{
		File:     r.File,
		PlyCount: r.Plies,
		SVG:      r.SVG,
		Mismatch: r.ClaimMismatch(),
	}
	switch {
	case r.Err != nil:
		jr.Status = "error"
		jr.Error = r.Err.Error()
	case r.Illegal != nil:
		jr.Status = "illegal"
		jr.Illegal = &JSONRejection{
			Ply:    r.Illegal.Ply,
			Move:   r.Illegal.Move.String(),
			Reason: r.Illegal.Reason,
		}
	case r.Conclusion != nil:
		jr.Status = "concluded"
		jr.Conclusion = r.Conclusion.String()
	default:
		jr.Status = "ongoing"
	}
	if r.Claimed != nil {
		jr.Claimed = r.Claimed.String()
	}
	if r.Hash != 0 {
		jr.Hash = fmt.Sprintf("%016x", r.Hash)
	}
	if len(r.Checks) > 0 {
		jr.Checks = make(map[string]int, len(r.Checks))
		for c, n := range r.Checks {
			jr.Checks[c.String()] = n
		}
	}
	if len(r.Perft) > 0 {
		jr.Perft = make(map[string]int64, len(r.Perft))
		for depth, n := range r.Perft {
			jr.Perft[fmt.Sprint(depth)] = n
		}
	}
	for i, m := range r.Moves {
		jm := JSONMove{
			Ply:       i + 1,
			Color:     m.Type.Colour().String(),
			Piece:     m.Type.Species().String(),
			From:      [2]int64{m.Start.X, m.Start.Y},
			To:        [2]int64{m.End.X, m.End.Y},
			Castle:    m.Castle != nil,
			EnPassant: m.EnPassant != nil,
			Check:     m.Check,
			Mate:      m.Mate,
			Text:      FormatMove(m),
		}
		if m.Captured != 0 {
			jm.Captured = m.Captured.Species().String()
		}
		if m.Promotion != 0 {
			jm.Promotion = m.Promotion.Species().String()
		}
		jr.Moves = append(jr.Moves, jm)
	}
	return jr
}

func sortedDepths(perft map[int]int64) []int {
	depths := make([]int, 0, len(perft))
	for d := range perft {
		depths = append(depths, d)
	}
	slices.Sort(depths)
	return depths
}
