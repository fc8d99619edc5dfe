// Package output writes game reports as text or JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/infinite-chess-go/internal/chess"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// Summary returns the one-line text form of a report, without the file name.
func Summary(r *Report) string {
	var parts []string
	switch {
	case r.Err != nil:
		return "error: " + r.Err.Error()
	case r.Illegal != nil:
		parts = append(parts, fmt.Sprintf("illegal move at ply %d (%s): %s",
			r.Illegal.Ply, r.Illegal.Move, r.Illegal.Reason))
	case r.Conclusion != nil:
		parts = append(parts, r.Conclusion.String())
	default:
		parts = append(parts, "ongoing")
	}
	if r.ClaimMismatch() {
		parts = append(parts, "claimed "+r.Claimed.String())
	}
	return strings.Join(parts, ", ")
}

// OutputReport writes a report in text form: a summary line followed by the
// requested annotations and the wrapped move list.
func OutputReport(w io.Writer, r *Report, addPlyCount bool) {
	fmt.Fprintf(w, "%s: %s\n", r.File, Summary(r))
	if r.Err != nil {
		return
	}
	if addPlyCount {
		fmt.Fprintf(w, "  plies: %d\n", r.Plies)
	}
	if r.Hash != 0 {
		fmt.Fprintf(w, "  hash: %016x\n", r.Hash)
	}
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		if n, ok := r.Checks[c]; ok {
			fmt.Fprintf(w, "  checks by %s: %d\n", c, n)
		}
	}
	for _, depth := range sortedDepths(r.Perft) {
		fmt.Fprintf(w, "  perft(%d): %d\n", depth, r.Perft[depth])
	}
	if r.SVG != "" {
		fmt.Fprintf(w, "  svg: %s\n", r.SVG)
	}
	if len(r.Moves) > 0 {
		outputMoves(w, r)
	}
}

// outputMoves writes the move list, numbering each turn cycle.
func outputMoves(w io.Writer, r *Report) {
	ow := NewOutputWriter(w, 80)
	cycle := r.Cycle
	if cycle < 1 {
		cycle = 1
	}
	for i, m := range r.Moves {
		if i%cycle == 0 {
			ow.Write(fmt.Sprintf("%d.", i/cycle+1))
		}
		ow.Write(FormatMove(m))
	}
	ow.NewLine()
}

// FormatMove returns the text form of a move: the piece abbreviation in its
// colour's case, the start square, '>' or 'x' for a capture, the end square,
// then "=N" for a promotion and '+' or '#' for check or mate.
func FormatMove(m *chess.Move) string {
	var sb strings.Builder
	sb.WriteString(pieceAbbr(m.Type))
	sb.WriteString(m.Start.String())
	if m.Captured != chess.NoPiece || m.EnPassant != nil {
		sb.WriteByte('x')
	} else {
		sb.WriteByte('>')
	}
	sb.WriteString(m.End.String())
	if m.Promotion != chess.NoPiece {
		sb.WriteByte('=')
		sb.WriteString(m.Promotion.Species().Abbr())
	}
	switch {
	case m.Mate:
		sb.WriteByte('#')
	case m.Check:
		sb.WriteByte('+')
	}
	return sb.String()
}

func pieceAbbr(t chess.PieceType) string {
	abbr := t.Species().Abbr()
	if t.Colour() != chess.White {
		return strings.ToLower(abbr)
	}
	return abbr
}
