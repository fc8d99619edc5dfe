package output

import (
	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/config"
	"github.com/lgbarn/infinite-chess-go/internal/engine"
	"github.com/lgbarn/infinite-chess-go/internal/errors"
	"github.com/lgbarn/infinite-chess-go/internal/hashing"
)

// Report is the outcome of replaying one game file.
type Report struct {
	File  string
	Plies int
	Cycle int // Length of the turn order, for move numbering

	// Conclusion is nil while the game is ongoing.
	Conclusion *chess.Conclusion
	// Claimed is the result the file recorded, if any.
	Claimed *chess.Conclusion

	// Illegal is set when a move of the file was rejected.
	Illegal *Rejection
	// Err is set when the file could not be loaded or replayed.
	Err error

	Hash   uint64
	Checks map[chess.Colour]int
	Moves  []*chess.Move

	// Perft results, keyed by depth, when counting was requested.
	Perft map[int]int64

	// SVG is the path of the rendered final position, if any.
	SVG string
}

// Rejection locates the first rejected move of a game file.
type Rejection struct {
	Ply    int
	Move   chess.Draft
	Reason string
}

// ClaimMismatch reports whether the file claimed a result the replay did
// not reach.
func (r *Report) ClaimMismatch() bool {
	if r.Claimed == nil || r.Illegal != nil || r.Err != nil {
		return false
	}
	return r.Conclusion == nil || *r.Conclusion != *r.Claimed
}

// Reject records the first rejected move.
func (r *Report) Reject(ply int, d chess.Draft, err error) {
	r.Illegal = &Rejection{Ply: ply, Move: d, Reason: errors.Reason(err)}
}

// NewReport summarises the current position of g under the annotations cfg
// asks for.
func NewReport(file string, g *engine.Game, cfg *config.Config) *Report {
	rules := g.Rules()
	r := &Report{
		File:  file,
		Plies: g.MoveIndex() + 1,
		Cycle: len(rules.TurnOrder),
	}
	if c, ok := g.GetGameConclusion(); ok {
		r.Conclusion = &c
	}
	moves := g.Moves()[:r.Plies]
	if cfg.Output.ListMoves {
		r.Moves = moves
	}
	if cfg.Annotation.AddHash {
		r.Hash = hashing.Sign(g.Board(), g.WhosTurn(), r.Plies).Hash
	}
	if cfg.Annotation.AddChecks {
		r.Checks = make(map[chess.Colour]int)
		for _, m := range moves {
			if m.Check {
				r.Checks[m.Type.Colour()]++
			}
		}
	}
	return r
}

// Matches reports whether r passes the report filter.
func Matches(r *Report, f *config.FilterConfig) bool {
	if !f.Active() {
		return true
	}
	if f.CheckPlyBounds && (uint(r.Plies) < f.MinPlies || uint(r.Plies) > f.MaxPlies) {
		return false
	}
	if !f.MatchCheckmate && !f.MatchStalemate && !f.MatchDraws && !f.MatchIllegal {
		return true
	}
	switch {
	case f.MatchIllegal && r.Illegal != nil:
		return true
	case r.Conclusion == nil:
		return false
	case f.MatchCheckmate && r.Conclusion.Condition == string(chess.Checkmate):
		return true
	case f.MatchStalemate && r.Conclusion.Condition == chess.DrawStalemate:
		return true
	case f.MatchDraws && r.Conclusion.IsDraw():
		return true
	}
	return false
}
