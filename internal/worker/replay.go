package worker

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/config"
	"github.com/lgbarn/infinite-chess-go/internal/engine"
	"github.com/lgbarn/infinite-chess-go/internal/errors"
	"github.com/lgbarn/infinite-chess-go/internal/hashing"
	"github.com/lgbarn/infinite-chess-go/internal/output"
	"github.com/lgbarn/infinite-chess-go/internal/render"
)

// boardConditions are the conclusions the engine decides itself. Any other
// claimed condition, such as resignation, is accepted as recorded.
var boardConditions = map[string]bool{
	string(chess.Checkmate):         true,
	string(chess.RoyalCapture):      true,
	string(chess.AllRoyalsCaptured): true,
	string(chess.AllPiecesCaptured): true,
	string(chess.ThreeCheck):        true,
	string(chess.KingOfTheHill):     true,
	chess.DrawStalemate:             true,
	chess.DrawRepetition:            true,
	chess.DrawMoveRule:              true,
	chess.DrawInsuffMat:             true,
}

// Replayer validates game files. Each call replays on its own engine.Game,
// so one Replayer serves every worker of a pool.
type Replayer struct {
	cfg        *config.Config
	duplicates *hashing.ThreadSafeDuplicateDetector
}

// NewReplayer creates a Replayer. duplicates may be nil when duplicate
// suppression is off.
func NewReplayer(cfg *config.Config, duplicates *hashing.ThreadSafeDuplicateDetector) *Replayer {
	return &Replayer{cfg: cfg, duplicates: duplicates}
}

// Process is a ProcessFunc.
func (r *Replayer) Process(item WorkItem) ProcessResult {
	res := ProcessResult{Index: item.Index}
	game := item.Game
	if game == nil {
		g, err := config.Load(item.Path)
		if err != nil {
			res.Error = err
			res.Report = &output.Report{File: item.Path, Err: err}
			res.ShouldOutput = true
			return res
		}
		game = g
	}

	rep, sig, err := r.Replay(item.Path, game)
	res.Report = rep
	res.Signature = sig
	res.Error = err
	res.Matched = output.Matches(rep, &r.cfg.Filter)
	res.ShouldOutput = res.Matched
	if res.Matched && err == nil && r.cfg.Duplicate.Suppress && r.duplicates != nil {
		if r.duplicates.CheckAndAdd(sig) {
			res.ShouldOutput = false
			res.OutputToDup = r.cfg.Duplicate.DuplicateFile != nil
		}
	}
	return res
}

// Replay plays the moves of game, checking each as an untrusted move, and
// reports where it ended. With a perft depth configured the starting
// position is counted instead. The returned error is the one stored in
// the report, if any.
func (r *Replayer) Replay(path string, game *config.Game) (*output.Report, hashing.GameSignature, error) {
	g, err := newEngineGame(game)
	if err != nil {
		return &output.Report{File: path, Err: err}, hashing.GameSignature{}, err
	}
	if r.cfg.PerftDepth > 0 {
		return r.perft(path, g)
	}
	return r.play(path, game, g, r.cfg.Output.SVGDir != "")
}

// Fingerprint loads and replays the game at path for the signature of its
// final position only. Nothing is drawn or checked for duplicates.
func (r *Replayer) Fingerprint(path string) (hashing.GameSignature, error) {
	game, err := config.Load(path)
	if err != nil {
		return hashing.GameSignature{}, err
	}
	g, err := newEngineGame(game)
	if err != nil {
		return hashing.GameSignature{}, err
	}
	_, sig, err := r.play(path, game, g, false)
	return sig, err
}

func newEngineGame(game *config.Game) (*engine.Game, error) {
	var opts []engine.GameOption
	if game.Turn != chess.Neutral {
		opts = append(opts, engine.WithTurn(game.Turn))
	}
	return engine.NewGame(game.Rules, game.Placements, opts...)
}

// play validates and makes the moves of game on g, stopping at the first
// illegal one.
func (r *Replayer) play(path string, game *config.Game, g *engine.Game, draw bool) (*output.Report, hashing.GameSignature, error) {
	tracker := hashing.NewTracker(g.Board())
	var slots *render.SlotMap
	if draw {
		slots = render.NewSlotMap(g.Board())
	}

	var rejectedAt int
	var rejectErr error
	claimed := game.Conclusion
	external := claimed != nil && !boardConditions[claimed.Condition]
	for i, d := range game.Moves {
		var claim *chess.Conclusion
		if i == len(game.Moves)-1 && !external {
			claim = claimed
		}
		if err := g.IsOpponentsMoveLegal(d, claim); err != nil {
			rejectedAt, rejectErr = i+1, err
			break
		}
		if _, err := g.Play(d); err != nil {
			err = &errors.MoveError{Err: err, Ply: i + 1, Move: d.String(), File: path}
			return &output.Report{File: path, Err: err}, hashing.GameSignature{}, err
		}
		r.cfg.Logf(3, "%s: ply %d %s\n", path, i+1, d)
	}
	if rejectErr == nil && external {
		if _, over := g.GetGameConclusion(); !over {
			g.SetConclusion(claimed)
		}
	}

	rep := output.NewReport(path, g, r.cfg)
	rep.Claimed = claimed
	if rejectErr != nil {
		rep.Reject(rejectedAt, game.Moves[rejectedAt-1], rejectErr)
	}
	sig := tracker.Sign(g.Board(), g.WhosTurn(), rep.Plies)
	if r.cfg.Annotation.AddHash {
		rep.Hash = sig.Hash
	}
	if slots != nil {
		rep.SVG = r.writeSVG(path, g, slots)
	}
	return rep, sig, nil
}

func (r *Replayer) perft(path string, g *engine.Game) (*output.Report, hashing.GameSignature, error) {
	rep := &output.Report{File: path, Cycle: len(g.Rules().TurnOrder), Perft: make(map[int]int64)}
	for depth := 1; depth <= r.cfg.PerftDepth; depth++ {
		n, err := g.Perft(depth)
		if err != nil {
			rep.Err = errors.Wrapf(err, "perft(%d)", depth)
			return rep, hashing.GameSignature{}, rep.Err
		}
		rep.Perft[depth] = n
		r.cfg.Logf(2, "%s: perft(%d) = %d\n", path, depth, n)
	}
	return rep, hashing.Sign(g.Board(), g.WhosTurn(), 0), nil
}

// writeSVG renders the final position next to the other pictures and
// returns its path, or "" when it could not be drawn.
func (r *Replayer) writeSVG(path string, g *engine.Game, slots *render.SlotMap) string {
	live := slots.Live()
	region := render.Fit(live, r.cfg.Output.SVGMargin)
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".svg"
	dest := filepath.Join(r.cfg.Output.SVGDir, name)

	f, err := os.Create(dest)
	if err != nil {
		r.cfg.Logf(1, "%s: %v\n", path, err)
		return ""
	}
	rules := g.Rules()
	err = render.WriteSVG(f, live, region, render.Options{
		Square:    r.cfg.Output.SVGSquare,
		Border:    rules.WorldBorder,
		Highlight: g.InCheck(),
		Title:     filepath.Base(path),
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		r.cfg.Logf(1, "%s: svg: %v\n", path, err)
		_ = os.Remove(dest)
		return ""
	}
	return dest
}
