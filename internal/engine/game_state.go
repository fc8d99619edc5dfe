// Package engine provides the infinite-chess rule engine: attack detection,
// legal move generation, move execution with rewind, and game-end evaluation.
package engine

import (
	"github.com/lgbarn/infinite-chess-go/internal/board"
	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/errors"
	"github.com/lgbarn/infinite-chess-go/internal/moveset"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// CheckmateThreshold is the piece count above which checkmate is replaced
// by royal capture when a game is created.
const CheckmateThreshold = 50000

// Listener is notified when the side to move changes because of a recorded
// move, a rewind, or a navigation step.
type Listener interface {
	TurnFlipped(next chess.Colour)
}

// Game is the complete mutable state of one game. It is not safe for
// concurrent use; simulations must not interleave with other access.
type Game struct {
	rules  chess.Rules
	board  *board.Board
	rights map[chess.Coords]struct{}

	enPassant *chess.EnPassant
	moves     []*chess.Move
	index     int // last applied move, -1 at the start
	turn      int // position in the turn-order cycle
	whosTurn  chess.Colour
	inCheck   []chess.Coords
	moveRule  int

	conclusion *chess.Conclusion
	external   *chess.Conclusion // Set by SetConclusion for the front position
	externalAt int               // Length of the move list when external was set

	vicinity moveset.Vicinity
	movesets map[chess.Species]moveset.Moveset
	listener Listener
}

// GameOption configures a Game.
type GameOption func(*gameOptions)

type gameOptions struct {
	turn      chess.Colour
	enPassant *chess.EnPassant
	listener  Listener
	threshold int
}

// WithTurn sets the colour to move first. It must appear in the turn order.
func WithTurn(c chess.Colour) GameOption {
	return func(o *gameOptions) {
		o.turn = c
	}
}

// WithEnPassant sets an en-passant opportunity in the starting position.
func WithEnPassant(ep chess.EnPassant) GameOption {
	return func(o *gameOptions) {
		o.enPassant = &ep
	}
}

// WithListener registers a turn listener.
func WithListener(l Listener) GameOption {
	return func(o *gameOptions) {
		o.listener = l
	}
}

// WithCheckmateThreshold overrides CheckmateThreshold.
func WithCheckmateThreshold(n int) GameOption {
	return func(o *gameOptions) {
		o.threshold = n
	}
}

// NewGame builds a game from rules and a starting position.
func NewGame(rules chess.Rules, placements []chess.Placement, opts ...GameOption) (*Game, error) {
	o := gameOptions{threshold: CheckmateThreshold}
	for _, opt := range opts {
		opt(&o)
	}
	if len(rules.TurnOrder) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "empty turn order")
	}

	var species []chess.Species
	addSpecies := func(s chess.Species) {
		if !slices.Contains(species, s) {
			species = append(species, s)
		}
	}
	for _, p := range placements {
		s := p.Type.Species()
		if s <= chess.NoSpecies || s >= chess.NumSpecies {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown species at %v", p.Coords)
		}
		if s.IsNeutral() != (p.Type.Colour() == chess.Neutral) {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "%v cannot be placed", p.Type)
		}
		if !p.Coords.InPlay() {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "%v placed out of play at %v", p.Type, p.Coords)
		}
		addSpecies(s)
	}
	for _, allowed := range rules.PromotionsAllowed {
		for _, s := range allowed {
			addSpecies(s)
		}
	}

	g := &Game{
		rules:    rules,
		board:    board.New(moveset.Directions(species)),
		rights:   make(map[chess.Coords]struct{}),
		index:    -1,
		vicinity: moveset.BuildVicinity(species),
		movesets: make(map[chess.Species]moveset.Moveset, len(species)),
		listener: o.listener,
	}
	for _, s := range species {
		g.movesets[s] = moveset.For(s, rules.SlideLimit)
	}
	for _, p := range placements {
		if _, err := g.board.Add(p.Type, p.Coords); err != nil {
			return nil, errors.Wrap(errors.ErrInvalidConfig, err.Error())
		}
		if p.SpecialRight {
			g.rights[p.Coords] = struct{}{}
		}
	}

	if o.turn != chess.Neutral {
		i := slices.Index(rules.TurnOrder, o.turn)
		if i < 0 {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "%v is not in the turn order", o.turn)
		}
		g.turn = i
	}
	g.whosTurn = rules.TurnOrder[g.turn]
	g.enPassant = o.enPassant

	if g.board.Count() > o.threshold {
		g.rules.WinConditions = withoutCheckmate(rules.WinConditions)
	}
	g.updateCheck()
	return g, nil
}

// withoutCheckmate replaces checkmate by royal capture for every colour.
func withoutCheckmate(in map[chess.Colour][]chess.WinCondition) map[chess.Colour][]chess.WinCondition {
	out := maps.Clone(in)
	for c, conds := range out {
		i := slices.Index(conds, chess.Checkmate)
		if i < 0 {
			continue
		}
		conds = slices.Clone(conds)
		if slices.Contains(conds, chess.RoyalCapture) {
			conds = slices.Delete(conds, i, i+1)
		} else {
			conds[i] = chess.RoyalCapture
		}
		out[c] = conds
	}
	return out
}

// Rules returns the rules in effect, after any checkmate substitution.
func (g *Game) Rules() chess.Rules {
	return g.rules
}

// Board returns the board index. Callers must treat it as read-only.
func (g *Game) Board() *board.Board {
	return g.board
}

// WhosTurn returns the colour to move.
func (g *Game) WhosTurn() chess.Colour {
	return g.whosTurn
}

// InCheck returns the royals of the side to move that are attacked.
func (g *Game) InCheck() []chess.Coords {
	return slices.Clone(g.inCheck)
}

// HasRight reports whether the piece on c still holds its special right.
func (g *Game) HasRight(c chess.Coords) bool {
	_, ok := g.rights[c]
	return ok
}

// EnPassant returns the current en-passant opportunity, if any.
func (g *Game) EnPassant() *chess.EnPassant {
	if g.enPassant == nil {
		return nil
	}
	ep := *g.enPassant
	return &ep
}

// MoveRuleCounter returns the plies since the last capture or pawn move.
func (g *Game) MoveRuleCounter() int {
	return g.moveRule
}

// Moves returns the move list, including moves ahead of the current index.
func (g *Game) Moves() []*chess.Move {
	return slices.Clone(g.moves)
}

// MoveIndex returns the index of the last applied move, or -1.
func (g *Game) MoveIndex() int {
	return g.index
}

// AtFront reports whether every recorded move is applied.
func (g *Game) AtFront() bool {
	return g.index == len(g.moves)-1
}

// SetConclusion records an externally decided result, such as a
// resignation or a loaded game's stored result. It belongs to the latest
// position: reviewing earlier moves hides it and returning to the front
// restores it. Nil clears it.
func (g *Game) SetConclusion(c *chess.Conclusion) {
	if c == nil {
		g.conclusion = nil
		g.external = nil
		return
	}
	cc := *c
	g.external = &cc
	g.externalAt = len(g.moves)
	if g.AtFront() {
		g.conclusion = &cc
	}
}

// frontConclusion returns the external conclusion if the current position
// is the one it was set on.
func (g *Game) frontConclusion() *chess.Conclusion {
	if g.external == nil || len(g.moves) != g.externalAt || !g.AtFront() {
		return nil
	}
	return g.external
}

// dropStaleConclusion forgets the external conclusion once a move it
// followed has been discarded.
func (g *Game) dropStaleConclusion() {
	if len(g.moves) < g.externalAt {
		g.external = nil
	}
}

// State is a comparable snapshot of everything a move may change.
type State struct {
	Board     board.Snapshot
	Rights    []chess.Coords
	EnPassant *chess.EnPassant
	MoveRule  int
	InCheck   []chess.Coords
	WhosTurn  chess.Colour
}

// State captures the current game state.
func (g *Game) State() State {
	s := State{
		Board:     g.board.Snapshot(),
		EnPassant: g.EnPassant(),
		MoveRule:  g.moveRule,
		InCheck:   slices.Clone(g.inCheck),
		WhosTurn:  g.whosTurn,
	}
	for c := range g.rights {
		s.Rights = append(s.Rights, c)
	}
	slices.SortFunc(s.Rights, compareCoords)
	slices.SortFunc(s.InCheck, compareCoords)
	return s
}

func compareCoords(a, b chess.Coords) int {
	if a.X != b.X {
		return cmpInt64(a.X, b.X)
	}
	return cmpInt64(a.Y, b.Y)
}

func (g *Game) moveset(s chess.Species) moveset.Moveset {
	m, ok := g.movesets[s]
	if !ok {
		m = moveset.For(s, g.rules.SlideLimit)
		g.movesets[s] = m
	}
	return m
}

func (g *Game) hasRight(c chess.Coords) bool {
	_, ok := g.rights[c]
	return ok
}

func (g *Game) setRight(c chess.Coords, on bool) {
	if on {
		g.rights[c] = struct{}{}
		return
	}
	delete(g.rights, c)
}

func (g *Game) inBorder(c chess.Coords) bool {
	if !c.InPlay() {
		return false
	}
	return g.rules.WorldBorder == nil || g.rules.WorldBorder.Contains(c)
}

// royals returns the squares of every royal piece of colour.
func (g *Game) royals(colour chess.Colour) []chess.Coords {
	var out []chess.Coords
	for _, s := range []chess.Species{chess.King, chess.RoyalCentaur} {
		for _, slot := range g.board.Slots(chess.MakePieceType(colour, s)) {
			if slot.Used {
				out = append(out, slot.Coords)
			}
		}
	}
	return out
}

// opponents returns every playing colour other than colour.
func (g *Game) opponents(colour chess.Colour) []chess.Colour {
	var out []chess.Colour
	for _, c := range g.rules.Colours() {
		if c != colour {
			out = append(out, c)
		}
	}
	return out
}

// checkmateApplies reports whether colour must avoid leaving its royals
// attacked, which holds when some opponent wins by checkmate.
func (g *Game) checkmateApplies(colour chess.Colour) bool {
	for _, o := range g.opponents(colour) {
		if g.rules.HasWinCondition(o, chess.Checkmate) {
			return true
		}
	}
	return false
}

func (g *Game) updateCheck() {
	g.inCheck = nil
	for _, r := range g.royals(g.whosTurn) {
		if g.IsAttacked(r, g.whosTurn) {
			g.inCheck = append(g.inCheck, r)
		}
	}
}

func (g *Game) setTurn(turn int) {
	n := len(g.rules.TurnOrder)
	g.turn = ((turn % n) + n) % n
	g.whosTurn = g.rules.TurnOrder[g.turn]
}
