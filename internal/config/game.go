package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/errors"
)

// File is the YAML layout of a variant or game file.
type File struct {
	Rules      RulesFile  `yaml:"rules"`
	Position   string     `yaml:"position"`
	Turn       string     `yaml:"turn,omitempty"`
	Moves      []MoveFile `yaml:"moves,omitempty"`
	Conclusion string     `yaml:"conclusion,omitempty"`
}

// RulesFile is the YAML layout of chess.Rules.
type RulesFile struct {
	TurnOrder         []string            `yaml:"turn_order,flow"`
	WinConditions     map[string][]string `yaml:"win_conditions"`
	PromotionRanks    map[string][]int64  `yaml:"promotion_ranks,omitempty"`
	PromotionsAllowed map[string][]string `yaml:"promotions_allowed,omitempty"`
	MoveRule          int                 `yaml:"move_rule,omitempty"`
	SlideLimit        int64               `yaml:"slide_limit,omitempty"`
	WorldBorder       *BorderFile         `yaml:"world_border,omitempty"`
}

// BorderFile is the YAML layout of chess.Bounds.
type BorderFile struct {
	Left   int64 `yaml:"left"`
	Bottom int64 `yaml:"bottom"`
	Right  int64 `yaml:"right"`
	Top    int64 `yaml:"top"`
}

// MoveFile is one move of a game file.
type MoveFile struct {
	From      [2]int64 `yaml:"from,flow"`
	To        [2]int64 `yaml:"to,flow"`
	Promotion string   `yaml:"promotion,omitempty"`
}

// Game is a validated variant or game file.
type Game struct {
	Rules      chess.Rules
	Placements []chess.Placement
	Turn       chess.Colour // Neutral means the first colour of the turn order
	Moves      []chess.Draft
	Conclusion *chess.Conclusion // Claimed result, if any
}

// Load reads and validates a game file.
func Load(path string) (*Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", path, err)
	}
	return g, nil
}

// Parse decodes and validates a game file. Unknown keys are rejected.
func Parse(data []byte) (*Game, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, errors.Wrap(errors.ErrInvalidConfig, "empty game file")
		}
		return nil, errors.Wrap(errors.ErrInvalidConfig, err.Error())
	}
	return f.Game()
}

// Marshal encodes a game in the file format Parse reads.
func Marshal(g *Game) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(FileOf(g)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Game validates the file and converts it.
func (f *File) Game() (*Game, error) {
	rules, err := f.Rules.Rules()
	if err != nil {
		return nil, err
	}
	placements, err := ParsePosition(f.Position)
	if err != nil {
		return nil, err
	}
	g := &Game{Rules: rules, Placements: placements}

	if f.Turn != "" {
		c, err := parsePlayer(f.Turn)
		if err != nil {
			return nil, err
		}
		g.Turn = c
	}
	for i, m := range f.Moves {
		d := chess.Draft{
			Start: chess.C(m.From[0], m.From[1]),
			End:   chess.C(m.To[0], m.To[1]),
		}
		if m.Promotion != "" {
			s, ok := chess.ParseSpecies(m.Promotion)
			if !ok {
				return nil, &errors.MoveError{Err: errors.ErrInvalidConfig, Ply: i + 1, Move: d.String()}
			}
			d.Promotion = s
		}
		g.Moves = append(g.Moves, d)
	}
	if f.Conclusion != "" {
		c, err := chess.ParseConclusion(f.Conclusion)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInvalidConfig, err.Error())
		}
		g.Conclusion = &c
	}
	return g, nil
}

// Rules validates the rules section and converts it.
func (r *RulesFile) Rules() (chess.Rules, error) {
	var rules chess.Rules
	if len(r.TurnOrder) == 0 {
		return rules, errors.Wrap(errors.ErrInvalidConfig, "empty turn order")
	}
	for _, s := range r.TurnOrder {
		c, err := parsePlayer(s)
		if err != nil {
			return rules, err
		}
		rules.TurnOrder = append(rules.TurnOrder, c)
	}

	rules.WinConditions = make(map[chess.Colour][]chess.WinCondition, len(r.WinConditions))
	for who, conds := range r.WinConditions {
		c, err := parsePlayer(who)
		if err != nil {
			return rules, err
		}
		for _, name := range conds {
			w, ok := chess.ParseWinCondition(name)
			if !ok {
				return rules, errors.Wrapf(errors.ErrInvalidConfig, "unknown win condition %q", name)
			}
			rules.WinConditions[c] = append(rules.WinConditions[c], w)
		}
	}

	if len(r.PromotionRanks) > 0 {
		rules.PromotionRanks = make(map[chess.Colour][]int64, len(r.PromotionRanks))
		for who, ranks := range r.PromotionRanks {
			c, err := parsePlayer(who)
			if err != nil {
				return rules, err
			}
			rules.PromotionRanks[c] = append([]int64(nil), ranks...)
		}
	}
	if len(r.PromotionsAllowed) > 0 {
		rules.PromotionsAllowed = make(map[chess.Colour][]chess.Species, len(r.PromotionsAllowed))
		for who, names := range r.PromotionsAllowed {
			c, err := parsePlayer(who)
			if err != nil {
				return rules, err
			}
			for _, name := range names {
				s, ok := chess.ParseSpecies(name)
				if !ok || s == chess.Pawn || s.IsNeutral() {
					return rules, errors.Wrapf(errors.ErrInvalidConfig, "cannot promote to %q", name)
				}
				rules.PromotionsAllowed[c] = append(rules.PromotionsAllowed[c], s)
			}
		}
	}

	if r.MoveRule < 0 || r.SlideLimit < 0 {
		return rules, errors.Wrap(errors.ErrInvalidConfig, "negative move rule or slide limit")
	}
	rules.MoveRule = r.MoveRule
	rules.SlideLimit = r.SlideLimit
	if b := r.WorldBorder; b != nil {
		if b.Left > b.Right || b.Bottom > b.Top {
			return rules, errors.Wrapf(errors.ErrInvalidConfig, "empty world border %+v", *b)
		}
		rules.WorldBorder = &chess.Bounds{Left: b.Left, Bottom: b.Bottom, Right: b.Right, Top: b.Top}
	}
	return rules, nil
}

// parsePlayer parses a colour that can take turns.
func parsePlayer(s string) (chess.Colour, error) {
	c, ok := chess.ParseColour(strings.TrimSpace(s))
	if !ok || c == chess.Neutral {
		return chess.Neutral, errors.Wrapf(errors.ErrInvalidConfig, "unknown player %q", s)
	}
	return c, nil
}

// FileOf converts a game back into its file layout.
func FileOf(g *Game) *File {
	f := &File{
		Rules:    rulesFileOf(g.Rules),
		Position: FormatPosition(g.Placements),
	}
	if g.Turn != chess.Neutral {
		f.Turn = g.Turn.String()
	}
	for _, d := range g.Moves {
		m := MoveFile{From: [2]int64{d.Start.X, d.Start.Y}, To: [2]int64{d.End.X, d.End.Y}}
		if d.Promotion != chess.NoSpecies {
			m.Promotion = d.Promotion.String()
		}
		f.Moves = append(f.Moves, m)
	}
	if g.Conclusion != nil {
		f.Conclusion = g.Conclusion.String()
	}
	return f
}

func rulesFileOf(r chess.Rules) RulesFile {
	rf := RulesFile{
		WinConditions: make(map[string][]string, len(r.WinConditions)),
		MoveRule:      r.MoveRule,
		SlideLimit:    r.SlideLimit,
	}
	for _, c := range r.TurnOrder {
		rf.TurnOrder = append(rf.TurnOrder, c.String())
	}
	for c, conds := range r.WinConditions {
		for _, w := range conds {
			rf.WinConditions[c.String()] = append(rf.WinConditions[c.String()], string(w))
		}
	}
	if len(r.PromotionRanks) > 0 {
		rf.PromotionRanks = make(map[string][]int64, len(r.PromotionRanks))
		for c, ranks := range r.PromotionRanks {
			rf.PromotionRanks[c.String()] = append([]int64(nil), ranks...)
		}
	}
	if len(r.PromotionsAllowed) > 0 {
		rf.PromotionsAllowed = make(map[string][]string, len(r.PromotionsAllowed))
		for c, species := range r.PromotionsAllowed {
			for _, s := range species {
				rf.PromotionsAllowed[c.String()] = append(rf.PromotionsAllowed[c.String()], s.String())
			}
		}
	}
	if b := r.WorldBorder; b != nil {
		rf.WorldBorder = &BorderFile{Left: b.Left, Bottom: b.Bottom, Right: b.Right, Top: b.Top}
	}
	return rf
}
