package config

import (
	"strings"

	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/errors"
)

// ParsePosition reads the starting-position shorthand: tokens such as
// "P1,2+" separated by '|'. The abbreviation is upper case for white and
// lower case for black; neutral species take either case. A trailing '+'
// grants the special right.
func ParsePosition(s string) ([]chess.Placement, error) {
	var out []chess.Placement
	seen := make(map[chess.Coords]bool)
	for _, tok := range strings.Split(s, "|") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		p, err := parsePlacement(tok)
		if err != nil {
			return nil, err
		}
		if seen[p.Coords] {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "two pieces on %v", p.Coords)
		}
		seen[p.Coords] = true
		out = append(out, p)
	}
	return out, nil
}

func parsePlacement(tok string) (chess.Placement, error) {
	var p chess.Placement
	body := tok
	if strings.HasSuffix(body, "+") {
		p.SpecialRight = true
		body = strings.TrimSuffix(body, "+")
	}
	i := strings.IndexAny(body, "-0123456789")
	if i <= 0 {
		return p, errors.Wrapf(errors.ErrInvalidConfig, "position token %q", tok)
	}
	abbr := body[:i]
	species, ok := chess.SpeciesFromAbbr(abbr)
	if !ok {
		return p, errors.Wrapf(errors.ErrInvalidConfig, "unknown piece %q in %q", abbr, tok)
	}

	var colour chess.Colour
	switch {
	case species.IsNeutral():
		colour = chess.Neutral
	case abbr == strings.ToUpper(abbr):
		colour = chess.White
	case abbr == strings.ToLower(abbr):
		colour = chess.Black
	default:
		return p, errors.Wrapf(errors.ErrInvalidConfig, "mixed case piece %q in %q", abbr, tok)
	}

	c, err := chess.ParseCoords(body[i:])
	if err != nil {
		return p, errors.Wrap(errors.ErrInvalidConfig, err.Error())
	}
	p.Type = chess.MakePieceType(colour, species)
	p.Coords = c
	return p, nil
}

// FormatPosition writes placements in the shorthand ParsePosition reads.
func FormatPosition(ps []chess.Placement) string {
	var sb strings.Builder
	for i, p := range ps {
		if i > 0 {
			sb.WriteByte('|')
		}
		abbr := p.Type.Species().Abbr()
		if p.Type.Colour() != chess.White {
			abbr = strings.ToLower(abbr)
		}
		sb.WriteString(abbr)
		sb.WriteString(p.Coords.String())
		if p.SpecialRight {
			sb.WriteByte('+')
		}
	}
	return sb.String()
}
