package config

import (
	"fmt"

	"github.com/lgbarn/infinite-chess-go/internal/errors"
)

// FilterConfig selects which games are reported.
type FilterConfig struct {
	// Ply bounds
	CheckPlyBounds bool
	MinPlies       uint
	MaxPlies       uint

	// Match conditions
	MatchCheckmate bool
	MatchStalemate bool
	MatchDraws     bool
	MatchIllegal   bool // Only games with a rejected move
}

// NewFilterConfig creates a FilterConfig with default values.
// All filters are disabled by default.
func NewFilterConfig() *FilterConfig {
	return &FilterConfig{}
}

// Active reports whether any match condition is set.
func (f *FilterConfig) Active() bool {
	return f.MatchCheckmate || f.MatchStalemate || f.MatchDraws || f.MatchIllegal || f.CheckPlyBounds
}

// Validate checks that the filter configuration is valid.
func (f *FilterConfig) Validate() error {
	if f.CheckPlyBounds && f.MinPlies > f.MaxPlies {
		return fmt.Errorf("lower ply bound (%d) > upper ply bound (%d): %w",
			f.MinPlies, f.MaxPlies, errors.ErrInvalidConfig)
	}
	return nil
}
