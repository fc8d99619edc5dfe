package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// WithWorkers sets the number of parallel workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithPerftDepth switches to move-tree counting at the given depth.
func (b *ConfigBuilder) WithPerftDepth(depth int) *ConfigBuilder {
	b.cfg.PerftDepth = depth
	return b
}

// WithOutput sets the report writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLogFile sets the log writer.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithFormat sets the report format.
func (b *ConfigBuilder) WithFormat(f OutputFormat) *ConfigBuilder {
	b.cfg.Output.Format = f
	return b
}

// WithMoveList includes the moves in each report.
func (b *ConfigBuilder) WithMoveList(enabled bool) *ConfigBuilder {
	b.cfg.Output.ListMoves = enabled
	return b
}

// WithSVGDir writes an SVG of each final position into dir.
func (b *ConfigBuilder) WithSVGDir(dir string) *ConfigBuilder {
	b.cfg.Output.SVGDir = dir
	return b
}

// WithSVGScale sets the margin in squares around the pieces and the size
// of a square in pixels.
func (b *ConfigBuilder) WithSVGScale(margin int64, square int) *ConfigBuilder {
	b.cfg.Output.SVGMargin = margin
	b.cfg.Output.SVGSquare = square
	return b
}

// WithStopAfter ends the run once n games have been reported.
func (b *ConfigBuilder) WithStopAfter(n int) *ConfigBuilder {
	b.cfg.StopAfter = n
	return b
}

// WithDuplicateFile sends suppressed duplicates to w.
func (b *ConfigBuilder) WithDuplicateFile(w io.Writer) *ConfigBuilder {
	b.cfg.Duplicate.DuplicateFile = w
	return b
}

// WithDuplicateSuppression enables duplicate suppression.
func (b *ConfigBuilder) WithDuplicateSuppression(enabled bool) *ConfigBuilder {
	b.cfg.Duplicate.Suppress = enabled
	return b
}

// WithPlyBounds only reports games whose length lies within [lower, upper].
func (b *ConfigBuilder) WithPlyBounds(lower, upper uint) *ConfigBuilder {
	b.cfg.Filter.CheckPlyBounds = true
	b.cfg.Filter.MinPlies = lower
	b.cfg.Filter.MaxPlies = upper
	return b
}

// WithCheckmateFilter only reports games ending in checkmate.
func (b *ConfigBuilder) WithCheckmateFilter(enabled bool) *ConfigBuilder {
	b.cfg.Filter.MatchCheckmate = enabled
	return b
}

// WithStalemateFilter only reports games ending in stalemate.
func (b *ConfigBuilder) WithStalemateFilter(enabled bool) *ConfigBuilder {
	b.cfg.Filter.MatchStalemate = enabled
	return b
}

// WithIllegalFilter only reports games with an illegal move.
func (b *ConfigBuilder) WithIllegalFilter(enabled bool) *ConfigBuilder {
	b.cfg.Filter.MatchIllegal = enabled
	return b
}

// WithDrawFilter only reports drawn games.
func (b *ConfigBuilder) WithDrawFilter(enabled bool) *ConfigBuilder {
	b.cfg.Filter.MatchDraws = enabled
	return b
}

// WithHash adds the final position hash to each report.
func (b *ConfigBuilder) WithHash(enabled bool) *ConfigBuilder {
	b.cfg.Annotation.AddHash = enabled
	return b
}

// WithPlyCount adds the ply count to each report.
func (b *ConfigBuilder) WithPlyCount(enabled bool) *ConfigBuilder {
	b.cfg.Annotation.AddPlyCount = enabled
	return b
}

// WithChecks adds the number of checks given by each side to each report.
func (b *ConfigBuilder) WithChecks(enabled bool) *ConfigBuilder {
	b.cfg.Annotation.AddChecks = enabled
	return b
}
