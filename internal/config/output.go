package config

// OutputFormat selects how game reports are written.
type OutputFormat int

const (
	Text      OutputFormat = iota // One line per game
	JSON                          // A JSON array of reports
	JSONLines                     // One JSON report per line, written as games finish
)

// OutputConfig holds settings related to report output.
type OutputConfig struct {
	// Format specifies the report format
	Format OutputFormat

	// ListMoves includes every move of the game in the report
	ListMoves bool

	// SVGDir, when set, receives an SVG picture of each final position
	SVGDir string

	// SVGMargin is the number of squares drawn around the pieces
	SVGMargin int64

	// SVGSquare is the size of one square in pixels
	SVGSquare int
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:    Text,
		SVGMargin: 2,
		SVGSquare: 32,
	}
}
