// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/infinite-chess-go/internal/config"
)

var (
	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")
	jsonLines    = flag.Bool("jsonl", false, "Output one JSON report per line as games finish")
	listMoves    = flag.Bool("moves", false, "List the moves of each game")
	stopAfter    = flag.Int("stopafter", 0, "Stop after this many games have been reported (0 = no limit)")

	// SVG snapshots
	svgDir    = flag.String("svg", "", "Write an SVG of each final position into this directory")
	svgMargin = flag.Int64("svgmargin", 2, "Squares drawn around the pieces in SVG snapshots")
	svgSquare = flag.Int("svgsquare", 32, "Size of one square in pixels in SVG snapshots")

	// Move tree counting
	perftDepth = flag.Int("perft", 0, "Count the move tree of each starting position to this depth instead of replaying")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Suppress games whose final position was already reported")
	duplicateFile      = flag.String("d", "", "Output suppressed duplicates to this file")
	exactDuplicates    = flag.Bool("exact", false, "Duplicates must also have the same ply count")
	duplicateCapacity  = flag.Int("duplicate-capacity", 0, "Maximum duplicate hash table entries (0 = unlimited)")
	checkFile          = flag.String("c", "", "File listing games whose final positions count as already seen")

	// Ply bounds
	minPly = flag.Int("minply", 0, "Minimum ply count")
	maxPly = flag.Int("maxply", 0, "Maximum ply count (0 = no limit)")

	// Ending filters
	checkmateFilter = flag.Bool("checkmate", false, "Only report games ending in checkmate")
	stalemateFilter = flag.Bool("stalemate", false, "Only report games ending in stalemate")
	drawFilter      = flag.Bool("draws", false, "Only report drawn games")
	illegalFilter   = flag.Bool("illegal", false, "Only report games with an illegal move")

	// Annotations
	addPlyCount = flag.Bool("plycount", false, "Add the ply count to each report")
	addHash     = flag.Bool("hash", false, "Add the final position hash to each report")
	addChecks   = flag.Bool("checks", false, "Add the number of checks given by each side")

	// Logging
	logFile   = flag.String("log", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	verbosity = flag.Int("v", 1, "Verbosity: 0=nothing, 1=summary, 2=per game, 3=per move")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no summary)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")

	// Performance options
	workers = flag.Int("j", 0, "Number of games validated in parallel (0 = auto-detect based on CPU cores)")

	// File input options
	fileListFile = flag.String("f", "", "File containing list of game files to process (one per line)")
)

// configFromFlags builds the run configuration from the command-line
// flags. Output files are attached later by the setup functions.
func configFromFlags() *config.ConfigBuilder {
	b := config.NewConfigBuilder()
	applyOutputFlags(b)
	applyPlyBoundsFlags(b)
	applyAnnotationFlags(b)
	applyFilterFlags(b)

	b.WithPerftDepth(*perftDepth).
		WithStopAfter(*stopAfter).
		WithDuplicateSuppression(*suppressDuplicates)
	if *workers > 0 {
		b.WithWorkers(*workers)
	}
	if *quiet {
		b.WithVerbosity(0)
	} else {
		b.WithVerbosity(*verbosity)
	}
	return b
}

// applyOutputFlags configures the report format and SVG snapshots.
func applyOutputFlags(b *config.ConfigBuilder) {
	switch {
	case *jsonLines:
		b.WithFormat(config.JSONLines)
	case *jsonOutput:
		b.WithFormat(config.JSON)
	default:
		b.WithFormat(config.Text)
	}
	b.WithMoveList(*listMoves).
		WithSVGDir(*svgDir).
		WithSVGScale(*svgMargin, *svgSquare)
}

// applyPlyBoundsFlags configures ply bounds.
func applyPlyBoundsFlags(b *config.ConfigBuilder) {
	if *minPly <= 0 && *maxPly <= 0 {
		return
	}

	lower, upper := uint(0), ^uint(0)
	if *minPly > 0 {
		lower = uint(*minPly)
	}
	if *maxPly > 0 {
		upper = uint(*maxPly)
	}
	b.WithPlyBounds(lower, upper)
}

// applyAnnotationFlags configures extra report fields.
func applyAnnotationFlags(b *config.ConfigBuilder) {
	b.WithPlyCount(*addPlyCount).
		WithHash(*addHash).
		WithChecks(*addChecks)
}

// applyFilterFlags configures report filter settings.
func applyFilterFlags(b *config.ConfigBuilder) {
	b.WithCheckmateFilter(*checkmateFilter).
		WithStalemateFilter(*stalemateFilter).
		WithDrawFilter(*drawFilter).
		WithIllegalFilter(*illegalFilter)
}
