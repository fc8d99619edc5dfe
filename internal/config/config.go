// Package config provides the run configuration of infchess and the YAML
// format of variant and game files.
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/lgbarn/infinite-chess-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=summary, 2=running commentary

	// Workers is the number of games validated in parallel.
	Workers int

	// PerftDepth, when positive, counts the move tree of each starting
	// position instead of replaying its moves.
	PerftDepth int

	// StopAfter, when positive, ends the run once that many games have
	// been reported.
	StopAfter int

	Output     OutputConfig
	Filter     FilterConfig
	Duplicate  DuplicateConfig
	Annotation AnnotationConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer

	logMu sync.Mutex
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Workers:    runtime.NumCPU(),
		Output:     *NewOutputConfig(),
		Filter:     *NewFilterConfig(),
		Duplicate:  *NewDuplicateConfig(),
		Annotation: *NewAnnotationConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// Logf writes to the log when the verbosity is at least level. It is safe
// to call from several workers.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.LogFile == nil || c.Verbosity < level {
		return
	}
	c.logMu.Lock()
	defer c.logMu.Unlock()
	fmt.Fprintf(c.LogFile, format, args...)
}

// Validate checks the configuration for contradictory settings.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "workers = %d", c.Workers)
	}
	if c.PerftDepth < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "perft depth = %d", c.PerftDepth)
	}
	if c.StopAfter < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "stop after = %d", c.StopAfter)
	}
	return c.Filter.Validate()
}
