package config

import "io"

// DuplicateConfig holds settings for duplicate final-position detection.
type DuplicateConfig struct {
	// Suppress drops reports of games whose final position was already seen
	Suppress bool

	// DuplicateFile, when set, receives the reports of suppressed games
	DuplicateFile io.Writer
}

// NewDuplicateConfig creates a DuplicateConfig with default values.
func NewDuplicateConfig() *DuplicateConfig {
	return &DuplicateConfig{}
}
