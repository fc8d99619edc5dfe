package config

// AnnotationConfig holds settings for extra fields in game reports.
type AnnotationConfig struct {
	AddHash     bool // Add the final position hash
	AddPlyCount bool // Add the number of plies played
	AddChecks   bool // Add the number of checks given by each side
}

// NewAnnotationConfig creates an AnnotationConfig with default values.
// All boolean fields default to false (Go zero value).
func NewAnnotationConfig() *AnnotationConfig {
	return &AnnotationConfig{}
}
