package engine

import "github.com/plauderhq/plauder/pkg/api"

// Config holds engine behavior settings.
type Config struct {
	// SystemPrompt is prepended to every conversation when non-empty.
	SystemPrompt string

	// SaveTranscripts persists completed exchanges to the transcript
	// store. Ignored when no store is configured.
	SaveTranscripts bool

	// Validation limits applied to incoming payloads. The zero value
	// is replaced with api.DefaultValidationConfig.
	Validation api.ValidationConfig
}

// defaults applies default values for unset configuration fields.
func (c *Config) defaults() {
	if c.Validation == (api.ValidationConfig{}) {
		c.Validation = api.DefaultValidationConfig()
	}
}
