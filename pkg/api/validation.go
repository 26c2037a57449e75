package api

import "fmt"

// ValidationConfig holds configurable limits for payload validation.
type ValidationConfig struct {
	MaxMessages    int
	MaxContentSize int
}

// DefaultValidationConfig returns a ValidationConfig with sensible defaults.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MaxMessages:    1000,
		MaxContentSize: 10 * 1024 * 1024, // 10MB
	}
}

// ValidatePayload checks an outgoing payload for validity. It returns an
// *APIError describing the first validation failure, or nil if the payload
// is valid.
func ValidatePayload(p *Payload, cfg ValidationConfig) *APIError {
	if p.Model == "" {
		return NewInvalidRequestError("model", "model is required")
	}

	if len(p.Messages) == 0 {
		return NewInvalidRequestError("messages", "messages must contain at least one entry")
	}

	if cfg.MaxMessages > 0 && len(p.Messages) > cfg.MaxMessages {
		return NewInvalidRequestError("messages",
			fmt.Sprintf("messages exceeds maximum of %d entries", cfg.MaxMessages))
	}

	total := 0
	for i, msg := range p.Messages {
		if !ValidRole(string(msg.Role)) {
			return NewInvalidRequestError("messages",
				fmt.Sprintf("messages[%d] has unknown role %q", i, msg.Role))
		}
		total += len(msg.Content)
	}

	if cfg.MaxContentSize > 0 && total > cfg.MaxContentSize {
		return NewInvalidRequestError("messages",
			fmt.Sprintf("total content size exceeds maximum of %d bytes", cfg.MaxContentSize))
	}

	return nil
}
