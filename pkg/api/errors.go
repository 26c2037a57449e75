package api

import "fmt"

// ErrorType represents the category of a pipeline error.
type ErrorType string

const (
	ErrorTypeConfig         ErrorType = "config_error"
	ErrorTypeInvalidRequest ErrorType = "invalid_request"
	ErrorTypeTransport      ErrorType = "transport_error"
	ErrorTypeDecode         ErrorType = "decode_error"
)

// APIError represents a structured pipeline error with type, param, and message.
type APIError struct {
	Type    ErrorType `json:"type"`
	Param   string    `json:"param,omitempty"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", e.Type, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewConfigError creates an APIError for configuration problems,
// e.g. a missing or unresolved credential.
func NewConfigError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeConfig,
		Message: message,
	}
}

// NewInvalidRequestError creates an APIError for invalid request payloads.
func NewInvalidRequestError(param, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidRequest,
		Param:   param,
		Message: message,
	}
}

// NewTransportError creates an APIError for failures reported by the
// external transport process.
func NewTransportError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeTransport,
		Message: message,
	}
}

// NewDecodeError creates an APIError for stream payloads that cannot
// be interpreted at all. Individual malformed lines are not errors;
// this type is reserved for callers that need to report a stream as
// a whole.
func NewDecodeError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeDecode,
		Message: message,
	}
}
