package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/agenda/internal/domain/event"
)

// Error codes returned in tool error results.
const (
	CodeEventNotFound = "EVENT_NOT_FOUND"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInternal      = "INTERNAL"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var verr *event.ValidationError
	switch {
	case errors.Is(err, event.ErrEventNotFound):
		return &APIError{Code: CodeEventNotFound, Message: "event not found", RecoveryHint: "Check the id with search_events"}
	case errors.As(err, &verr):
		return &APIError{Code: CodeInvalidInput, Message: "validation failed", Details: verr.Fields}
	case errors.Is(err, event.ErrInvalidInput):
		return &APIError{Code: CodeInvalidInput, Message: err.Error()}
	default:
		return nil
	}
}

// internalError reports an unmapped error to tool callers.
func internalError(err error) *APIError {
	return &APIError{Code: CodeInternal, Message: "internal error", Details: err.Error()}
}
