// Package apperrors defines application-level error types.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes exchanged with the users API.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUserNotFound = "USER_NOT_FOUND"
	CodeBadRequest   = "BAD_REQUEST"
	CodeRateLimited  = "RATE_LIMITED"
)

// ErrBusy is returned when a mutation is requested while another one on the
// same control is still in flight.
var ErrBusy = errors.New("operation already in progress")

// InputError is a local validation failure on user input.
// No network call has been made when one is returned.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// NewInputError creates a new input error.
func NewInputError(message string) *InputError {
	return &InputError{Message: message}
}

// ValidationError indicates a request payload failed validation.
type ValidationError struct {
	Field   string   // Field that failed validation
	Message string   // Error message
	Details []string // Additional details
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (%d issues)", e.Field, e.Message, len(e.Details))
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, details ...string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: details,
	}
}

// APIError is a non-2xx answer from the users API.
type APIError struct {
	Message    string
	Code       string
	Details    []string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.UserMessage())
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.UserMessage())
}

// UserMessage returns the server's message, or the HTTP status text when the
// server sent none.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return text
	}
	return "unexpected response"
}

// IsNotFound reports whether the API answered 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// NewAPIError creates a new API error.
func NewAPIError(statusCode int, message, code string, details ...string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
		Details:    details,
	}
}

// UserMessage extracts the message to show a person for err: the API's
// message for *APIError, the input message for *InputError, else err.Error().
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	var inErr *InputError
	if errors.As(err, &inErr) {
		return inErr.Message
	}
	return err.Error()
}

// OperationError is a failed operation reported with a fixed, user-facing
// message. The underlying cause stays reachable through errors.As.
type OperationError struct {
	Cause   error
	Message string
}

func (e *OperationError) Error() string {
	return e.Message
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}

// NewOperationError creates a new operation error.
func NewOperationError(message string, cause error) *OperationError {
	return &OperationError{Message: message, Cause: cause}
}

// ConfigurationError indicates system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}
