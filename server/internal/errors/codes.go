package errors

import (
	"fmt"
)

// ErrorCode represents a specific error type for concierge operations.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeSessionNotFound indicates the session does not exist.
	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	// ErrCodeTravelTypeNotFound indicates an unknown travel type code.
	ErrCodeTravelTypeNotFound ErrorCode = "TRAVEL_TYPE_NOT_FOUND"
	// ErrCodeLLMUnavailable indicates the LLM collaborator is not available.
	ErrCodeLLMUnavailable ErrorCode = "LLM_UNAVAILABLE"
	// ErrCodeContextCanceled indicates the operation was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeTimeout indicates the operation timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// ConciergeError is a structured error for concierge operations.
type ConciergeError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *ConciergeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ConciergeError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *ConciergeError) WithContext(key string, value interface{}) *ConciergeError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *ConciergeError {
	return &ConciergeError{Code: ErrCodeInvalidArgument, Message: msg}
}

// SessionNotFound creates a session not found error.
func SessionNotFound(sessionID string) *ConciergeError {
	return &ConciergeError{
		Code:    ErrCodeSessionNotFound,
		Message: fmt.Sprintf("session not found: %s", sessionID),
	}
}

// TravelTypeNotFound creates a travel type not found error.
func TravelTypeNotFound(code string) *ConciergeError {
	return &ConciergeError{
		Code:    ErrCodeTravelTypeNotFound,
		Message: fmt.Sprintf("travel type not found: %s", code),
	}
}

// LLMUnavailable creates an LLM unavailable error.
func LLMUnavailable(msg string) *ConciergeError {
	return &ConciergeError{Code: ErrCodeLLMUnavailable, Message: msg}
}

// Timeout creates a timeout error.
func Timeout(msg string) *ConciergeError {
	return &ConciergeError{Code: ErrCodeTimeout, Message: msg}
}

// Wrap wraps an existing error with additional context.
func Wrap(cause error, code ErrorCode, msg string) *ConciergeError {
	return &ConciergeError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if cerr, ok := err.(*ConciergeError); ok {
		return cerr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a ConciergeError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if cerr, ok := err.(*ConciergeError); ok {
		return cerr.Code
	}
	return defaultCode
}
