package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeSchema        ErrorType = "SCHEMA"
	ErrTypeInputNotFound ErrorType = "INPUT_NOT_FOUND"
	ErrTypeOutput        ErrorType = "OUTPUT"
	ErrTypeParse         ErrorType = "PARSE"
	ErrTypeValidation    ErrorType = "VALIDATION"
	ErrTypeConfig        ErrorType = "CONFIG"
	ErrTypeInternal      ErrorType = "INTERNAL"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewSchemaError reports required input columns that are absent. The message
// names both the missing set and the full expected set; both lists are also
// attached as context for structured surfaces.
func NewSchemaError(missing, expected []string) *AppError {
	msg := fmt.Sprintf("input schema invalid. Missing columns: %s. Expected columns: %s",
		strings.Join(missing, ", "), strings.Join(expected, ", "))
	return NewAppError(ErrTypeSchema, msg, nil).
		WithContext("missing_columns", missing).
		WithContext("expected_columns", expected)
}

// NewInputNotFoundError creates an error for a missing input file
func NewInputNotFoundError(path string) *AppError {
	return NewAppError(ErrTypeInputNotFound, fmt.Sprintf("input file not found: %s", path), nil).
		WithContext("path", path)
}

// NewOutputError creates an error for an unwritable report destination
func NewOutputError(path string, cause error) *AppError {
	return NewAppError(ErrTypeOutput, fmt.Sprintf("cannot write report to %s", path), cause).
		WithContext("path", path)
}

// NewParseError creates an error for undecodable input
func NewParseError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParse, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *AppError {
	return NewAppError(ErrTypeInternal, message, cause)
}
