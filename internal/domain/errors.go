package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Document stage errors. These abort an ingestion before any model call.
	ErrDocumentNotFound  ErrorCode = "DOCUMENT_NOT_FOUND"
	ErrUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	ErrParseFailure      ErrorCode = "PARSE_FAILURE"
	ErrEmptyDocument     ErrorCode = "EMPTY_DOCUMENT"

	// Chunk stage errors. Recorded per chunk, never fatal.
	ErrGenerationFailure ErrorCode = "GENERATION_FAILURE"
	ErrRepairFailure     ErrorCode = "REPAIR_FAILURE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// HasCode reports whether err carries a DomainError with the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewDocumentNotFoundError(path string) *DomainError {
	return NewError(ErrDocumentNotFound, fmt.Sprintf("Document not found: %s", path), nil)
}

func NewUnsupportedFormatError(ext string) *DomainError {
	return NewError(ErrUnsupportedFormat, fmt.Sprintf("Unsupported file type: %s", ext), nil)
}

func NewParseFailureError(format string, err error) *DomainError {
	return NewError(ErrParseFailure, fmt.Sprintf("%s parsing failed", format), err)
}

func NewEmptyDocumentError() *DomainError {
	return NewError(ErrEmptyDocument, "Document parsing returned empty content", nil)
}

func NewGenerationFailureError(chunk int, err error) *DomainError {
	return NewError(ErrGenerationFailure, fmt.Sprintf("Model invocation failed for chunk %d", chunk), err)
}

func NewRepairFailureError(err error) *DomainError {
	return NewError(ErrRepairFailure, "Model response could not be repaired into JSON", err)
}

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects field errors for a single request.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s (and %d more)", v[0].Error(), len(v)-1)
}

func NewMissingFieldError(field string) FieldError {
	return FieldError{Field: field, Message: "field is required"}
}

func NewOutOfRangeError(field string, value, min, max int) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf("value %d out of range [%d, %d]", value, min, max)}
}

func NewInvalidFormatError(field, value string) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf("invalid format: %q", value)}
}
