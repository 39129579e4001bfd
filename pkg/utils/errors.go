package utils

import (
	"fmt"
	"net/http"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Raw     string `json:"raw,omitempty"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Common error constructors
func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

func NewNotFoundError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Message: message,
	}
}

func NewConflictError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func NewInternalServerError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

func NewValidationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Detail:  detail,
	}
}

// Pipeline specific errors. All of them are server-side failures and carry
// the diagnostic payload verbatim.

func NewGenerationError(detail, raw string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: "Generation request failed",
		Detail:  detail,
		Raw:     raw,
	}
}

func NewSchemaError(detail, raw string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: "Generated output failed validation",
		Detail:  detail,
		Raw:     raw,
	}
}

func NewCompileError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: "LaTeX compilation failed",
		Detail:  detail,
	}
}

func NewImportError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "Job import failed",
		Detail:  detail,
	}
}
