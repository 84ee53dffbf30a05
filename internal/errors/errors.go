package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrorCode represents a Folio error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrDuplicateID      ErrorCode = "DUPLICATE_ID"      // 409
	ErrValidationFailed ErrorCode = "VALIDATION_FAILED" // 422
	ErrMalformedDate    ErrorCode = "MALFORMED_DATE"    // 422
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// FolioError represents a structured error with code, status, and details.
type FolioError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *FolioError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *FolioError {
	return &FolioError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a project or file cannot be found.
func NewNotFound(identifier string) *FolioError {
	return &FolioError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewDuplicateID creates a 409 error when a record id is already in the catalog.
func NewDuplicateID(id string) *FolioError {
	return &FolioError{
		Code:    ErrDuplicateID,
		Status:  409,
		Message: fmt.Sprintf("project with id %q already exists", id),
		Details: map[string]any{"id": id},
	}
}

// NewValidationFailed creates a 422 error carrying one message per failed field.
func NewValidationFailed(fields map[string]string) *FolioError {
	names := slices.Sorted(maps.Keys(fields))
	return &FolioError{
		Code:    ErrValidationFailed,
		Status:  422,
		Message: fmt.Sprintf("invalid fields: %s", strings.Join(names, ", ")),
		Details: map[string]any{"fields": fields},
	}
}

// NewMalformedDate creates a 422 error for a record whose date cannot be parsed.
func NewMalformedDate(id, date string) *FolioError {
	return &FolioError{
		Code:    ErrMalformedDate,
		Status:  422,
		Message: fmt.Sprintf("project %q has malformed date %q", id, date),
		Details: map[string]any{"id": id, "date": date},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message stays generic; the cause is kept in Details for logging.
func NewInternal(err error) *FolioError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &FolioError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if an error (or anything it wraps) is a FolioError with the given code.
func Is(err error, code ErrorCode) bool {
	var fErr *FolioError
	if stderrors.As(err, &fErr) {
		return fErr.Code == code
	}
	return false
}

// Fields returns the field-to-message map of a VALIDATION_FAILED error, or nil.
func Fields(err error) map[string]string {
	var fErr *FolioError
	if !stderrors.As(err, &fErr) || fErr.Code != ErrValidationFailed {
		return nil
	}
	fields, _ := fErr.Details["fields"].(map[string]string)
	return fields
}
