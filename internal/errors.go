package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeForbidden  ErrorType = "FORBIDDEN"
	ErrorTypeConflict   ErrorType = "CONFLICT"
	ErrorTypeLifecycle  ErrorType = "LIFECYCLE_ERROR"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeMalformedTime    ErrorCode = "MALFORMED_TIME"
	ErrCodeMalformedDate    ErrorCode = "MALFORMED_DATE"
	ErrCodeInvalidTimeOrder ErrorCode = "INVALID_TIME_ORDER"
	ErrCodeInvalidDateOrder ErrorCode = "INVALID_DATE_ORDER"
	ErrCodeInvalidWeekday   ErrorCode = "INVALID_WEEKDAY"
	ErrCodeInvalidRole      ErrorCode = "INVALID_ROLE"
	ErrCodeInvalidType      ErrorCode = "INVALID_TYPE"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	ErrCodeDuplicateAssignment   ErrorCode = "DUPLICATE_ASSIGNMENT"
	ErrCodeTimeOffConflict       ErrorCode = "TIME_OFF_CONFLICT"
	ErrCodeShiftOverlap          ErrorCode = "SHIFT_OVERLAP"
	ErrCodeAvailabilityViolation ErrorCode = "AVAILABILITY_VIOLATION"
	ErrCodeDuplicateEmail        ErrorCode = "DUPLICATE_EMAIL"
	ErrCodeDuplicateEmployee     ErrorCode = "DUPLICATE_EMPLOYEE"

	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeNotDeletable ErrorCode = "NOT_DELETABLE"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       ErrCodeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       ErrCodeForbidden,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewLifecycleError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeLifecycle,
		Code:       ErrCodeNotDeletable,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewStoreError wraps a failed store call. The cause is preserved for logging
// but never serialized to the caller.
func NewStoreError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeStoreUnavailable,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrShiftNotFound      = NewNotFoundError("shift not found")
	ErrEmployeeNotFound   = NewNotFoundError("employee not found")
	ErrAssignmentNotFound = NewNotFoundError("shift assignment not found")
	ErrTimeOffNotFound    = NewNotFoundError("time-off request not found")

	ErrDuplicateAssignment   = NewConflictError("employee already assigned to this shift", ErrCodeDuplicateAssignment)
	ErrTimeOffConflict       = NewConflictError("employee has approved time off on this date", ErrCodeTimeOffConflict)
	ErrShiftOverlap          = NewConflictError("employee has an overlapping shift on this date", ErrCodeShiftOverlap)
	ErrAvailabilityViolation = NewConflictError("shift is outside the employee's declared availability", ErrCodeAvailabilityViolation)

	ErrForbidden    = NewForbiddenError("forbidden")
	ErrNotDeletable = NewLifecycleError("only pending time-off requests can be modified or deleted")

	ErrInvalidCredentials = &AppError{Type: ErrorTypeForbidden, Code: ErrCodeInvalidCredentials, Message: "invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrInvalidToken       = &AppError{Type: ErrorTypeForbidden, Code: ErrCodeInvalidToken, Message: "invalid token", StatusCode: http.StatusUnauthorized}
	ErrTokenExpired       = &AppError{Type: ErrorTypeForbidden, Code: ErrCodeTokenExpired, Message: "token has expired", StatusCode: http.StatusUnauthorized}
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
