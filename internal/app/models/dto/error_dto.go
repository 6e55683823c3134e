package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/placementhub/internal/pkg/validation"
)

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidEmail       ErrorCode = "AUTH_002"
	ErrorCodeInvalidPassword    ErrorCode = "AUTH_003"
	ErrorCodeInvalidOTP         ErrorCode = "AUTH_004"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_006"
	ErrorCodeTokenNotFound      ErrorCode = "AUTH_007"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"
	ErrorCodeForbidden          ErrorCode = "AUTH_009"
	ErrorCodeAccountDisabled    ErrorCode = "AUTH_010"

	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeResourceInvalid       ErrorCode = "RES_003"
	ErrorCodeConflict              ErrorCode = "RES_004"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeBadRequest       ErrorCode = "VAL_002"

	// Throttling
	ErrorCodeTooManyRequests ErrorCode = "RATE_001"

	// Server errors
	ErrorCodeInternalServer       ErrorCode = "SRV_001"
	ErrorCodeDatabaseError        ErrorCode = "SRV_002"
	ErrorCodeExternalServiceError ErrorCode = "SRV_003"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

// Severity levels
const (
	ErrorSeverityInfo     ErrorSeverity = "INFO"
	ErrorSeverityWarning  ErrorSeverity = "WARNING"
	ErrorSeverityError    ErrorSeverity = "ERROR"
	ErrorSeverityCritical ErrorSeverity = "CRITICAL"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code      ErrorCode     `json:"code" example:"VAL_001"`
	Message   string        `json:"message" example:"Cannot exceed total students"`
	Field     string        `json:"field,omitempty" example:"CSE-interestedForJob"`
	Severity  ErrorSeverity `json:"severity" example:"ERROR"`
	Details   interface{}   `json:"details,omitempty"`
	DebugInfo string        `json:"debugInfo,omitempty"`
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:     code,
		Message:  message,
		Severity: ErrorSeverityError,
	}
}

// WithField adds a field name to the error detail
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithSeverity sets the severity level of the error
func (e *ErrorDetail) WithSeverity(severity ErrorSeverity) *ErrorDetail {
	e.Severity = severity
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// WithDebugInfo adds debug information (for development/testing only)
func (e *ErrorDetail) WithDebugInfo(format string, args ...interface{}) *ErrorDetail {
	e.DebugInfo = fmt.Sprintf(format, args...)
	return e
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}

// HandleValidationError converts a binding error into an error detail. Field level
// failures are listed in Details keyed by the JSON field name.
func HandleValidationError(err error) *ErrorDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewErrorDetail(ErrorCodeBadRequest, "Invalid request body").
			WithDebugInfo("%v", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = validation.Message(fe)
	}

	detail := NewErrorDetail(ErrorCodeValidationFailed, validation.Message(verrs[0])).
		WithDetails(fields)
	if len(verrs) == 1 {
		detail.WithField(verrs[0].Field())
	}
	return detail
}
