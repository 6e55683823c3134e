package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrInvalidFormat      = errors.New("invalid token format")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUnauthenticated    = errors.New("authentication required")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Throttling
	ErrTooManyRequests = errors.New("too many requests")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileCompleted   = errors.New("profile already completed")
	ErrStudentIDExists    = errors.New("student ID already exists")
)

// OTP and password reset errors
var (
	ErrOTPNotFound               = errors.New("no pending verification code for this email")
	ErrOTPExpired                = errors.New("verification code has expired")
	ErrOTPInvalid                = errors.New("invalid verification code")
	ErrOTPAttemptsExceeded       = errors.New("too many invalid verification attempts")
	ErrInvalidPasswordResetToken = errors.New("invalid or expired password reset token")
	ErrPasswordResetTokenUsed    = errors.New("password reset token has already been used")
)

// Placement domain errors
var (
	ErrPlacementRecordNotFound = errors.New("placement record not found")
	ErrPlacementRecordExists   = errors.New("placement record for this academic year already exists")
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrExamNotFound            = errors.New("exam not found")
	ErrDriveNotFound           = errors.New("placement drive not found")
	ErrChartDataNotFound       = errors.New("chart data not found")
	ErrInvalidTransition       = errors.New("invalid status transition")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewValidationError wraps ErrValidationFailed with a message and per-field details.
func NewValidationError(message string, fields map[string]string) error {
	e := &CustomError{Err: ErrValidationFailed, Message: message}
	if len(fields) > 0 {
		details := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			details[k] = v
		}
		e.Details = details
	}
	return e
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// Message returns the user-facing message of err: the CustomError message when one is
// present in the chain, otherwise err.Error().
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return err.Error()
}
