package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/logger"
)

type errorMapping struct {
	target error
	status int
	code   dto.ErrorCode
}

// errorMappings is checked in order; the first sentinel found in the chain wins
var errorMappings = []errorMapping{
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeBadRequest},
	{apperrors.ErrOTPInvalid, http.StatusBadRequest, dto.ErrorCodeInvalidOTP},
	{apperrors.ErrOTPExpired, http.StatusBadRequest, dto.ErrorCodeInvalidOTP},
	{apperrors.ErrOTPNotFound, http.StatusBadRequest, dto.ErrorCodeInvalidOTP},
	{apperrors.ErrOTPAttemptsExceeded, http.StatusTooManyRequests, dto.ErrorCodeTooManyRequests},
	{apperrors.ErrTooManyRequests, http.StatusTooManyRequests, dto.ErrorCodeTooManyRequests},
	{apperrors.ErrInvalidPasswordResetToken, http.StatusBadRequest, dto.ErrorCodeInvalidToken},
	{apperrors.ErrPasswordResetTokenUsed, http.StatusBadRequest, dto.ErrorCodeInvalidToken},

	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
	{apperrors.ErrInvalidFormat, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
	{apperrors.ErrUnauthenticated, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},

	{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},

	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrProfileNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrPlacementRecordNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrDepartmentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrExamNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrDriveNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrChartDataNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},

	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrStudentIDExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrProfileCompleted, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrPlacementRecordExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrInvalidTransition, http.StatusConflict, dto.ErrorCodeConflict},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict},
}

// StatusFor returns the HTTP status and error code for err
func StatusFor(err error) (int, dto.ErrorCode) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, dto.ErrorCodeInternalServer
}

// HandleAPIError handles common API errors and returns appropriate responses. Known
// errors keep their user facing message; anything else is logged and hidden behind a
// generic 500.
func HandleAPIError(c *gin.Context, err error) {
	status, code := StatusFor(err)

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unhandled error")
		c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, "Internal server error")))
		return
	}

	errorDetail := dto.NewErrorDetail(code, apperrors.Message(err))
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && len(ce.Details) > 0 {
		errorDetail.WithDetails(ce.Details)
		if len(ce.Details) == 1 {
			for field := range ce.Details {
				errorDetail.WithField(field)
			}
		}
	}
	c.JSON(status, dto.NewErrorResponse(errorDetail))
}

// HandleBindError answers a request whose body failed binding or validation
func HandleBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
