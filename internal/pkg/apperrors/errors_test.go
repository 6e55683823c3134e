package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("service: %w", NewConflictError("year 2024-2025 already recorded"))

	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "year 2024-2025 already recorded", Message(err))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("invalid placement record", map[string]string{"year": "Academic year is required"})

	var ce *CustomError
	require.True(t, errors.As(err, &ce))
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, "Academic year is required", ce.Details["year"])
}

func TestMessageFallsBackToError(t *testing.T) {
	assert.Equal(t, "exam not found", Message(ErrExamNotFound))
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrOTPExpired)

	assert.True(t, Is(err, ErrOTPInvalid, ErrOTPNotFound, ErrOTPExpired))
	assert.False(t, Is(err, ErrOTPInvalid))
}
