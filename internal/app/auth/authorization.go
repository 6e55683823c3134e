package auth

import (
	"context"
	"errors"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/repositories"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/logger"
)

// AuthorizationService checks a token's identity against the stored account
type AuthorizationService struct {
	userRepo repositories.IUserRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo repositories.IUserRepository) *AuthorizationService {
	return &AuthorizationService{userRepo: userRepo}
}

// ActiveUser loads the user and fails when the account is gone or disabled
func (s *AuthorizationService) ActiveUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user by ID in ActiveUser")
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewCustomError(apperrors.ErrAccountDisabled, "This account has been disabled")
	}
	return user, nil
}

// ValidateRole fails unless the stored account is active and holds one of roles
func (s *AuthorizationService) ValidateRole(ctx context.Context, userID int64, roles ...models.Role) error {
	user, err := s.ActiveUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, r := range roles {
		if user.Role == r {
			return nil
		}
	}
	return apperrors.NewForbiddenError("You don't have permission for this action")
}

// ValidateProfileCompleted fails until the user has completed their profile
func (s *AuthorizationService) ValidateProfileCompleted(ctx context.Context, userID int64) error {
	user, err := s.ActiveUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.ProfileCompleted {
		return apperrors.NewForbiddenError("Complete your profile first")
	}
	return nil
}
