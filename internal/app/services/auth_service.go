package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/repositories"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/auth"
	"github.com/yigit/placementhub/internal/pkg/email"
)

// ResetTokenTTL is how long a password reset link stays valid
const ResetTokenTTL = time.Hour

// resetEmailMessage is returned whether or not the email is registered
const resetEmailMessage = "If the email is registered, a password reset link has been sent"

// AuthSettings holds the tunables of the signup and reset flows
type AuthSettings struct {
	OTPLength      int
	OTPTTL         time.Duration
	OTPMaxAttempts int
	PublicURL      string
}

// AuthService handles signup, login, token and password reset operations
type AuthService struct {
	userRepo   repositories.IUserRepository
	tokenRepo  repositories.ITokenRepository
	otpRepo    repositories.IOTPRepository
	resetRepo  repositories.IPasswordResetTokenRepository
	jwtService *auth.JWTService
	mailer     email.Sender
	settings   AuthSettings
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	otpRepo repositories.IOTPRepository,
	resetRepo repositories.IPasswordResetTokenRepository,
	jwtService *auth.JWTService,
	mailer email.Sender,
	settings AuthSettings,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		otpRepo:    otpRepo,
		resetRepo:  resetRepo,
		jwtService: jwtService,
		mailer:     mailer,
		settings:   settings,
		logger:     logger,
		now:        time.Now,
	}
}

// ResetEmailMessage is the acknowledgement of a reset request
func (s *AuthService) ResetEmailMessage() string {
	return resetEmailMessage
}

// RequestOTP mails a fresh verification code to an unregistered email
func (s *AuthService) RequestOTP(ctx context.Context, emailAddr string) error {
	emailAddr = repositories.NormalizeEmail(emailAddr)

	exists, err := s.userRepo.EmailExists(ctx, emailAddr)
	if err != nil {
		return fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "An account with this email already exists")
	}

	code, err := auth.GenerateOTP(s.settings.OTPLength)
	if err != nil {
		return err
	}
	hash, err := auth.HashOTP(code)
	if err != nil {
		return fmt.Errorf("error hashing otp: %w", err)
	}

	challenge := &models.OTPChallenge{
		Email:     emailAddr,
		CodeHash:  hash,
		ExpiresAt: s.now().Add(s.settings.OTPTTL),
	}
	if err := s.otpRepo.Upsert(ctx, challenge); err != nil {
		return fmt.Errorf("error storing otp: %w", err)
	}

	if err := s.mailer.SendOTP(emailAddr, code, s.settings.OTPTTL); err != nil {
		return apperrors.NewCustomError(err, "Failed to send verification email")
	}

	s.logger.Info().Str("email", emailAddr).Msg("Signup verification code issued")
	return nil
}

// VerifyOTP checks the code and creates the account with an incomplete profile
func (s *AuthService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.LoginResponse, error) {
	emailAddr := repositories.NormalizeEmail(req.Email)
	role := models.Role(req.UserData.Role)
	if !role.Valid() {
		return nil, apperrors.NewBadRequestError("Invalid role")
	}

	challenge, err := s.otpRepo.Get(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	if challenge.Attempts >= s.settings.OTPMaxAttempts {
		return nil, apperrors.NewCustomError(apperrors.ErrOTPAttemptsExceeded, "Too many invalid attempts, request a new code")
	}
	if s.now().After(challenge.ExpiresAt) {
		return nil, apperrors.NewCustomError(apperrors.ErrOTPExpired, "Verification code has expired, request a new one")
	}
	if !auth.CheckOTP(challenge.CodeHash, strings.TrimSpace(req.OTP)) {
		if _, err := s.otpRepo.IncrementAttempts(ctx, emailAddr); err != nil {
			s.logger.Warn().Err(err).Str("email", emailAddr).Msg("Failed to record otp attempt")
		}
		return nil, apperrors.NewCustomError(apperrors.ErrOTPInvalid, "Invalid verification code")
	}

	hash, err := auth.HashPassword(req.UserData.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:            emailAddr,
		PasswordHash:     hash,
		Name:             strings.TrimSpace(req.UserData.Name),
		Role:             role,
		ProfileCompleted: false,
		IsActive:         true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewCustomError(err, "An account with this email already exists")
		}
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	if err := s.otpRepo.Delete(ctx, emailAddr); err != nil {
		s.logger.Warn().Err(err).Str("email", emailAddr).Msg("Failed to delete used otp")
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(role)).Msg("User registered")
	return s.issueSession(ctx, user)
}

// Login authenticates a user
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password")
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password")
	}
	if !user.IsActive {
		return nil, apperrors.NewCustomError(apperrors.ErrAccountDisabled, "This account has been disabled")
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login time")
	}

	return s.issueSession(ctx, user)
}

// RefreshToken rotates a refresh token: the old one is revoked and a new pair issued
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.issueSession(ctx, user)
}

// Reissue creates a fresh session for a user whose claims changed, e.g. after profile completion
func (s *AuthService) Reissue(ctx context.Context, userID int64) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issueSession(ctx, user)
}

// CheckAuth returns the current session of a user, read fresh from the database
func (s *AuthService) CheckAuth(ctx context.Context, userID int64) (*dto.SessionResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	session := dto.NewSessionResponse(user)
	return &session, nil
}

// Logout revokes every refresh token of the user
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	s.logger.Info().Int64("userID", userID).Msg("User logged out")
	return nil
}

// RequestPasswordReset mails a single-use reset link. Unknown emails are ignored silently
// so the endpoint cannot be used to probe for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Info().Str("email", emailAddr).Msg("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("error loading user: %w", err)
	}

	token := uuid.New().String()
	if err := s.resetRepo.CreateToken(ctx, user.ID, token, s.now().Add(ResetTokenTTL)); err != nil {
		return err
	}

	link := strings.TrimRight(s.settings.PublicURL, "/") + "/reset-password/" + token
	if err := s.mailer.SendPasswordReset(user.Email, link); err != nil {
		return apperrors.NewCustomError(err, "Failed to send password reset email")
	}
	return nil
}

// ResetPassword consumes a reset token and sets the new password. Every session of the
// user is revoked.
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	t, err := s.resetRepo.GetToken(ctx, req.Token)
	if err != nil {
		return err
	}
	if t.UsedAt != nil {
		return apperrors.NewCustomError(apperrors.ErrPasswordResetTokenUsed, "This reset link has already been used")
	}
	if s.now().After(t.ExpiresAt) {
		return apperrors.NewCustomError(apperrors.ErrInvalidPasswordResetToken, "This reset link has expired")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.resetRepo.MarkTokenAsUsed(ctx, t.Token); err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, t.UserID, hash); err != nil {
		return err
	}
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, t.UserID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", t.UserID).Msg("Failed to revoke sessions after password reset")
	}

	s.logger.Info().Int64("userID", t.UserID).Msg("Password reset")
	return nil
}

// AccessTokenTTL is the lifetime of the session cookie
func (s *AuthService) AccessTokenTTL() time.Duration {
	return s.jwtService.AccessTokenTTL()
}

func (s *AuthService) issueSession(ctx context.Context, user *models.User) (*dto.LoginResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.Identity{
		UserID:           user.ID,
		Email:            user.Email,
		Role:             string(user.Role),
		Name:             user.Name,
		ProfileCompleted: user.ProfileCompleted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, pair.RefreshToken, user.ID, pair.RefreshExpiry); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.LoginResponse{
		Role:                  user.Role,
		ProfileCompleted:      user.ProfileCompleted,
		User:                  dto.NewSessionResponse(user),
		AccessToken:           pair.AccessToken,
		TokenType:             "Bearer",
		ExpiresIn:             pair.ExpiresIn,
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresIn: pair.RefreshExpiresIn,
	}, nil
}
