package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/middleware"
)

// AuthUseCase is what AuthController needs from the auth service
type AuthUseCase interface {
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Reissue(ctx context.Context, userID int64) (*dto.LoginResponse, error)
	CheckAuth(ctx context.Context, userID int64) (*dto.SessionResponse, error)
	Logout(ctx context.Context, userID int64) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	ResetEmailMessage() string
	AccessTokenTTL() time.Duration
}

// AuthController handles authentication related operations
type AuthController struct {
	authService AuthUseCase
	cookie      CookieSettings
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService AuthUseCase, cookie CookieSettings, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

func (c *AuthController) startSession(ctx *gin.Context, session *dto.LoginResponse) {
	c.cookie.set(ctx, session.AccessToken, c.authService.AccessTokenTTL())
}

// RequestOTP handles the first signup step
// @Summary Request a signup verification code
// @Description Mails a numeric one-time code to an email that is not registered yet
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RequestOTPRequest true "Email to verify"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Code sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/request-otp [post]
func (c *AuthController) RequestOTP(ctx *gin.Context) {
	var req dto.RequestOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid OTP request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.RequestOTP(ctx.Request.Context(), req.Email); err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("OTP request failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Verification code sent"}, ""))
}

// VerifyOTP completes signup
// @Summary Verify code and create the account
// @Description Checks the emailed code and creates the user. The session cookie is set on success.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Code and account data"
// @Success 201 {object} dto.APIResponse{data=dto.LoginResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired code"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 429 {object} dto.ErrorResponse "Too many attempts"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/verify-otp [post]
func (c *AuthController) VerifyOTP(ctx *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid OTP verification payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.authService.VerifyOTP(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("OTP verification failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.startSession(ctx, session)
	c.logger.Info().
		Str("email", req.Email).
		Str("role", string(session.Role)).
		Msg("User signed up")

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(session, "Account created"))
}

// Login handles user login
// @Summary User login
// @Description Authenticates a user, sets the session cookie and returns the tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.startSession(ctx, session)
	c.logger.Info().
		Str("email", req.Email).
		Msg("User logged in successfully")

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(session, ""))
}

// RefreshToken handles refresh token request
// @Summary Refresh access token
// @Description Rotates a refresh token: the old one is revoked and a new pair issued
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Token refreshed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Invalid refresh token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/refresh-token [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid refresh token request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Refresh token failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.startSession(ctx, session)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(session, ""))
}

// CheckAuth returns the current session
// @Summary Who am I
// @Description Returns the signed-in user, read fresh from the database
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CheckAuthResponse} "Current session"
// @Failure 401 {object} dto.ErrorResponse "Not signed in"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Router /auth/check-auth [get]
func (c *AuthController) CheckAuth(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	session, err := c.authService.CheckAuth(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CheckAuthResponse{User: *session}, ""))
}

// Logout handles user logout
// @Summary User logout
// @Description Revokes every refresh token of the user and clears the session cookie
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Logged out successfully"
// @Failure 401 {object} dto.ErrorResponse "Not signed in"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), userID); err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("Logout failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.cookie.clear(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Logged out successfully"}, ""))
}

// ResetEmail starts a password reset
// @Summary Request a password reset link
// @Description Mails a single-use reset link. The answer is the same whether or not the email is registered.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetEmailRequest true "Account email"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Acknowledged"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/reset-email [post]
func (c *AuthController) ResetEmail(ctx *gin.Context) {
	var req dto.ResetEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.RequestPasswordReset(ctx.Request.Context(), req.Email); err != nil {
		c.logger.Error().Err(err).Msg("Password reset request failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := c.authService.ResetEmailMessage()
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: message}, message))
}

// ResetPassword sets a new password
// @Summary Reset password
// @Description Consumes a reset token and sets the new password. Every session of the user is revoked.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Password updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid, used or expired token"
// @Failure 404 {object} dto.ErrorResponse "Token not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.ResetPassword(ctx.Request.Context(), &req); err != nil {
		c.logger.Warn().Err(err).Msg("Password reset failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.cookie.clear(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Password updated, please log in again"}, ""))
}
