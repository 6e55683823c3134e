package dto

import "github.com/yigit/placementhub/internal/app/models"

// RequestOTPRequest starts a signup by mailing a verification code
type RequestOTPRequest struct {
	Email string `json:"email" binding:"required,email" example:"student@college.edu"`
}

// SignupUserData carries the account fields submitted with the verification code
type SignupUserData struct {
	Name     string `json:"name" binding:"required,min=2,max=100" example:"Asha Patel"`
	Password string `json:"password" binding:"required,password" example:"secret123"`
	Role     string `json:"role" binding:"required,portalrole" example:"student" enums:"student,faculty,company"`
}

// VerifyOTPRequest completes account creation
type VerifyOTPRequest struct {
	Email    string         `json:"email" binding:"required,email" example:"student@college.edu"`
	OTP      string         `json:"otp" binding:"required,numeric" example:"482913"`
	UserData SignupUserData `json:"userData" binding:"required"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@college.edu"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ResetEmailRequest asks for a password reset link
type ResetEmailRequest struct {
	Email string `json:"email" binding:"required,email" example:"student@college.edu"`
}

// ResetPasswordRequest sets a new password with a reset token
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required,uuid"`
	NewPassword string `json:"newPassword" binding:"required,password" example:"newsecret1"`
}

// SessionResponse is the identity the portal keeps for the signed-in user
type SessionResponse struct {
	ID               int64       `json:"id" example:"12"`
	Email            string      `json:"email" example:"student@college.edu"`
	Role             models.Role `json:"role" example:"student"`
	Name             string      `json:"name" example:"Asha Patel"`
	ProfileCompleted bool        `json:"profileCompleted" example:"true"`
}

// NewSessionResponse builds the session view of a user
func NewSessionResponse(u *models.User) SessionResponse {
	return SessionResponse{
		ID:               u.ID,
		Email:            u.Email,
		Role:             u.Role,
		Name:             u.Name,
		ProfileCompleted: u.ProfileCompleted,
	}
}

// LoginResponse represents successful authentication response
type LoginResponse struct {
	Role                  models.Role     `json:"role" example:"student"`
	ProfileCompleted      bool            `json:"profileCompleted"`
	User                  SessionResponse `json:"user"`
	AccessToken           string          `json:"accessToken"`
	TokenType             string          `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64           `json:"expiresIn"`
	RefreshToken          string          `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64           `json:"refreshTokenExpiresIn,omitempty"`
}

// CheckAuthResponse answers the who-am-I call
type CheckAuthResponse struct {
	User SessionResponse `json:"user"`
}
