package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/auth"
)

type authFixture struct {
	svc    *AuthService
	users  *fakeUsers
	tokens *fakeTokens
	otps   *fakeOTPs
	resets *fakeResets
	mailer *fakeMailer
	jwt    *auth.JWTService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:  newFakeUsers(),
		tokens: newFakeTokens(),
		otps:   newFakeOTPs(),
		resets: newFakeResets(),
		mailer: newFakeMailer(),
		jwt: auth.NewJWTService(auth.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenExp:  time.Hour,
			RefreshTokenExp: 24 * time.Hour,
			TokenIssuer:     "placementhub-test",
		}),
	}
	f.svc = NewAuthService(f.users, f.tokens, f.otps, f.resets, f.jwt, f.mailer, AuthSettings{
		OTPLength:      6,
		OTPTTL:         10 * time.Minute,
		OTPMaxAttempts: 3,
		PublicURL:      "http://localhost:5173/",
	}, zerolog.Nop())
	return f
}

func (f *authFixture) signup(t *testing.T, email string, role models.Role) *dto.LoginResponse {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.svc.RequestOTP(ctx, email))
	resp, err := f.svc.VerifyOTP(ctx, &dto.VerifyOTPRequest{
		Email: email,
		OTP:   f.mailer.otps[strings.ToLower(email)],
		UserData: dto.SignupUserData{
			Name:     "Asha Patel",
			Password: "secret123",
			Role:     string(role),
		},
	})
	require.NoError(t, err)
	return resp
}

func TestSignupFlow(t *testing.T) {
	f := newAuthFixture()

	resp := f.signup(t, " Asha@College.test ", models.RoleStudent)

	assert.Equal(t, models.RoleStudent, resp.Role)
	assert.False(t, resp.ProfileCompleted)
	assert.Equal(t, "asha@college.test", resp.User.Email)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := f.jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "student", claims.Role)
	assert.False(t, claims.ProfileCompleted)

	_, err = f.otps.Get(context.Background(), "asha@college.test")
	assert.ErrorIs(t, err, apperrors.ErrOTPNotFound, "used challenge is removed")
}

func TestRequestOTP_RegisteredEmail(t *testing.T) {
	f := newAuthFixture()
	f.signup(t, "a@b.test", models.RoleFaculty)

	err := f.svc.RequestOTP(context.Background(), "A@B.test")
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestVerifyOTP_WrongCodeThenLockout(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	require.NoError(t, f.svc.RequestOTP(ctx, "a@b.test"))

	wrong := "000000"
	if f.mailer.otps["a@b.test"] == wrong {
		wrong = "111111"
	}
	req := &dto.VerifyOTPRequest{
		Email:    "a@b.test",
		OTP:      wrong,
		UserData: dto.SignupUserData{Name: "A", Password: "secret123", Role: "student"},
	}

	for i := 0; i < 3; i++ {
		_, err := f.svc.VerifyOTP(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrOTPInvalid)
	}

	req.OTP = f.mailer.otps["a@b.test"]
	_, err := f.svc.VerifyOTP(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrOTPAttemptsExceeded)
}

func TestVerifyOTP_Expired(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	require.NoError(t, f.svc.RequestOTP(ctx, "a@b.test"))

	f.svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err := f.svc.VerifyOTP(ctx, &dto.VerifyOTPRequest{
		Email:    "a@b.test",
		OTP:      f.mailer.otps["a@b.test"],
		UserData: dto.SignupUserData{Name: "A", Password: "secret123", Role: "student"},
	})
	assert.ErrorIs(t, err, apperrors.ErrOTPExpired)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	f.signup(t, "a@b.test", models.RoleCompany)
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "A@b.test", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCompany, resp.Role)

	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "a@b.test", Password: "wrong1234"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "nobody@b.test", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	f := newAuthFixture()
	resp := f.signup(t, "a@b.test", models.RoleStudent)
	f.users.byID[resp.User.ID].IsActive = false

	_, err := f.svc.Login(context.Background(), &dto.LoginRequest{Email: "a@b.test", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshToken_Rotates(t *testing.T) {
	f := newAuthFixture()
	first := f.signup(t, "a@b.test", models.RoleStudent)
	ctx := context.Background()

	second, err := f.svc.RefreshToken(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = f.svc.RefreshToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	_, err = f.svc.RefreshToken(ctx, " ")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestReissueReflectsProfileCompletion(t *testing.T) {
	f := newAuthFixture()
	resp := f.signup(t, "a@b.test", models.RoleStudent)
	f.users.byID[resp.User.ID].ProfileCompleted = true

	fresh, err := f.svc.Reissue(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.True(t, fresh.ProfileCompleted)

	claims, err := f.jwt.ValidateToken(fresh.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.ProfileCompleted)
}

func TestCheckAuth(t *testing.T) {
	f := newAuthFixture()
	resp := f.signup(t, "a@b.test", models.RoleFaculty)
	ctx := context.Background()

	session, err := f.svc.CheckAuth(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleFaculty, session.Role)

	_, err = f.svc.CheckAuth(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestPasswordReset(t *testing.T) {
	f := newAuthFixture()
	resp := f.signup(t, "a@b.test", models.RoleStudent)
	ctx := context.Background()

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "a@b.test"))
	link := f.mailer.resets["a@b.test"]
	require.True(t, strings.HasPrefix(link, "http://localhost:5173/reset-password/"), link)
	token := strings.TrimPrefix(link, "http://localhost:5173/reset-password/")

	require.NoError(t, f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, NewPassword: "newpass99"}))

	_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "a@b.test", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "a@b.test", Password: "newpass99"})
	assert.NoError(t, err)

	_, err = f.svc.RefreshToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked, "reset revokes existing sessions")

	err = f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, NewPassword: "another99"})
	assert.ErrorIs(t, err, apperrors.ErrPasswordResetTokenUsed)
}

func TestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture()

	assert.NoError(t, f.svc.RequestPasswordReset(context.Background(), "ghost@b.test"))
	assert.Empty(t, f.mailer.resets)
}

func TestPasswordReset_Expired(t *testing.T) {
	f := newAuthFixture()
	f.signup(t, "a@b.test", models.RoleStudent)
	ctx := context.Background()

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "a@b.test"))
	token := strings.TrimPrefix(f.mailer.resets["a@b.test"], "http://localhost:5173/reset-password/")

	f.svc.now = func() time.Time { return time.Now().Add(2 * ResetTokenTTL) }
	err := f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, NewPassword: "newpass99"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPasswordResetToken)
}
