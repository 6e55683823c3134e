package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appAuth "github.com/yigit/placementhub/internal/app/auth"
	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID           = "userID"
	ContextEmail            = "email"
	ContextRole             = "role"
	ContextName             = "name"
	ContextProfileCompleted = "profileCompleted"
)

// DefaultCookieName is the session cookie the portal sends with every request
const DefaultCookieName = "token"

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	authz      *appAuth.AuthorizationService
	cookieName string
}

// NewAuthMiddleware creates a new AuthMiddleware. authz may be nil, in which case
// ActiveAccountRequired only relies on the token.
func NewAuthMiddleware(jwtService *auth.JWTService, authz *appAuth.AuthorizationService, cookieName string) *AuthMiddleware {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &AuthMiddleware{
		jwtService: jwtService,
		authz:      authz,
		cookieName: cookieName,
	}
}

// CookieName is the name of the session cookie
func (m *AuthMiddleware) CookieName() string {
	return m.cookieName
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// tokenFromRequest looks at the session cookie first, then the Authorization header,
// then the token query parameter used by websocket clients.
func (m *AuthMiddleware) tokenFromRequest(c *gin.Context) (string, error) {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
		return cookie, nil
	}
	if header := c.GetHeader("Authorization"); header != "" {
		return auth.ExtractBearerToken(strings.Trim(header, "\"'"))
	}
	if q := c.Query("token"); q != "" {
		return q, nil
	}
	return "", nil
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := m.tokenFromRequest(c)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token format")
			return
		}
		if tokenString == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Session cookie or Authorization header missing")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, models.Role(claims.Role))
		c.Set(ContextName, claims.Name)
		c.Set(ContextProfileCompleted, claims.ProfileCompleted)

		c.Next()
	}
}

// RoleRequired lets the request through when the user holds any of roles
func (m *AuthMiddleware) RoleRequired(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := Role(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User role not found")
			return
		}

		if _, ok := allowed[role]; !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// ActiveAccountRequired re-reads the user so that disabled accounts and role changes take
// effect before the token expires. Used on state changing routes.
func (m *AuthMiddleware) ActiveAccountRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.authz == nil {
			c.Next()
			return
		}

		userID, _ := UserID(c)
		role, _ := Role(c)
		if err := m.authz.ValidateRole(c.Request.Context(), userID, role); err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserID returns the authenticated user's id
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// Role returns the authenticated user's role
func Role(c *gin.Context) (models.Role, bool) {
	v, ok := c.Get(ContextRole)
	if !ok {
		return "", false
	}
	role, ok := v.(models.Role)
	return role, ok
}

// ProfileRequired blocks users that have not completed their profile yet. A stale
// token saying otherwise is double checked against the stored account.
func (m *AuthMiddleware) ProfileRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool(ContextProfileCompleted) {
			c.Next()
			return
		}

		if m.authz != nil {
			userID, _ := UserID(c)
			if err := m.authz.ValidateProfileCompleted(c.Request.Context(), userID); err == nil {
				c.Next()
				return
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Complete your profile first").
			WithDetails("Profile completion is required for this operation")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}
