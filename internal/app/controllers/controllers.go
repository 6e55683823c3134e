// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/middleware"
)

// CookieSettings controls the HttpOnly session cookie
type CookieSettings struct {
	Name     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// ParseSameSite maps a config value to http.SameSite, defaulting to Lax
func ParseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (s CookieSettings) set(ctx *gin.Context, token string, ttl time.Duration) {
	ctx.SetSameSite(s.SameSite)
	ctx.SetCookie(s.Name, token, int(ttl.Seconds()), "/", s.Domain, s.Secure, true)
}

func (s CookieSettings) clear(ctx *gin.Context) {
	ctx.SetSameSite(s.SameSite)
	ctx.SetCookie(s.Name, "", -1, "/", s.Domain, s.Secure, true)
}

// currentUserID reads the authenticated user, answering 401 when the middleware did not run
func currentUserID(ctx *gin.Context) (int64, bool) {
	id, ok := middleware.UserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// paramID parses a numeric path parameter, answering 400 when it is not one
func paramID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid "+name).WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		middleware.HandleBindError(ctx, err)
		return false
	}
	return true
}
