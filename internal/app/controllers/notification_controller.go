package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/middleware"
)

// NotificationFeed returns what was recently broadcast to a role
type NotificationFeed interface {
	Recent(role models.Role) []models.Notification
}

// NotificationController lets clients catch up on notifications missed while offline
type NotificationController struct {
	feed NotificationFeed
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(feed NotificationFeed) *NotificationController {
	return &NotificationController{feed: feed}
}

// Recent godoc
// @Summary Recent notifications
// @Description Notifications recently broadcast to the caller's role, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Notification}
// @Failure 401 {object} dto.ErrorResponse "Not signed in"
// @Router /notifications/recent [get]
func (c *NotificationController) Recent(ctx *gin.Context) {
	role, ok := middleware.Role(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.feed.Recent(role), ""))
}
