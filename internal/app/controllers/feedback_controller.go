package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/middleware"
	"github.com/yigit/placementhub/internal/pkg/helpers"
)

// FeedbackUseCase is what FeedbackController needs from the feedback service
type FeedbackUseCase interface {
	Create(ctx context.Context, userID int64, req *dto.CreateFeedbackRequest) (*models.Feedback, error)
	List(ctx context.Context, page helpers.PageRequest) (*dto.PagedResponse, error)
}

// FeedbackController handles messages to the placement cell
type FeedbackController struct {
	feedbackService FeedbackUseCase
	logger          zerolog.Logger
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService FeedbackUseCase, logger zerolog.Logger) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService, logger: logger}
}

// Create godoc
// @Summary Send feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFeedbackRequest true "Feedback"
// @Success 201 {object} dto.APIResponse{data=models.Feedback}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Students only"
// @Router /feedback [post]
func (c *FeedbackController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req dto.CreateFeedbackRequest
	if !bindJSON(ctx, &req) {
		return
	}

	feedback, err := c.feedbackService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(feedback, "Thank you for your feedback"))
}

// List godoc
// @Summary List feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse}
// @Failure 403 {object} dto.ErrorResponse "Faculty only"
// @Router /feedback [get]
func (c *FeedbackController) List(ctx *gin.Context) {
	page, err := c.feedbackService.List(ctx.Request.Context(), helpers.ParsePaginationParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(page, ""))
}
