package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/middleware"
)

// ResourceUseCase is what ResourceController needs from the resource service
type ResourceUseCase interface {
	List(ctx context.Context) ([]models.Resource, error)
	Create(ctx context.Context, req *dto.CreateResourceRequest, userID int64) (*models.Resource, error)
}

// ResourceController handles shared study resources
type ResourceController struct {
	resourceService ResourceUseCase
	logger          zerolog.Logger
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService ResourceUseCase, logger zerolog.Logger) *ResourceController {
	return &ResourceController{resourceService: resourceService, logger: logger}
}

// List godoc
// @Summary List resources
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Resource}
// @Router /resources [get]
func (c *ResourceController) List(ctx *gin.Context) {
	resources, err := c.resourceService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resources, ""))
}

// Create godoc
// @Summary Share a resource
// @Description Only Google Drive and Google Docs links are accepted
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateResourceRequest true "Resource"
// @Success 201 {object} dto.APIResponse{data=models.Resource}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Faculty only"
// @Router /resources [post]
func (c *ResourceController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req dto.CreateResourceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resource, err := c.resourceService.Create(ctx.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resource, "Resource added"))
}
