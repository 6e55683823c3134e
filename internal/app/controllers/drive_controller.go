package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/services"
	"github.com/yigit/placementhub/internal/middleware"
)

// DriveUseCase is what DriveController needs from the drive service
type DriveUseCase interface {
	List(ctx context.Context, status models.DriveStatus) ([]models.PlacementDrive, error)
	Create(ctx context.Context, req *dto.CreateDriveRequest, userID int64) (*models.PlacementDrive, error)
	Complete(ctx context.Context, id int64, noPlacedStudents int) (*models.PlacementDrive, error)
}

// DriveController handles placement drives
type DriveController struct {
	driveService DriveUseCase
	logger       zerolog.Logger
}

// NewDriveController creates a new DriveController
func NewDriveController(driveService DriveUseCase, logger zerolog.Logger) *DriveController {
	return &DriveController{driveService: driveService, logger: logger}
}

// List godoc
// @Summary List placement drives
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param status query string false "upcoming or completed"
// @Success 200 {object} dto.APIResponse{data=[]models.PlacementDrive}
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Router /drives [get]
func (c *DriveController) List(ctx *gin.Context) {
	status, err := services.ParseDriveStatus(ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	drives, err := c.driveService.List(ctx.Request.Context(), status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(drives, ""))
}

// Create godoc
// @Summary Announce a placement drive
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDriveRequest true "Drive"
// @Success 201 {object} dto.APIResponse{data=models.PlacementDrive}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Faculty only"
// @Router /drives [post]
func (c *DriveController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req dto.CreateDriveRequest
	if !bindJSON(ctx, &req) {
		return
	}

	drive, err := c.driveService.Create(ctx.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(drive, "Drive created"))
}

// Complete godoc
// @Summary Complete a placement drive
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Drive ID"
// @Param request body dto.CompleteDriveRequest true "Result"
// @Success 200 {object} dto.APIResponse{data=models.PlacementDrive}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 409 {object} dto.ErrorResponse "Drive already completed"
// @Router /drives/{id}/complete [put]
func (c *DriveController) Complete(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req dto.CompleteDriveRequest
	if !bindJSON(ctx, &req) {
		return
	}

	drive, err := c.driveService.Complete(ctx.Request.Context(), id, *req.NoPlacedStudents)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(drive, "Drive completed"))
}
