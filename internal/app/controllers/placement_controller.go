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

// PlacementUseCase is what PlacementController needs from the placement service
type PlacementUseCase interface {
	List(ctx context.Context) ([]models.PlacementRecord, error)
	Get(ctx context.Context, year string) (*models.PlacementRecord, error)
	Create(ctx context.Context, year string, req *dto.PlacementRecordRequest, userID int64) (*models.PlacementRecord, error)
	Replace(ctx context.Context, year string, req *dto.PlacementRecordRequest, userID int64) (*models.PlacementRecord, error)
	UpdateDepartment(ctx context.Context, year, dept string, req *dto.UpdateDepartmentRequest, userID int64) (*models.PlacementRecord, error)
	Delete(ctx context.Context, year string) error
}

// PlacementController serves the yearly placement statistics
type PlacementController struct {
	placementService PlacementUseCase
	logger           zerolog.Logger
}

// NewPlacementController creates a new PlacementController
func NewPlacementController(placementService PlacementUseCase, logger zerolog.Logger) *PlacementController {
	return &PlacementController{placementService: placementService, logger: logger}
}

// List godoc
// @Summary List placement records
// @Description All academic years, newest first
// @Tags placement
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.PlacementRecord}
// @Failure 401 {object} dto.ErrorResponse "Not signed in"
// @Router /placement-data [get]
func (c *PlacementController) List(ctx *gin.Context) {
	records, err := c.placementService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(records, ""))
}

// Get godoc
// @Summary Get one year's placement record
// @Tags placement
// @Produce json
// @Security BearerAuth
// @Param year path string true "Academic year" example(2024-2025)
// @Success 200 {object} dto.APIResponse{data=models.PlacementRecord}
// @Failure 404 {object} dto.ErrorResponse "No record for the year"
// @Router /placement-data/{year} [get]
func (c *PlacementController) Get(ctx *gin.Context) {
	record, err := c.placementService.Get(ctx.Request.Context(), ctx.Param("year"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record, ""))
}

// Create godoc
// @Summary Create a year's placement record
// @Description Percentages and totals are computed by the server from the submitted counts
// @Tags placement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param year path string true "Academic year" example(2024-2025)
// @Param request body dto.PlacementRecordRequest true "Companies and department counts"
// @Success 201 {object} dto.APIResponse{data=models.PlacementRecord}
// @Failure 400 {object} dto.ErrorResponse "Validation error, details keyed by field"
// @Failure 403 {object} dto.ErrorResponse "Faculty only"
// @Failure 409 {object} dto.ErrorResponse "Year already exists"
// @Router /placement-data/{year} [post]
func (c *PlacementController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req dto.PlacementRecordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	record, err := c.placementService.Create(ctx.Request.Context(), ctx.Param("year"), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(record, "Placement data saved"))
}

// Replace godoc
// @Summary Replace a year's placement record
// @Tags placement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param year path string true "Academic year" example(2024-2025)
// @Param request body dto.PlacementRecordRequest true "Companies and department counts"
// @Success 200 {object} dto.APIResponse{data=models.PlacementRecord}
// @Failure 400 {object} dto.ErrorResponse "Validation error, details keyed by field"
// @Failure 404 {object} dto.ErrorResponse "No record for the year"
// @Router /placement-data/{year} [put]
func (c *PlacementController) Replace(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req dto.PlacementRecordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	record, err := c.placementService.Replace(ctx.Request.Context(), ctx.Param("year"), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record, "Placement data updated"))
}

// UpdateDepartment godoc
// @Summary Update one department of a year
// @Tags placement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param year path string true "Academic year" example(2024-2025)
// @Param dept path string true "Department code" example(CSE)
// @Param request body dto.UpdateDepartmentRequest true "Department counts"
// @Success 200 {object} dto.APIResponse{data=models.PlacementRecord}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Unknown year or department"
// @Router /placement-data/{year}/departments/{dept} [put]
func (c *PlacementController) UpdateDepartment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req dto.UpdateDepartmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	record, err := c.placementService.UpdateDepartment(ctx.Request.Context(), ctx.Param("year"), ctx.Param("dept"), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record, "Department updated"))
}

// Delete godoc
// @Summary Delete a year's placement record
// @Tags placement
// @Produce json
// @Security BearerAuth
// @Param year path string true "Academic year" example(2024-2025)
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 404 {object} dto.ErrorResponse "No record for the year"
// @Router /placement-data/{year} [delete]
func (c *PlacementController) Delete(ctx *gin.Context) {
	year := ctx.Param("year")
	if err := c.placementService.Delete(ctx.Request.Context(), year); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Str("year", year).Msg("Placement record deleted")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Placement data deleted"}, ""))
}
