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

// ChartUseCase is what ChartController needs from the chart service
type ChartUseCase interface {
	List(ctx context.Context) ([]models.ChartData, error)
	Get(ctx context.Context, id int64) (*models.ChartData, error)
	Create(ctx context.Context, req *dto.ChartDataRequest) (*models.ChartData, error)
	Update(ctx context.Context, id int64, req *dto.ChartDataRequest) (*models.ChartData, error)
	Delete(ctx context.Context, id int64) error
}

// ChartController serves the year-over-year chart points
type ChartController struct {
	chartService ChartUseCase
	logger       zerolog.Logger
}

// NewChartController creates a new ChartController
func NewChartController(chartService ChartUseCase, logger zerolog.Logger) *ChartController {
	return &ChartController{chartService: chartService, logger: logger}
}

// List godoc
// @Summary List chart data
// @Tags chart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ChartData}
// @Router /chart-data [get]
func (c *ChartController) List(ctx *gin.Context) {
	points, err := c.chartService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(points, ""))
}

// Get godoc
// @Summary Get a chart data point
// @Tags chart
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chart data ID"
// @Success 200 {object} dto.APIResponse{data=models.ChartData}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /chart-data/{id} [get]
func (c *ChartController) Get(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	point, err := c.chartService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(point, ""))
}

// Create godoc
// @Summary Create a chart data point
// @Tags chart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChartDataRequest true "Chart data"
// @Success 201 {object} dto.APIResponse{data=models.ChartData}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Year already charted"
// @Router /chart-data [post]
func (c *ChartController) Create(ctx *gin.Context) {
	var req dto.ChartDataRequest
	if !bindJSON(ctx, &req) {
		return
	}
	point, err := c.chartService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(point, "Chart data created"))
}

// Update godoc
// @Summary Replace a chart data point
// @Tags chart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chart data ID"
// @Param request body dto.ChartDataRequest true "Chart data"
// @Success 200 {object} dto.APIResponse{data=models.ChartData}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /chart-data/{id} [put]
func (c *ChartController) Update(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ChartDataRequest
	if !bindJSON(ctx, &req) {
		return
	}
	point, err := c.chartService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(point, "Chart data updated"))
}

// Delete godoc
// @Summary Delete a chart data point
// @Tags chart
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chart data ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /chart-data/{id} [delete]
func (c *ChartController) Delete(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	if err := c.chartService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Chart data deleted"}, ""))
}
