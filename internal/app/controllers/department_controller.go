package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/middleware"
)

// DepartmentUseCase is what DepartmentController needs from the department service
type DepartmentUseCase interface {
	List(ctx context.Context) ([]models.Department, error)
}

// DepartmentController handles department-related operations
type DepartmentController struct {
	departmentService DepartmentUseCase
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(departmentService DepartmentUseCase) *DepartmentController {
	return &DepartmentController{
		departmentService: departmentService,
	}
}

// GetAllDepartments retrieves all departments
// @Summary Get all departments
// @Description Retrieves the department codes with their display names
// @Tags departments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Department} "Departments retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [get]
func (c *DepartmentController) GetAllDepartments(ctx *gin.Context) {
	departments, err := c.departmentService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      departments,
		Timestamp: time.Now(),
	})
}
