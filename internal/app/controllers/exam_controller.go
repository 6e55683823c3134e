package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/services"
	"github.com/yigit/placementhub/internal/middleware"
)

// ExamUseCase is what ExamController needs from the exam service
type ExamUseCase interface {
	List(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error)
	Create(ctx context.Context, req *dto.CreateExamRequest, userID int64) (*models.Exam, error)
	Update(ctx context.Context, id int64, req *dto.CreateExamRequest) (*models.Exam, error)
	UpdateStatus(ctx context.Context, id int64, status models.ExamStatus) (*models.Exam, error)
}

// ExamController handles the exam board
type ExamController struct {
	examService ExamUseCase
	logger      zerolog.Logger
}

// NewExamController creates a new ExamController
func NewExamController(examService ExamUseCase, logger zerolog.Logger) *ExamController {
	return &ExamController{examService: examService, logger: logger}
}

// List godoc
// @Summary List exams
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param type query string false "Exam type, e.g. Aptitude"
// @Param status query string false "scheduled or completed"
// @Success 200 {object} dto.APIResponse{data=[]models.Exam}
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Router /exams [get]
func (c *ExamController) List(ctx *gin.Context) {
	status, err := services.ParseExamStatus(ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	exams, err := c.examService.List(ctx.Request.Context(), models.ExamFilter{
		ExamType: strings.TrimSpace(ctx.Query("type")),
		Status:   status,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(exams, ""))
}

// Create godoc
// @Summary Schedule an exam
// @Description Connected users are notified of the new exam
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExamRequest true "Exam"
// @Success 201 {object} dto.APIResponse{data=models.Exam}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Faculty only"
// @Router /exams [post]
func (c *ExamController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req dto.CreateExamRequest
	if !bindJSON(ctx, &req) {
		return
	}

	exam, err := c.examService.Create(ctx.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(exam, "Exam scheduled"))
}

// Update godoc
// @Summary Edit a scheduled exam
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param request body dto.CreateExamRequest true "Exam"
// @Success 200 {object} dto.APIResponse{data=models.Exam}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 409 {object} dto.ErrorResponse "Exam already completed"
// @Router /exams/{id} [put]
func (c *ExamController) Update(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateExamRequest
	if !bindJSON(ctx, &req) {
		return
	}

	exam, err := c.examService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(exam, "Exam updated"))
}

// UpdateStatus godoc
// @Summary Mark an exam completed
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param request body dto.UpdateExamStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Exam}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 409 {object} dto.ErrorResponse "Exam is not scheduled"
// @Router /exams/{id}/status [put]
func (c *ExamController) UpdateStatus(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateExamStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	exam, err := c.examService.UpdateStatus(ctx.Request.Context(), id, models.ExamStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(exam, "Exam completed"))
}
