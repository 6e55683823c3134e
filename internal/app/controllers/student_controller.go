package controllers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/middleware"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/export"
	"github.com/yigit/placementhub/internal/pkg/helpers"
)

// StudentUseCase is what StudentController needs from the student service
type StudentUseCase interface {
	Directory(ctx context.Context, filter models.StudentFilter, page helpers.PageRequest) (*dto.PagedResponse, error)
	Export(ctx context.Context, filter models.StudentFilter, format export.Format, w io.Writer) error
}

// StudentController serves the faculty student directory
type StudentController struct {
	studentService StudentUseCase
	logger         zerolog.Logger
	now            func() time.Time
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService StudentUseCase, logger zerolog.Logger) *StudentController {
	return &StudentController{studentService: studentService, logger: logger, now: time.Now}
}

func studentFilter(ctx *gin.Context) models.StudentFilter {
	return models.StudentFilter{
		Batch:      strings.TrimSpace(ctx.Query("batch")),
		College:    strings.TrimSpace(ctx.Query("college")),
		Department: strings.TrimSpace(ctx.Query("department")),
		Search:     strings.TrimSpace(ctx.Query("search")),
	}
}

// List godoc
// @Summary Student directory
// @Description Paginated student profiles. search matches name or email, case-insensitive.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param batch query string false "Batch year"
// @Param college query string false "College name"
// @Param department query string false "Department code"
// @Param search query string false "Name or email"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse}
// @Failure 403 {object} dto.ErrorResponse "Faculty only"
// @Router /students [get]
func (c *StudentController) List(ctx *gin.Context) {
	page, err := c.studentService.Directory(ctx.Request.Context(), studentFilter(ctx), helpers.ParsePaginationParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(page, ""))
}

// Download godoc
// @Summary Download the student directory
// @Description Exports every student matching the filters as an attachment
// @Tags students
// @Produce application/pdf
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param format query string true "pdf, xlsx or csv"
// @Param batch query string false "Batch year"
// @Param college query string false "College name"
// @Param department query string false "Department code"
// @Param search query string false "Name or email"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse "Unsupported format"
// @Failure 403 {object} dto.ErrorResponse "Faculty only"
// @Router /students/download [get]
func (c *StudentController) Download(ctx *gin.Context) {
	format, err := export.ParseFormat(ctx.Query("format"))
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError(err.Error()))
		return
	}

	// Render fully before writing so a failure can still answer with JSON
	var buf bytes.Buffer
	if err := c.studentService.Export(ctx.Request.Context(), studentFilter(ctx), format, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := format.Filename(fmt.Sprintf("students-%s", c.now().Format("20060102")))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
