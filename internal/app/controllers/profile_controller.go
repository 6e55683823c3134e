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

// ProfileUseCase is what ProfileController needs from the profile service
type ProfileUseCase interface {
	CompleteStudent(ctx context.Context, userID int64, req *dto.StudentProfileRequest) (*models.StudentProfile, error)
	GetStudent(ctx context.Context, userID int64) (*models.StudentProfile, error)
	UpdateStudent(ctx context.Context, userID int64, req *dto.StudentProfileRequest) (*models.StudentProfile, error)
	CompleteFaculty(ctx context.Context, userID int64, req *dto.FacultyProfileRequest) (*models.FacultyProfile, error)
	GetFaculty(ctx context.Context, userID int64) (*models.FacultyProfile, error)
	UpdateFaculty(ctx context.Context, userID int64, req *dto.FacultyProfileRequest) (*models.FacultyProfile, error)
	CompleteCompany(ctx context.Context, userID int64, req *dto.CompanyProfileRequest) (*models.CompanyProfile, error)
	GetCompany(ctx context.Context, userID int64) (*models.CompanyProfile, error)
}

// ProfileController handles the role specific signup profiles
type ProfileController struct {
	profileService ProfileUseCase
	authService    AuthUseCase
	cookie         CookieSettings
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService ProfileUseCase, authService AuthUseCase, cookie CookieSettings, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		authService:    authService,
		cookie:         cookie,
		logger:         logger,
	}
}

// completed answers a profile completion. The session is reissued because the old token
// still says the profile is incomplete.
func (c *ProfileController) completed(ctx *gin.Context, userID int64, profile interface{}) {
	session, err := c.authService.Reissue(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to reissue session after profile completion")
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.cookie.set(ctx, session.AccessToken, c.authService.AccessTokenTTL())

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.ProfileCompletedResponse{
		Profile: profile,
		Session: session,
	}, "Profile completed"))
}

// CompleteStudent godoc
// @Summary Complete student profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentProfileRequest true "Student profile"
// @Success 201 {object} dto.APIResponse{data=dto.ProfileCompletedResponse} "Profile completed"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Not a student"
// @Failure 409 {object} dto.ErrorResponse "Profile already exists or student ID taken"
// @Router /auth/profile/student [post]
func (c *ProfileController) CompleteStudent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req dto.StudentProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := c.profileService.CompleteStudent(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.completed(ctx, userID, profile)
}

// GetStudent godoc
// @Summary Get own student profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.StudentProfile}
// @Failure 404 {object} dto.ErrorResponse "Profile not completed"
// @Router /auth/profile/student [get]
func (c *ProfileController) GetStudent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	profile, err := c.profileService.GetStudent(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, ""))
}

// UpdateStudent godoc
// @Summary Update own student profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentProfileRequest true "Student profile"
// @Success 200 {object} dto.APIResponse{data=models.StudentProfile}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Profile not completed"
// @Router /auth/profile/student [put]
func (c *ProfileController) UpdateStudent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req dto.StudentProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := c.profileService.UpdateStudent(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, "Profile updated"))
}

// CompleteFaculty godoc
// @Summary Complete faculty profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FacultyProfileRequest true "Faculty profile"
// @Success 201 {object} dto.APIResponse{data=dto.ProfileCompletedResponse} "Profile completed"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Profile already exists"
// @Router /auth/profile/faculty [post]
func (c *ProfileController) CompleteFaculty(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req dto.FacultyProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := c.profileService.CompleteFaculty(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.completed(ctx, userID, profile)
}

// GetFaculty godoc
// @Summary Get own faculty profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.FacultyProfile}
// @Failure 404 {object} dto.ErrorResponse "Profile not completed"
// @Router /auth/profile/faculty [get]
func (c *ProfileController) GetFaculty(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	profile, err := c.profileService.GetFaculty(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, ""))
}

// UpdateFaculty godoc
// @Summary Update own faculty profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FacultyProfileRequest true "Faculty profile"
// @Success 200 {object} dto.APIResponse{data=models.FacultyProfile}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /auth/profile/faculty [put]
func (c *ProfileController) UpdateFaculty(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req dto.FacultyProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := c.profileService.UpdateFaculty(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, "Profile updated"))
}

// CompleteCompany godoc
// @Summary Complete company profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CompanyProfileRequest true "Company profile"
// @Success 201 {object} dto.APIResponse{data=dto.ProfileCompletedResponse} "Profile completed"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Profile already exists"
// @Router /auth/profile/company [post]
func (c *ProfileController) CompleteCompany(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req dto.CompanyProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := c.profileService.CompleteCompany(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.completed(ctx, userID, profile)
}

// GetCompany godoc
// @Summary Get own company profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.CompanyProfile}
// @Failure 404 {object} dto.ErrorResponse "Profile not completed"
// @Router /auth/profile/company [get]
func (c *ProfileController) GetCompany(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	profile, err := c.profileService.GetCompany(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, ""))
}
