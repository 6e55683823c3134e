package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/repositories"
	"github.com/yigit/placementhub/internal/pkg/helpers"
)

// FeedbackService records student feedback for the placement cell
type FeedbackService struct {
	repo   repositories.IFeedbackRepository
	logger zerolog.Logger
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(repo repositories.IFeedbackRepository, logger zerolog.Logger) *FeedbackService {
	return &FeedbackService{repo: repo, logger: logger}
}

// Create stores a feedback message from a user
func (s *FeedbackService) Create(ctx context.Context, userID int64, req *dto.CreateFeedbackRequest) (*models.Feedback, error) {
	f := &models.Feedback{
		UserID:   userID,
		Category: req.Category,
		Message:  strings.TrimSpace(req.Message),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("userID", userID).Str("category", f.Category).Msg("Feedback received")
	return f, nil
}

// List returns one page of feedback
func (s *FeedbackService) List(ctx context.Context, page helpers.PageRequest) (*dto.PagedResponse, error) {
	items, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Feedback{}
	}
	return &dto.PagedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page.Page, page.Size),
	}, nil
}
