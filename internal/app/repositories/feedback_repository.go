package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/helpers"
	"github.com/yigit/placementhub/internal/pkg/logger"
)

// IFeedbackRepository stores student feedback
type IFeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	List(ctx context.Context, page helpers.PageRequest) ([]models.Feedback, int64, error)
}

// FeedbackRepository handles feedback database operations
type FeedbackRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: db, sb: statementBuilder()}
}

// Create inserts a feedback message
func (r *FeedbackRepository) Create(ctx context.Context, f *models.Feedback) error {
	sql, args, err := r.sb.Insert("feedback").
		Columns("user_id", "category", "message").
		Values(f.UserID, f.Category, f.Message).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create feedback SQL")
		return fmt.Errorf("failed to build create feedback query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&f.ID, &f.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("userID", f.UserID).Msg("Error executing create feedback query")
		return fmt.Errorf("error creating feedback: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) listQuery(page helpers.PageRequest) (string, []interface{}, error) {
	return r.sb.Select("f.id", "f.user_id", "u.name", "u.email", "f.category", "f.message", "f.created_at").
		From("feedback f").
		Join("users u ON u.id = f.user_id").
		OrderBy("f.created_at DESC", "f.id DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		ToSql()
}

// List returns one page of feedback, newest first
func (r *FeedbackRepository) List(ctx context.Context, page helpers.PageRequest) ([]models.Feedback, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count feedback query")
		return nil, 0, fmt.Errorf("error counting feedback: %w", err)
	}

	sql, args, err := r.listQuery(page)
	if err != nil {
		logger.Error().Err(err).Msg("Error building list feedback SQL")
		return nil, 0, fmt.Errorf("failed to build list feedback query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list feedback query")
		return nil, 0, fmt.Errorf("error listing feedback: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Feedback])
	if err != nil {
		logger.Error().Err(err).Msg("Error scanning feedback rows")
		return nil, 0, fmt.Errorf("error listing feedback: %w", err)
	}
	return items, total, nil
}
