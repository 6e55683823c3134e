package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/logger"
)

// IPasswordResetTokenRepository manages single-use password reset tokens
type IPasswordResetTokenRepository interface {
	CreateToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	MarkTokenAsUsed(ctx context.Context, token string) error
	CleanupExpired(ctx context.Context) (int64, error)
}

// PasswordResetTokenRepository manages password reset tokens in the database
type PasswordResetTokenRepository struct {
	db  *pgxpool.Pool
	sb  squirrel.StatementBuilderType
	now func() time.Time
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(db *pgxpool.Pool) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{db: db, sb: statementBuilder(), now: time.Now}
}

// CreateToken stores a new password reset token
func (r *PasswordResetTokenRepository) CreateToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	sql, args, err := r.sb.Insert("password_reset_tokens").
		Columns("token", "user_id", "expires_at").
		Values(token, userID, expiresAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create reset token SQL")
		return fmt.Errorf("failed to build create reset token query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create reset token query")
		return fmt.Errorf("error creating password reset token: %w", err)
	}
	return nil
}

// GetToken loads a reset token
func (r *PasswordResetTokenRepository) GetToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	sql, args, err := r.sb.Select("token", "user_id", "expires_at", "used_at", "created_at").
		From("password_reset_tokens").
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get reset token SQL")
		return nil, fmt.Errorf("failed to build get reset token query: %w", err)
	}

	var t models.PasswordResetToken
	err = r.db.QueryRow(ctx, sql, args...).Scan(&t.Token, &t.UserID, &t.ExpiresAt, &t.UsedAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidPasswordResetToken
		}
		logger.Error().Err(err).Msg("Error scanning reset token row")
		return nil, fmt.Errorf("error retrieving password reset token: %w", err)
	}
	return &t, nil
}

// MarkTokenAsUsed marks a token as used to prevent reuse
func (r *PasswordResetTokenRepository) MarkTokenAsUsed(ctx context.Context, token string) error {
	sql, args, err := r.sb.Update("password_reset_tokens").
		Set("used_at", r.now()).
		Where(squirrel.Eq{"token": token, "used_at": nil}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building mark reset token SQL")
		return fmt.Errorf("failed to build mark reset token query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing mark reset token query")
		return fmt.Errorf("error marking token as used: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPasswordResetTokenUsed
	}
	return nil
}

// CleanupExpired removes used or expired tokens
func (r *PasswordResetTokenRepository) CleanupExpired(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("password_reset_tokens").
		Where(squirrel.Or{
			squirrel.Lt{"expires_at": r.now()},
			squirrel.NotEq{"used_at": nil},
		}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building cleanup reset tokens SQL")
		return 0, fmt.Errorf("failed to build cleanup reset tokens query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing cleanup reset tokens query")
		return 0, fmt.Errorf("error deleting expired password reset tokens: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
