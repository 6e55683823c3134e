package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/dberrors"
	"github.com/yigit/placementhub/internal/pkg/logger"
)

// ITokenRepository stores refresh tokens
type ITokenRepository interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// revoked tokens are kept this long for auditing before cleanup removes them
const revokedTokenRetention = 30 * 24 * time.Hour

// TokenRepository handles refresh token database operations
type TokenRepository struct {
	db  *pgxpool.Pool
	sb  squirrel.StatementBuilderType
	now func() time.Time
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{db: db, sb: statementBuilder(), now: time.Now}
}

// CreateToken creates a new refresh token
func (r *TokenRepository) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	sql, args, err := r.sb.Insert("refresh_tokens").
		Columns("token", "user_id", "expiry_date", "is_revoked", "created_at").
		Values(token, userID, expiryDate, false, r.now()).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create token SQL")
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "refresh_tokens_pkey") {
			logger.Warn().Int64("userID", userID).Msg("Attempted to create duplicate token")
			return apperrors.ErrTokenInvalid
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create token query")
		return fmt.Errorf("error creating token: %w", err)
	}

	return nil
}

// GetTokenByValue returns the owner and expiry of an active refresh token
func (r *TokenRepository) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error) {
	var userID int64
	var expiryDate time.Time
	var isRevoked bool

	sql, args, err := r.sb.Select("user_id", "expiry_date", "is_revoked").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get token by value SQL")
		return 0, time.Time{}, fmt.Errorf("failed to build get token query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&userID, &expiryDate, &isRevoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, time.Time{}, apperrors.ErrTokenNotFound
		}
		logger.Error().Err(err).Msg("Error scanning token row")
		return 0, time.Time{}, fmt.Errorf("error retrieving token: %w", err)
	}

	if isRevoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	if expiryDate.Before(r.now()) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}

	return userID, expiryDate, nil
}

// RevokeToken revokes a token
func (r *TokenRepository) RevokeToken(ctx context.Context, token string) error {
	sql, args, err := r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building revoke token SQL")
		return fmt.Errorf("failed to build revoke token query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing revoke token query")
		return fmt.Errorf("error revoking token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}

	return nil
}

// RevokeAllUserTokens revokes all active tokens of a user. A user without tokens is not an error.
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"user_id": userID, "is_revoked": false}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error building revoke all user tokens SQL")
		return fmt.Errorf("failed to build revoke all user tokens query: %w", err)
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing revoke all user tokens query")
		return fmt.Errorf("error revoking user tokens: %w", err)
	}

	return nil
}

func (r *TokenRepository) cleanupQuery() (string, []interface{}, error) {
	now := r.now()
	return r.sb.Delete("refresh_tokens").
		Where(squirrel.Or{
			squirrel.Lt{"expiry_date": now},
			squirrel.And{
				squirrel.Eq{"is_revoked": true},
				squirrel.Lt{"created_at": now.Add(-revokedTokenRetention)},
			},
		}).
		ToSql()
}

// CleanupExpiredTokens removes expired tokens and old revoked ones
func (r *TokenRepository) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	sql, args, err := r.cleanupQuery()
	if err != nil {
		logger.Error().Err(err).Msg("Error building cleanup tokens SQL")
		return 0, fmt.Errorf("failed to build cleanup tokens query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing cleanup tokens query")
		return 0, fmt.Errorf("error cleaning up tokens: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
