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

// IOTPRepository stores pending signup verification codes, one per email
type IOTPRepository interface {
	Upsert(ctx context.Context, challenge *models.OTPChallenge) error
	Get(ctx context.Context, email string) (*models.OTPChallenge, error)
	IncrementAttempts(ctx context.Context, email string) (int, error)
	Delete(ctx context.Context, email string) error
	CleanupExpired(ctx context.Context) (int64, error)
}

// OTPRepository handles otp_challenges database operations
type OTPRepository struct {
	db  *pgxpool.Pool
	sb  squirrel.StatementBuilderType
	now func() time.Time
}

// NewOTPRepository creates a new OTPRepository
func NewOTPRepository(db *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{db: db, sb: statementBuilder(), now: time.Now}
}

func (r *OTPRepository) upsertQuery(c *models.OTPChallenge) (string, []interface{}, error) {
	return r.sb.Insert("otp_challenges").
		Columns("email", "code_hash", "expires_at", "attempts", "created_at").
		Values(NormalizeEmail(c.Email), c.CodeHash, c.ExpiresAt, 0, r.now()).
		Suffix("ON CONFLICT (email) DO UPDATE SET code_hash = EXCLUDED.code_hash, expires_at = EXCLUDED.expires_at, attempts = 0, created_at = EXCLUDED.created_at").
		ToSql()
}

// Upsert replaces any pending code for the email and resets its attempt counter
func (r *OTPRepository) Upsert(ctx context.Context, challenge *models.OTPChallenge) error {
	sql, args, err := r.upsertQuery(challenge)
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert otp SQL")
		return fmt.Errorf("failed to build upsert otp query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("email", challenge.Email).Msg("Error executing upsert otp query")
		return fmt.Errorf("error storing otp: %w", err)
	}
	return nil
}

// Get returns the pending challenge of an email
func (r *OTPRepository) Get(ctx context.Context, email string) (*models.OTPChallenge, error) {
	sql, args, err := r.sb.Select("email", "code_hash", "expires_at", "attempts", "created_at").
		From("otp_challenges").
		Where(squirrel.Eq{"email": NormalizeEmail(email)}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get otp SQL")
		return nil, fmt.Errorf("failed to build get otp query: %w", err)
	}

	var c models.OTPChallenge
	err = r.db.QueryRow(ctx, sql, args...).Scan(&c.Email, &c.CodeHash, &c.ExpiresAt, &c.Attempts, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOTPNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning otp row")
		return nil, fmt.Errorf("error retrieving otp: %w", err)
	}
	return &c, nil
}

// IncrementAttempts records a failed verification and returns the new count
func (r *OTPRepository) IncrementAttempts(ctx context.Context, email string) (int, error) {
	sql, args, err := r.sb.Update("otp_challenges").
		Set("attempts", squirrel.Expr("attempts + 1")).
		Where(squirrel.Eq{"email": NormalizeEmail(email)}).
		Suffix("RETURNING attempts").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building increment otp attempts SQL")
		return 0, fmt.Errorf("failed to build increment otp attempts query: %w", err)
	}

	var attempts int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&attempts); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrOTPNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error incrementing otp attempts")
		return 0, fmt.Errorf("error updating otp attempts: %w", err)
	}
	return attempts, nil
}

// Delete removes the challenge of an email
func (r *OTPRepository) Delete(ctx context.Context, email string) error {
	sql, args, err := r.sb.Delete("otp_challenges").
		Where(squirrel.Eq{"email": NormalizeEmail(email)}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete otp SQL")
		return fmt.Errorf("failed to build delete otp query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error executing delete otp query")
		return fmt.Errorf("error deleting otp: %w", err)
	}
	return nil
}

// CleanupExpired removes expired challenges
func (r *OTPRepository) CleanupExpired(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("otp_challenges").
		Where(squirrel.Lt{"expires_at": r.now()}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building cleanup otp SQL")
		return 0, fmt.Errorf("failed to build cleanup otp query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing cleanup otp query")
		return 0, fmt.Errorf("error cleaning up otp challenges: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
