package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/dberrors"
	"github.com/yigit/placementhub/internal/pkg/logger"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateLastLogin(ctx context.Context, userID int64) error
}

var userColumns = []string{
	"id", "email", "password_hash", "name", "role", "profile_completed",
	"is_active", "last_login_at", "created_at", "updated_at",
}

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db, sb: statementBuilder()}
}

// NormalizeEmail lowercases and trims an email address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts a user and fills in its generated fields
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = NormalizeEmail(user.Email)

	sql, args, err := r.sb.Insert("users").
		Columns("email", "password_hash", "name", "role", "profile_completed", "is_active").
		Values(user.Email, user.PasswordHash, user.Name, user.Role, user.ProfileCompleted, user.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get user query")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": NormalizeEmail(email)})
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, NormalizeEmail(email)).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Msg("Error checking email existence")
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

// UpdatePassword stores a new password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	return r.update(ctx, userID, map[string]interface{}{"password_hash": passwordHash})
}

// UpdateLastLogin updates the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	return r.update(ctx, userID, map[string]interface{}{"last_login_at": time.Now()})
}

func (r *UserRepository) update(ctx context.Context, userID int64, set map[string]interface{}) error {
	set["updated_at"] = time.Now()
	sql, args, err := r.sb.Update("users").
		SetMap(set).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update user SQL")
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update user query")
		return fmt.Errorf("error updating user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
