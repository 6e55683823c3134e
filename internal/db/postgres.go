package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/placementhub/internal/config"
	"github.com/yigit/placementhub/internal/pkg/logger"
)

const (
	connectTimeout = 10 * time.Second
	txTimeout      = 30 * time.Second
)

// PostgresDB wraps the pgx connection pool
type PostgresDB struct {
	Pool *pgxpool.Pool
}

// PoolConfig translates the database section into a pgxpool configuration.
func PoolConfig(cfg *config.Config) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	if cfg.Database.MaxOpenConns > 0 {
		poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	}
	if poolConfig.MinConns > poolConfig.MaxConns {
		poolConfig.MinConns = poolConfig.MaxConns
	}

	if cfg.Database.ConnMaxLifetime != "" {
		maxLifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
		if err != nil {
			return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
		}
		poolConfig.MaxConnLifetime = maxLifetime
	}

	poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("Unhealthy connection detected")
			return false
		}
		return true
	}

	return poolConfig, nil
}

// NewPostgresDB creates the pool and checks that the database answers
func NewPostgresDB(ctx context.Context, cfg *config.Config) (*PostgresDB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	poolConfig, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	logger.Info().
		Str("host", cfg.Database.Host).
		Str("port", cfg.Database.Port).
		Str("database", cfg.Database.DBName).
		Int32("maxConns", poolConfig.MaxConns).
		Msg("Connected to PostgreSQL")

	return &PostgresDB{Pool: pool}, nil
}

// Close releases every pooled connection
func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// TxBeginner is anything that can open a transaction, such as *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTransaction runs fn inside a transaction on the pool
func (db *PostgresDB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	return WithTransaction(ctx, db.Pool, fn)
}

// WithTransaction commits when fn succeeds and rolls back on error or panic.
// A 30s deadline is applied when ctx has none.
func WithTransaction(ctx context.Context, conn TxBeginner, fn TransactionFn) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, txTimeout)
		defer cancel()
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
