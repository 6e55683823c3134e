package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var embedded embed.FS

// Files returns the bundled schema migrations.
func Files() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migration is one versioned SQL file
type Migration struct {
	Version string
	Name    string
}

// Migrator manages database migrations
type Migrator struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *pgxpool.Pool, logger zerolog.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

// List returns the .sql files of fsys ordered by name. The version is the filename prefix
// before the first underscore, e.g. "001" for "001_init.sql".
func List(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var out []Migration
	seen := map[string]string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		version := strings.SplitN(e.Name(), "_", 2)[0]
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("duplicate migration version %s: %s and %s", version, prev, e.Name())
		}
		seen[version] = e.Name()
		out = append(out, Migration{Version: version, Name: e.Name()})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	_, err := m.db.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := m.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// Apply runs one migration and records it in the same transaction
func (m *Migrator) Apply(ctx context.Context, fsys fs.FS, mig Migration) error {
	applied, err := m.isMigrationApplied(ctx, mig.Version)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug().Str("migration", mig.Name).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := fs.ReadFile(fsys, path.Clean(mig.Name))
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	err = pgx.BeginFunc(ctx, m.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("migration %s failed: %w", mig.Name, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.Version); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", mig.Name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info().Str("migration", mig.Name).Msg("Migration applied")
	return nil
}

// Migrate applies every pending migration of fsys in order
func (m *Migrator) Migrate(ctx context.Context, fsys fs.FS) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	migrations, err := List(fsys)
	if err != nil {
		return err
	}

	for _, mig := range migrations {
		if err := m.Apply(ctx, fsys, mig); err != nil {
			return err
		}
	}
	return nil
}
