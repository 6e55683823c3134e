package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsDuplicateConstraintError checks if the error is a unique violation on the named constraint.
// An empty constraint name matches any unique violation.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeUniqueViolation &&
		(constraintName == "" || pgErr.ConstraintName == constraintName)
}

// IsForeignKeyViolation reports a foreign key failure, e.g. an unknown department code.
func IsForeignKeyViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeForeignKeyViolation
}

// IsCheckViolation reports a CHECK constraint failure such as placed > interested.
func IsCheckViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeCheckViolation
}
