package database

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories translate.
const (
	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
)

// PgErrorCode returns the SQLSTATE and constraint name of a *pgconn.PgError in err's chain.
func PgErrorCode(err error) (code, constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}
	return "", "", false
}

func IsUniqueViolation(err error) bool {
	code, _, ok := PgErrorCode(err)
	return ok && code == PgUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	code, _, ok := PgErrorCode(err)
	return ok && code == PgForeignKeyViolation
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
