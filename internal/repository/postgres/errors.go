package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"motorent-backoffice/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// pgErrorCode extracts the SQLSTATE and constraint name from either driver.
func pgErrorCode(err error) (code, constraint string) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

func isUniqueViolation(err error) (string, bool) {
	code, constraint := pgErrorCode(err)
	return constraint, code == codeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	code, _ := pgErrorCode(err)
	return code == codeForeignKeyViolation
}

// notFound turns sql.ErrNoRows into a NotFound AppError.
func notFound(err error, code, what string, id any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound(code, "%s %v not found", what, id)
	}
	return err
}

// duplicate maps a unique violation onto a Validation error naming field.
func duplicate(err error, field string) error {
	if _, ok := isUniqueViolation(err); ok {
		return domain.Validation(domain.CodeDuplicate, "%s already exists", field)
	}
	return err
}

// expectAffected reports NotFound when an UPDATE or DELETE matched no row.
func expectAffected(res sql.Result, err error, code, what string, id any) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound(code, "%s %v not found", what, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}
