package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error classes surfaced as domain errors.
const (
	pgUniqueViolation  = "23505"
	pgCheckViolation   = "23514"
	pgNotNullViolation = "23502"
)

// Errors names the domain errors a repository reports for database failures.
// Nil fields leave the corresponding failure unmapped.
type Errors struct {
	NotFound  error
	Duplicate error
	Invalid   error
}

// Map translates err into the matching domain error. Constraint violations
// keep the constraint name in the message. Other errors are returned as is.
func (e Errors) Map(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) && e.NotFound != nil {
		return e.NotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		if e.Duplicate != nil {
			return e.Duplicate
		}
	case pgCheckViolation, pgNotNullViolation:
		if e.Invalid != nil {
			return fmt.Errorf("%w: %s", e.Invalid, constraint(pgErr))
		}
	}
	return err
}

func constraint(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return pgErr.ColumnName
}
