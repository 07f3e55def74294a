package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	ierr "github.com/papertrails/papertrails/internal/errors"
)

const (
	pqUniqueViolation      = "23505"
	pqForeignKeyViolation  = "23503"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	pqLockNotAvailable     = "55P03"
	pqQueryCanceled        = "57014"
)

// MapError converts driver errors into marked domain errors
func MapError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ierr.WithError(err).
			WithHintf("%s: record not found", op).
			Mark(ierr.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return ierr.WithError(err).
				WithHintf("%s: record already exists", op).
				WithReportableDetails(map[string]any{
					"constraint": pqErr.Constraint,
				}).
				Mark(ierr.ErrAlreadyExists)
		case pqForeignKeyViolation:
			return ierr.WithError(err).
				WithHintf("%s: referenced record does not exist", op).
				WithReportableDetails(map[string]any{
					"constraint": pqErr.Constraint,
				}).
				Mark(ierr.ErrValidation)
		case pqSerializationFailure, pqDeadlockDetected, pqLockNotAvailable, pqQueryCanceled:
			return ierr.WithError(err).
				WithHint("The record is busy, please retry").
				WithReportableDetails(map[string]any{
					"operation": op,
					"pg_code":   string(pqErr.Code),
				}).
				Mark(ierr.ErrConcurrency)
		}
	}

	return ierr.WithError(err).
		WithHintf("%s failed", op).
		Mark(ierr.ErrDatabase)
}
