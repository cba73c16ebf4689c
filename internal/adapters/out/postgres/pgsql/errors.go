package pgsql

import (
	"errors"
	"fmt"

	"freight/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes the engine reacts to.
const (
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeLockNotAvailable     = "55P03"
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
)

// ReviewPairIndex is the unique index that enforces one review per reviewer and reviewed party.
const ReviewPairIndex = "idx_reviews_pair"

// Translate maps driver errors onto the engine's error kinds. Lock contention becomes
// a TransientConflictError so that callers retry; other errors pass through unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case CodeSerializationFailure, CodeDeadlockDetected, CodeLockNotAvailable:
		return errs.NewTransientConflictError(err)
	case CodeUniqueViolation:
		if pgErr.ConstraintName == ReviewPairIndex {
			return fmt.Errorf("%w: %s", errs.ErrDuplicateReview, pgErr.Detail)
		}
	case CodeForeignKeyViolation:
		return errs.NewObjectNotFoundErrorWithCause(pgErr.ConstraintName, pgErr.Detail, err)
	}
	return err
}

// NotFound converts gorm.ErrRecordNotFound into an ObjectNotFoundError for entity id.
func NotFound(err error, entity string, id fmt.Stringer) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(entity, id.String())
	}
	return Translate(err)
}
