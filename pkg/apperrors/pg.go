package apperrors

import (
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes we translate at the repository boundary.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation. The order-pick race and duplicate ingredient edges both
// surface this way.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err is a postgres foreign key
// violation, e.g. deleting an item still referenced by an ingredient edge.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation
}
