package db

import (
	"errors"

	"github.com/lib/pq"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation, optionally on the named constraint.
func IsUniqueViolation(err error, constraint ...string) bool {
	return isViolation(err, uniqueViolation, constraint)
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key
// violation, optionally on the named constraint.
func IsForeignKeyViolation(err error, constraint ...string) bool {
	return isViolation(err, foreignKeyViolation, constraint)
}

func isViolation(err error, code pq.ErrorCode, constraint []string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != code {
		return false
	}
	if len(constraint) == 0 {
		return true
	}
	for _, c := range constraint {
		if pqErr.Constraint == c {
			return true
		}
	}
	return false
}
