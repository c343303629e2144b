package store

import (
	"errors"

	"github.com/lib/pq"
)

// Error taxonomy. Services return these sentinels (possibly wrapped with
// %w) so controllers can translate them with errors.Is. None of them is
// retried here; retry decisions belong to the caller.
var (
	// ErrNotFound means a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate means the record already exists, e.g. a second join
	// request for the same (user, group) pair.
	ErrDuplicate = errors.New("record already exists")

	// ErrValidation means the input violates a business rule.
	ErrValidation = errors.New("invalid input")

	// ErrConstraintViolation means a concurrent writer raced past a
	// uniqueness guard. Callers can safely retry the operation.
	ErrConstraintViolation = errors.New("unique constraint violation")

	// ErrTransactionFailure means the unit of work could not commit and
	// every write within it was rolled back.
	ErrTransactionFailure = errors.New("transaction failed")
)

// IsUniqueViolation reports whether err is a postgres unique_violation
// (class 23505), the store-level enforcement behind the membership and
// RSVP pair constraints.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
