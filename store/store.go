package store

import (
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
)

// Store wraps the database handle used by every service. It is
// constructed once in main and injected explicitly; nothing in the
// codebase holds a package-level handle.
type Store struct {
	db *goqu.Database
}

func New(db *goqu.Database) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for single-statement reads and
// writes. Multi-step operations must go through WithTx instead.
func (s *Store) DB() *goqu.Database {
	return s.db
}

// WithTx executes fn inside a single transaction: all writes commit
// together or roll back together. Sentinel errors raised by fn pass
// through unchanged. A unique-constraint race surfaces as
// ErrConstraintViolation so callers can retry idempotently; any other
// failure wraps ErrTransactionFailure.
func (s *Store) WithTx(fn func(tx *goqu.TxDatabase) error) error {
	err := s.db.WithTx(fn)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrConstraintViolation):
		return err
	case IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	default:
		return fmt.Errorf("%w: %v", ErrTransactionFailure, err)
	}
}
