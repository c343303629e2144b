package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func setupStore(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	return New(goqu.New("postgres", db)), mock, func() { db.Close() }
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	s, mock, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE \"group_profile\"").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.WithTx(func(tx *goqu.TxDatabase) error {
		_, err := tx.Update("group_profile").
			Set(goqu.Record{"is_active": false}).
			Where(goqu.C("group_profile_id").Eq(1)).
			Executor().Exec()
		return err
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s, mock, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM \"meeting\"").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := s.WithTx(func(tx *goqu.TxDatabase) error {
		_, err := tx.Delete("meeting").
			Where(goqu.C("group_profile_id").Eq(1)).
			Executor().Exec()
		return err
	})

	assert.ErrorIs(t, err, ErrTransactionFailure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxPassesThroughSentinels(t *testing.T) {
	tests := []struct {
		name     string
		sentinel error
	}{
		{"not found", ErrNotFound},
		{"duplicate", ErrDuplicate},
		{"validation", ErrValidation},
		{"constraint violation", ErrConstraintViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock, cleanup := setupStore(t)
			defer cleanup()

			mock.ExpectBegin()
			mock.ExpectRollback()

			err := s.WithTx(func(tx *goqu.TxDatabase) error {
				return fmt.Errorf("%w: details", tt.sentinel)
			})

			assert.ErrorIs(t, err, tt.sentinel)
			assert.NotErrorIs(t, err, ErrTransactionFailure)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWithTxMapsUniqueViolation(t *testing.T) {
	s, mock, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO \"meeting_rsvp\"").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	err := s.WithTx(func(tx *goqu.TxDatabase) error {
		_, err := tx.Insert("meeting_rsvp").
			Rows(goqu.Record{"meeting_id": 1, "user_profile_id": 1}).
			Executor().Exec()
		return err
	})

	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
	assert.False(t, IsUniqueViolation(nil))
}
