package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/GatherPoint/models"
	"github.com/GatherPoint/store"
	"github.com/stretchr/testify/assert"
)

func TestRequestJoin(t *testing.T) {
	t.Run("files a pending request", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewMembershipService(s)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM \"group_membership\"").
			WillReturnRows(sqlmock.NewRows([]string{"group_membership_id"}))
		mock.ExpectQuery("INSERT INTO \"group_membership\"").
			WillReturnRows(sqlmock.NewRows([]string{"group_membership_id"}).AddRow(42))
		mock.ExpectCommit()

		membership, err := svc.RequestJoin(5, 3, "please let me in")

		assert.NoError(t, err)
		assert.Equal(t, 42, membership.Group_Membership_ID)
		assert.Equal(t, models.MembershipStatusPending, membership.Membership_Status)
		assert.Equal(t, "please let me in", membership.Request_Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a second request for the same pair", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewMembershipService(s)

		existing := sqlmock.NewRows([]string{"group_membership_id", "user_profile_id", "group_profile_id", "membership_status"}).
			AddRow(7, 5, 3, models.MembershipStatusRejected)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM \"group_membership\"").
			WillReturnRows(existing)
		mock.ExpectRollback()

		membership, err := svc.RequestJoin(5, 3, "")

		assert.Nil(t, membership)
		assert.ErrorIs(t, err, store.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMembershipTransitions(t *testing.T) {
	tests := []struct {
		name    string
		approve bool
	}{
		{"approve pending membership", true},
		{"reject pending membership", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock, cleanup := setupTestStore(t)
			defer cleanup()
			svc := NewMembershipService(s)

			mock.ExpectBegin()
			mock.ExpectExec("UPDATE \"group_membership\"").
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			var err error
			if tt.approve {
				err = svc.Approve(7, 1)
			} else {
				err = svc.Reject(7, 1)
			}

			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTransitionNotFound(t *testing.T) {
	s, mock, cleanup := setupTestStore(t)
	defer cleanup()
	svc := NewMembershipService(s)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE \"group_membership\"").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT(.+) FROM \"group_membership\"").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	err := svc.Approve(999, 1)

	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionFromTerminalState(t *testing.T) {
	// An approved or rejected membership is frozen; the update matches
	// nothing and the existence check reveals a non-pending record.
	s, mock, cleanup := setupTestStore(t)
	defer cleanup()
	svc := NewMembershipService(s)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE \"group_membership\"").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT(.+) FROM \"group_membership\"").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := svc.Reject(7, 1)

	assert.ErrorIs(t, err, store.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStatus(t *testing.T) {
	t.Run("returns the record when one exists", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewMembershipService(s)

		rows := sqlmock.NewRows([]string{"group_membership_id", "user_profile_id", "group_profile_id", "membership_status"}).
			AddRow(7, 5, 3, models.MembershipStatusApproved)
		mock.ExpectQuery("SELECT (.+) FROM \"group_membership\"").
			WillReturnRows(rows)

		membership, err := svc.GetStatus(5, 3)

		assert.NoError(t, err)
		assert.NotNil(t, membership)
		assert.Equal(t, models.MembershipStatusApproved, membership.Membership_Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil when the user never requested", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewMembershipService(s)

		mock.ExpectQuery("SELECT (.+) FROM \"group_membership\"").
			WillReturnRows(sqlmock.NewRows([]string{"group_membership_id"}))

		membership, err := svc.GetStatus(5, 3)

		assert.NoError(t, err)
		assert.Nil(t, membership)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
