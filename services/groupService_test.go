package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/GatherPoint/models"
	"github.com/GatherPoint/store"
	"github.com/stretchr/testify/assert"
)

func TestCreateGroup(t *testing.T) {
	t.Run("creates group and admin membership together", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewGroupService(s)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO \"group_profile\"").
			WillReturnRows(sqlmock.NewRows([]string{"group_profile_id"}).AddRow(3))
		mock.ExpectExec("INSERT INTO \"group_membership\"").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		group, err := svc.CreateGroup(1, models.GroupCreate{
			Group_Name: "Northside Neighbors",
			Is_Public:  true,
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, group.Group_Profile_ID)
		assert.True(t, group.Is_Active)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back the group when the membership insert fails", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewGroupService(s)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO \"group_profile\"").
			WillReturnRows(sqlmock.NewRows([]string{"group_profile_id"}).AddRow(3))
		mock.ExpectExec("INSERT INTO \"group_membership\"").
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		group, err := svc.CreateGroup(1, models.GroupCreate{Group_Name: "Doomed"})

		assert.Nil(t, group)
		assert.ErrorIs(t, err, store.ErrTransactionFailure)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// expectDeleteGroupCascade registers the full leaf-to-root expectation
// sequence up to (but not including) the final group_profile delete.
// sqlmock expectations are ordered, so these tests pin the cascade order.
func expectDeleteGroupCascade(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM \"meeting\"").
		WillReturnRows(sqlmock.NewRows([]string{"meeting_id"}).AddRow(10).AddRow(11))
	mock.ExpectQuery("SELECT (.+) FROM \"prayer_request\"").
		WillReturnRows(sqlmock.NewRows([]string{"prayer_request_id"}).AddRow(20))
	mock.ExpectExec("DELETE FROM \"group_invite\"").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM \"meeting_rsvp\"").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM \"prayer_response\"").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM \"notification\"").
		WillReturnResult(sqlmock.NewResult(0, 6))
	mock.ExpectExec("DELETE FROM \"meeting\"").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM \"chat_message\"").
		WillReturnResult(sqlmock.NewResult(0, 9))
	mock.ExpectExec("DELETE FROM \"prayer_request\"").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM \"group_membership\"").
		WillReturnResult(sqlmock.NewResult(0, 3))
}

func TestDeleteGroup(t *testing.T) {
	t.Run("deletes dependents leaf to root then the group", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewGroupService(s)

		expectDeleteGroupCascade(mock)
		mock.ExpectExec("DELETE FROM \"group_profile\"").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := svc.DeleteGroup(3)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a group with no dependents still deletes", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewGroupService(s)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM \"meeting\"").
			WillReturnRows(sqlmock.NewRows([]string{"meeting_id"}))
		mock.ExpectQuery("SELECT (.+) FROM \"prayer_request\"").
			WillReturnRows(sqlmock.NewRows([]string{"prayer_request_id"}))
		mock.ExpectExec("DELETE FROM \"group_invite\"").
			WillReturnResult(sqlmock.NewResult(0, 0))
		// no meetings or prayer requests, so no rsvp or response deletes
		mock.ExpectExec("DELETE FROM \"notification\"").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM \"meeting\"").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM \"chat_message\"").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM \"prayer_request\"").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM \"group_membership\"").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM \"group_profile\"").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := svc.DeleteGroup(3)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing group rolls the whole cascade back", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewGroupService(s)

		expectDeleteGroupCascade(mock)
		mock.ExpectExec("DELETE FROM \"group_profile\"").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := svc.DeleteGroup(3)

		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a failing mid-cascade delete aborts the transaction", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewGroupService(s)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM \"meeting\"").
			WillReturnRows(sqlmock.NewRows([]string{"meeting_id"}).AddRow(10))
		mock.ExpectQuery("SELECT (.+) FROM \"prayer_request\"").
			WillReturnRows(sqlmock.NewRows([]string{"prayer_request_id"}))
		mock.ExpectExec("DELETE FROM \"group_invite\"").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM \"meeting_rsvp\"").
			WillReturnError(errors.New("lock timeout"))
		mock.ExpectRollback()

		err := svc.DeleteGroup(3)

		assert.ErrorIs(t, err, store.ErrTransactionFailure)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteAllGroups(t *testing.T) {
	t.Run("wipes every table leaf to root in one transaction", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewGroupService(s)

		mock.ExpectBegin()
		for _, table := range []string{
			"group_invite", "meeting_rsvp", "prayer_response", "notification",
			"meeting", "chat_message", "prayer_request", "group_membership", "group_profile",
		} {
			mock.ExpectExec("DELETE FROM \"" + table + "\"").
				WillReturnResult(sqlmock.NewResult(0, 5))
		}
		mock.ExpectCommit()

		err := svc.DeleteAllGroups()

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("any failed step rolls everything back", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewGroupService(s)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM \"group_invite\"").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM \"meeting_rsvp\"").
			WillReturnError(errors.New("connection lost"))
		mock.ExpectRollback()

		err := svc.DeleteAllGroups()

		assert.ErrorIs(t, err, store.ErrTransactionFailure)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
