package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/GatherPoint/store"
	"github.com/stretchr/testify/assert"
)

func TestFanOutPrayerRequestCreated(t *testing.T) {
	requestRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"prayer_request_id", "group_profile_id", "subject", "created_by"}).
			AddRow(20, 3, "Health", 1)
	}

	t.Run("notifies every approved member except the author", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewNotificationService(s)

		mock.ExpectQuery("SELECT (.+) FROM \"prayer_request\"").
			WillReturnRows(requestRows())
		// four approved members, author excluded by the query itself
		mock.ExpectQuery("SELECT (.+) FROM \"group_membership\"").
			WillReturnRows(sqlmock.NewRows([]string{"user_profile_id"}).
				AddRow(2).AddRow(3).AddRow(4))
		for i := 0; i < 3; i++ {
			mock.ExpectExec("INSERT INTO \"notification\"").
				WillReturnResult(sqlmock.NewResult(1, 1))
		}

		created, err := svc.FanOutPrayerRequestCreated(20)

		assert.NoError(t, err)
		assert.Equal(t, 3, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a failed recipient is skipped, not fatal", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewNotificationService(s)

		mock.ExpectQuery("SELECT (.+) FROM \"prayer_request\"").
			WillReturnRows(requestRows())
		mock.ExpectQuery("SELECT (.+) FROM \"group_membership\"").
			WillReturnRows(sqlmock.NewRows([]string{"user_profile_id"}).
				AddRow(2).AddRow(3).AddRow(4))
		mock.ExpectExec("INSERT INTO \"notification\"").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO \"notification\"").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectExec("INSERT INTO \"notification\"").
			WillReturnResult(sqlmock.NewResult(2, 1))

		created, err := svc.FanOutPrayerRequestCreated(20)

		assert.NoError(t, err)
		assert.Equal(t, 2, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown prayer request is not found", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewNotificationService(s)

		mock.ExpectQuery("SELECT (.+) FROM \"prayer_request\"").
			WillReturnRows(sqlmock.NewRows([]string{"prayer_request_id"}))

		created, err := svc.FanOutPrayerRequestCreated(999)

		assert.Equal(t, 0, created)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no members means no notifications", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewNotificationService(s)

		mock.ExpectQuery("SELECT (.+) FROM \"prayer_request\"").
			WillReturnRows(requestRows())
		mock.ExpectQuery("SELECT (.+) FROM \"group_membership\"").
			WillReturnRows(sqlmock.NewRows([]string{"user_profile_id"}))

		created, err := svc.FanOutPrayerRequestCreated(20)

		assert.NoError(t, err)
		assert.Equal(t, 0, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFanOutMeetingReminder(t *testing.T) {
	t.Run("notifies all approved members including the creator", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewNotificationService(s)

		start := time.Date(2026, 9, 4, 19, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT (.+) FROM \"meeting\"").
			WillReturnRows(sqlmock.NewRows([]string{"meeting_id", "group_profile_id", "meeting_title", "start_time", "created_by"}).
				AddRow(10, 3, "Weekly Gathering", start, 1))
		mock.ExpectQuery("SELECT (.+) FROM \"group_membership\"").
			WillReturnRows(sqlmock.NewRows([]string{"user_profile_id"}).
				AddRow(1).AddRow(2))
		mock.ExpectExec("INSERT INTO \"notification\"").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO \"notification\"").
			WillReturnResult(sqlmock.NewResult(2, 1))

		created, err := svc.FanOutMeetingReminder(10)

		assert.NoError(t, err)
		assert.Equal(t, 2, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown meeting is not found", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewNotificationService(s)

		mock.ExpectQuery("SELECT (.+) FROM \"meeting\"").
			WillReturnRows(sqlmock.NewRows([]string{"meeting_id"}))

		created, err := svc.FanOutMeetingReminder(999)

		assert.Equal(t, 0, created)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
