package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSweep(t *testing.T) {
	t.Run("fans out due meetings and marks them sent", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewReminderService(s, NewNotificationService(s))

		start := time.Now().Add(12 * time.Hour)

		mock.ExpectQuery("SELECT (.+) FROM \"meeting\"").
			WillReturnRows(sqlmock.NewRows([]string{"meeting_id"}).AddRow(10))

		// FanOutMeetingReminder loads the meeting and its members
		mock.ExpectQuery("SELECT (.+) FROM \"meeting\"").
			WillReturnRows(sqlmock.NewRows([]string{"meeting_id", "group_profile_id", "meeting_title", "start_time", "created_by"}).
				AddRow(10, 3, "Weekly Gathering", start, 1))
		mock.ExpectQuery("SELECT (.+) FROM \"group_membership\"").
			WillReturnRows(sqlmock.NewRows([]string{"user_profile_id"}).AddRow(1).AddRow(2))
		mock.ExpectExec("INSERT INTO \"notification\"").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO \"notification\"").
			WillReturnResult(sqlmock.NewResult(2, 1))

		mock.ExpectExec("UPDATE \"meeting\"").
			WillReturnResult(sqlmock.NewResult(0, 1))

		svc.Sweep()

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing due means nothing happens", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewReminderService(s, NewNotificationService(s))

		mock.ExpectQuery("SELECT (.+) FROM \"meeting\"").
			WillReturnRows(sqlmock.NewRows([]string{"meeting_id"}))

		svc.Sweep()

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a failed fan-out leaves the flag unset for retry", func(t *testing.T) {
		s, mock, cleanup := setupTestStore(t)
		defer cleanup()
		svc := NewReminderService(s, NewNotificationService(s))

		mock.ExpectQuery("SELECT (.+) FROM \"meeting\"").
			WillReturnRows(sqlmock.NewRows([]string{"meeting_id"}).AddRow(10))
		mock.ExpectQuery("SELECT (.+) FROM \"meeting\"").
			WillReturnError(errors.New("connection reset"))

		svc.Sweep()

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
