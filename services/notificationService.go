package services

import (
	"fmt"
	"time"

	"github.com/GatherPoint/models"
	"github.com/GatherPoint/store"
	"github.com/doug-martin/goqu/v9"
	"github.com/rs/zerolog/log"
)

// NotificationService fans out durable notification records to group
// members on trigger events. Delivery transport is someone else's
// problem; this service only writes rows.
type NotificationService struct {
	store *store.Store
}

func NewNotificationService(s *store.Store) *NotificationService {
	return &NotificationService{store: s}
}

// memberIDsForFanOut returns the approved members of a group, minus any
// excluded users.
func (s *NotificationService) memberIDsForFanOut(groupID int, excludeUserIDs []int) ([]int, error) {
	query := s.store.DB().From("group_membership").
		Select("user_profile_id").
		Where(
			goqu.C("group_profile_id").Eq(groupID),
			goqu.C("membership_status").Eq(models.MembershipStatusApproved),
		)

	if len(excludeUserIDs) > 0 {
		query = query.Where(goqu.C("user_profile_id").NotIn(excludeUserIDs))
	}

	var userIDs []int
	if err := query.ScanVals(&userIDs); err != nil {
		return nil, fmt.Errorf("failed to load group members for fan-out: %v", err)
	}
	return userIDs, nil
}

// FanOutPrayerRequestCreated inserts one prayer_request notification per
// approved member of the request's group, excluding the author.
//
// Fan-out is at-least-once and non-transactional with the triggering
// write: each insert is independent, and a failed recipient is logged
// and skipped so the prayer request itself is never rolled back.
// Returns the number of records created.
func (s *NotificationService) FanOutPrayerRequestCreated(prayerRequestID int) (int, error) {
	var request models.PrayerRequest
	found, err := s.store.DB().From("prayer_request").
		Where(goqu.C("prayer_request_id").Eq(prayerRequestID)).
		ScanStruct(&request)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%w: prayer request %d", store.ErrNotFound, prayerRequestID)
	}

	memberIDs, err := s.memberIDsForFanOut(request.Group_Profile_ID, []int{request.Created_By})
	if err != nil {
		return 0, err
	}

	message := fmt.Sprintf("New prayer request in your group: %s", request.Subject)

	created := 0
	for _, memberID := range memberIDs {
		notification := models.Notification{
			User_Profile_ID:          memberID,
			Notification_Type:        models.NotificationTypePrayerRequest,
			Notification_Message:     message,
			Notification_Status:      models.NotificationStatusUnread,
			Target_Group_ID:          &request.Group_Profile_ID,
			Target_Prayer_Request_ID: &request.Prayer_Request_ID,
			Created_By:               request.Created_By,
			Updated_By:               request.Created_By,
		}

		if _, err := s.store.DB().Insert("notification").Rows(notification).Executor().Exec(); err != nil {
			log.Error().Err(err).
				Int("user_profile_id", memberID).
				Int("prayer_request_id", prayerRequestID).
				Msg("failed to create prayer_request notification")
			continue
		}
		created++
	}

	return created, nil
}

// FanOutMeetingReminder inserts one meeting_reminder notification per
// approved member of the meeting's group, the creator included,
// scheduled for 24 hours before the meeting starts. Same at-least-once
// contract as FanOutPrayerRequestCreated.
func (s *NotificationService) FanOutMeetingReminder(meetingID int) (int, error) {
	var meeting models.Meeting
	found, err := s.store.DB().From("meeting").
		Where(goqu.C("meeting_id").Eq(meetingID)).
		ScanStruct(&meeting)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%w: meeting %d", store.ErrNotFound, meetingID)
	}

	memberIDs, err := s.memberIDsForFanOut(meeting.Group_Profile_ID, nil)
	if err != nil {
		return 0, err
	}

	scheduledFor := meeting.Start_Time.Add(-24 * time.Hour)
	message := fmt.Sprintf("Reminder: %s on %s", meeting.Meeting_Title, meeting.Start_Time.Format("Mon Jan 2 at 3:04 PM"))

	created := 0
	for _, memberID := range memberIDs {
		notification := models.Notification{
			User_Profile_ID:      memberID,
			Notification_Type:    models.NotificationTypeMeetingReminder,
			Notification_Message: message,
			Notification_Status:  models.NotificationStatusUnread,
			Scheduled_For:        &scheduledFor,
			Target_Group_ID:      &meeting.Group_Profile_ID,
			Target_Meeting_ID:    &meeting.Meeting_ID,
			Created_By:           meeting.Created_By,
			Updated_By:           meeting.Created_By,
		}

		if _, err := s.store.DB().Insert("notification").Rows(notification).Executor().Exec(); err != nil {
			log.Error().Err(err).
				Int("user_profile_id", memberID).
				Int("meeting_id", meetingID).
				Msg("failed to create meeting_reminder notification")
			continue
		}
		created++
	}

	return created, nil
}
