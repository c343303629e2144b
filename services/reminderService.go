package services

import (
	"time"

	"github.com/GatherPoint/models"
	"github.com/GatherPoint/store"
	"github.com/doug-martin/goqu/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ReminderService sweeps hourly for scheduled meetings starting within
// the next 24 hours and fans out their reminders. The reminder_sent
// flag only suppresses routine re-sends; fan-out itself stays
// at-least-once.
type ReminderService struct {
	store         *store.Store
	notifications *NotificationService
	cron          *cron.Cron
}

func NewReminderService(s *store.Store, notifications *NotificationService) *ReminderService {
	return &ReminderService{
		store:         s,
		notifications: notifications,
		cron:          cron.New(),
	}
}

// Start registers and launches the hourly sweep.
func (s *ReminderService) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Msg("meeting reminder sweep scheduled hourly")
	return nil
}

func (s *ReminderService) Stop() {
	s.cron.Stop()
}

// Sweep finds due meetings and triggers their reminder fan-out.
func (s *ReminderService) Sweep() {
	now := time.Now()

	var meetingIDs []int
	err := s.store.DB().From("meeting").
		Select("meeting_id").
		Where(
			goqu.C("meeting_status").Eq(models.MeetingStatusScheduled),
			goqu.C("reminder_sent").IsFalse(),
			goqu.C("start_time").Gt(now),
			goqu.C("start_time").Lte(now.Add(24*time.Hour)),
		).ScanVals(&meetingIDs)
	if err != nil {
		log.Error().Err(err).Msg("reminder sweep query failed")
		return
	}

	for _, meetingID := range meetingIDs {
		created, err := s.notifications.FanOutMeetingReminder(meetingID)
		if err != nil {
			log.Error().Err(err).Int("meeting_id", meetingID).Msg("meeting reminder fan-out failed")
			continue
		}

		if _, err := s.store.DB().Update("meeting").
			Set(goqu.Record{"reminder_sent": true, "datetime_update": time.Now()}).
			Where(goqu.C("meeting_id").Eq(meetingID)).
			Executor().Exec(); err != nil {
			// Next sweep will retry; members may get a duplicate reminder.
			log.Error().Err(err).Int("meeting_id", meetingID).Msg("failed to mark reminder as sent")
			continue
		}

		log.Info().Int("meeting_id", meetingID).Int("notifications", created).Msg("meeting reminders queued")
	}
}
