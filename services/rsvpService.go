package services

import (
	"fmt"
	"time"

	"github.com/GatherPoint/models"
	"github.com/GatherPoint/store"
	"github.com/doug-martin/goqu/v9"
)

// RsvpService upserts meeting responses and computes authoritative
// attendance counts.
type RsvpService struct {
	store *store.Store
}

func NewRsvpService(s *store.Store) *RsvpService {
	return &RsvpService{store: s}
}

// rsvpTally is the per-status aggregate row behind ComputeCounts.
type rsvpTally struct {
	Rsvp_Status string
	Responses   int
	Guests      int
}

// UpsertRsvp records or overwrites the user's response to a meeting.
// The read and the insert-or-update branch run in one transaction so
// two calls for the same pair never produce two rows; a concurrent
// racer past the read is stopped by the unique (meeting, user) index
// and surfaces as store.ErrConstraintViolation.
func (s *RsvpService) UpsertRsvp(meetingID, userID int, status string, guestCount int, notes string) (*models.MeetingRsvp, error) {
	switch status {
	case models.RsvpStatusAttending, models.RsvpStatusNotAttending, models.RsvpStatusMaybe:
	default:
		return nil, fmt.Errorf("%w: unknown rsvp status %q", store.ErrValidation, status)
	}
	if guestCount < 0 {
		return nil, fmt.Errorf("%w: guest count must not be negative", store.ErrValidation)
	}

	rsvp := models.MeetingRsvp{
		Meeting_ID:      meetingID,
		User_Profile_ID: userID,
		Rsvp_Status:     status,
		Guest_Count:     guestCount,
		Notes:           notes,
		Created_By:      userID,
		Updated_By:      userID,
		Datetime_Create: time.Now(),
		Datetime_Update: time.Now(),
	}

	err := s.store.WithTx(func(tx *goqu.TxDatabase) error {
		var existing models.MeetingRsvp
		found, err := tx.From("meeting_rsvp").
			Where(
				goqu.C("meeting_id").Eq(meetingID),
				goqu.C("user_profile_id").Eq(userID),
			).ScanStruct(&existing)
		if err != nil {
			return err
		}

		if found {
			_, err := tx.Update("meeting_rsvp").
				Set(goqu.Record{
					"rsvp_status":     status,
					"guest_count":     guestCount,
					"notes":           notes,
					"updated_by":      userID,
					"datetime_update": time.Now(),
				}).
				Where(goqu.C("meeting_rsvp_id").Eq(existing.Meeting_Rsvp_ID)).
				Executor().Exec()
			if err != nil {
				return err
			}
			rsvp.Meeting_Rsvp_ID = existing.Meeting_Rsvp_ID
			rsvp.Datetime_Create = existing.Datetime_Create
			return nil
		}

		var insertedID int
		insert := tx.Insert("meeting_rsvp").Rows(rsvp).Returning("meeting_rsvp_id")
		if _, err := insert.Executor().ScanVal(&insertedID); err != nil {
			return err
		}
		rsvp.Meeting_Rsvp_ID = insertedID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &rsvp, nil
}

// ComputeCounts aggregates a meeting's RSVPs: attending and maybe each
// count the responder plus their guests, not_attending counts rows only,
// and notResponded is approved membership minus total responses, never
// negative.
func (s *RsvpService) ComputeCounts(meetingID int) (*models.AttendanceCounts, error) {
	var meeting models.Meeting
	found, err := s.store.DB().From("meeting").
		Where(goqu.C("meeting_id").Eq(meetingID)).
		ScanStruct(&meeting)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: meeting %d", store.ErrNotFound, meetingID)
	}

	var tallies []rsvpTally
	err = s.store.DB().From("meeting_rsvp").
		Select(
			goqu.C("rsvp_status"),
			goqu.COUNT("*").As("responses"),
			goqu.COALESCE(goqu.SUM("guest_count"), 0).As("guests"),
		).
		Where(goqu.C("meeting_id").Eq(meetingID)).
		GroupBy("rsvp_status").
		ScanStructs(&tallies)
	if err != nil {
		return nil, err
	}

	counts := models.AttendanceCounts{}
	totalResponses := 0
	for _, tally := range tallies {
		totalResponses += tally.Responses
		switch tally.Rsvp_Status {
		case models.RsvpStatusAttending:
			counts.Attending = tally.Responses + tally.Guests
		case models.RsvpStatusMaybe:
			counts.Maybe = tally.Responses + tally.Guests
		case models.RsvpStatusNotAttending:
			// guests never count toward a "no"
			counts.Not_Attending = tally.Responses
		}
	}

	var memberCount int
	if _, err := s.store.DB().From("group_membership").
		Select(goqu.COUNT("*")).
		Where(
			goqu.C("group_profile_id").Eq(meeting.Group_Profile_ID),
			goqu.C("membership_status").Eq(models.MembershipStatusApproved),
		).ScanVal(&memberCount); err != nil {
		return nil, err
	}

	// A member may leave after responding; clamp instead of reporting a
	// negative balance.
	if remaining := memberCount - totalResponses; remaining > 0 {
		counts.Not_Responded = remaining
	}

	return &counts, nil
}

// GetMeetingRsvps lists every response recorded for a meeting.
func (s *RsvpService) GetMeetingRsvps(meetingID int) ([]models.MeetingRsvp, error) {
	var rsvps []models.MeetingRsvp
	err := s.store.DB().From("meeting_rsvp").
		Where(goqu.C("meeting_id").Eq(meetingID)).
		Order(goqu.C("datetime_update").Desc()).
		ScanStructs(&rsvps)
	if err != nil {
		return nil, err
	}
	return rsvps, nil
}

// GetNextUpcomingMeeting returns the nearest future scheduled meeting
// across all of the user's approved groups, with counts and the
// caller's own RSVP. Returns nil when nothing is coming up.
func (s *RsvpService) GetNextUpcomingMeeting(userID int) (*models.UpcomingMeeting, error) {
	var meeting models.Meeting
	found, err := s.store.DB().From("meeting").
		Select(goqu.I("meeting.*")).
		InnerJoin(
			goqu.T("group_membership"),
			goqu.On(goqu.Ex{"meeting.group_profile_id": goqu.I("group_membership.group_profile_id")}),
		).
		Where(
			goqu.C("user_profile_id").Table("group_membership").Eq(userID),
			goqu.C("membership_status").Table("group_membership").Eq(models.MembershipStatusApproved),
			goqu.C("meeting_status").Table("meeting").Eq(models.MeetingStatusScheduled),
			goqu.C("start_time").Table("meeting").Gt(time.Now()),
		).
		Order(goqu.I("meeting.start_time").Asc()).
		Limit(1).
		ScanStruct(&meeting)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	counts, err := s.ComputeCounts(meeting.Meeting_ID)
	if err != nil {
		return nil, err
	}

	view := models.UpcomingMeeting{Meeting: meeting, Counts: *counts}

	var own models.MeetingRsvp
	found, err = s.store.DB().From("meeting_rsvp").
		Where(
			goqu.C("meeting_id").Eq(meeting.Meeting_ID),
			goqu.C("user_profile_id").Eq(userID),
		).ScanStruct(&own)
	if err != nil {
		return nil, err
	}
	if found {
		view.Your_Rsvp = &own
	}

	return &view, nil
}
