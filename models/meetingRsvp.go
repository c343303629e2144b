package models

import "time"

// RSVP status constants
const (
	RsvpStatusAttending    = "attending"
	RsvpStatusNotAttending = "not_attending"
	RsvpStatusMaybe        = "maybe"
)

type MeetingRsvp struct {
	Meeting_Rsvp_ID int       `json:"meetingRsvpId" goqu:"skipinsert"`
	Meeting_ID      int       `json:"meetingId"`
	User_Profile_ID int       `json:"userProfileId"`
	Rsvp_Status     string    `json:"rsvpStatus"`
	Guest_Count     int       `json:"guestCount"`
	Notes           string    `json:"notes"`
	Created_By      int       `json:"createdBy"`
	Updated_By      int       `json:"updatedBy"`
	Datetime_Create time.Time `json:"datetimeCreate"`
	Datetime_Update time.Time `json:"datetimeUpdate"`
}

type RsvpUpdate struct {
	Rsvp_Status string `json:"rsvpStatus" binding:"required"`
	Guest_Count int    `json:"guestCount"`
	Notes       string `json:"notes"`
}

// AttendanceCounts is the authoritative attendance view for one meeting.
// Attending and Maybe include guests; NotAttending does not.
type AttendanceCounts struct {
	Attending     int `json:"attending"`
	Maybe         int `json:"maybe"`
	Not_Attending int `json:"notAttending"`
	Not_Responded int `json:"notResponded"`
}

// UpcomingMeeting is the composite read returned for a user's nearest
// future meeting: the meeting itself, its counts, and the caller's own
// RSVP if they have one.
type UpcomingMeeting struct {
	Meeting   Meeting          `json:"meeting"`
	Counts    AttendanceCounts `json:"counts"`
	Your_Rsvp *MeetingRsvp     `json:"yourRsvp"`
}
