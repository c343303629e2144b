package models

import "time"

// Meeting status constants
const (
	MeetingStatusScheduled = "scheduled"
	MeetingStatusCancelled = "cancelled"
	MeetingStatusCompleted = "completed"
)

type Meeting struct {
	Meeting_ID       int       `json:"meetingId" goqu:"skipinsert"`
	Group_Profile_ID int       `json:"groupProfileId"`
	Meeting_Title    string    `json:"meetingTitle"`
	Meeting_Location string    `json:"meetingLocation"`
	Start_Time       time.Time `json:"startTime"`
	Meeting_Status   string    `json:"meetingStatus"`
	Reminder_Sent    bool      `json:"reminderSent"`
	Created_By       int       `json:"createdBy"`
	Updated_By       int       `json:"updatedBy"`
	Datetime_Create  time.Time `json:"datetimeCreate"`
	Datetime_Update  time.Time `json:"datetimeUpdate"`
}

type MeetingCreate struct {
	Meeting_Title    string    `json:"meetingTitle" binding:"required"`
	Meeting_Location string    `json:"meetingLocation"`
	Start_Time       time.Time `json:"startTime" binding:"required"`
}
