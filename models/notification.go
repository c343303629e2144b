package models

import "time"

// Notification type constants
const (
	NotificationTypePrayerRequest   = "prayer_request"
	NotificationTypeMeetingReminder = "meeting_reminder"
)

// Notification status constants
const (
	NotificationStatusRead   = "READ"
	NotificationStatusUnread = "UNREAD"
)

type Notification struct {
	Notification_ID          int        `json:"notificationId" goqu:"skipinsert"`
	User_Profile_ID          int        `json:"userProfileId"`
	Notification_Type        string     `json:"notificationType"`
	Notification_Message     string     `json:"notificationMessage"`
	Notification_Status      string     `json:"notificationStatus"`
	Scheduled_For            *time.Time `json:"scheduledFor"`
	Target_Group_ID          *int       `json:"targetGroupId"`
	Target_Meeting_ID        *int       `json:"targetMeetingId"`
	Target_Prayer_Request_ID *int       `json:"targetPrayerRequestId"`
	Created_By               int        `json:"createdBy"`
	Updated_By               int        `json:"updatedBy"`
	Datetime_Create          time.Time  `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update          time.Time  `json:"datetimeUpdate" goqu:"skipinsert"`
}
