package models

import "time"

// PrayerResponse records one user's response to a prayer request.
// Unique per (prayer_request_id, user_profile_id).
type PrayerResponse struct {
	Prayer_Response_ID int       `json:"prayerResponseId" goqu:"skipinsert"`
	Prayer_Request_ID  int       `json:"prayerRequestId"`
	User_Profile_ID    int       `json:"userProfileId"`
	Response_Message   string    `json:"responseMessage"`
	Datetime_Create    time.Time `json:"datetimeCreate"`
	Datetime_Update    time.Time `json:"datetimeUpdate"`
}

type PrayerResponseCreate struct {
	Response_Message string `json:"responseMessage"`
}
