package models

import "time"

type PrayerRequest struct {
	Prayer_Request_ID int       `json:"prayerRequestId" goqu:"skipinsert"`
	Group_Profile_ID  int       `json:"groupProfileId"`
	Subject           string    `json:"subject"`
	Prayer_Content    string    `json:"prayerContent"`
	Created_By        int       `json:"createdBy"`
	Updated_By        int       `json:"updatedBy"`
	Datetime_Create   time.Time `json:"datetimeCreate"`
	Datetime_Update   time.Time `json:"datetimeUpdate"`
}

type PrayerRequestCreate struct {
	Subject        string `json:"subject" binding:"required"`
	Prayer_Content string `json:"prayerContent"`
}
