package models

import "time"

type ChatMessage struct {
	Chat_Message_ID   int       `json:"chatMessageId" goqu:"skipinsert"`
	Group_Profile_ID  int       `json:"groupProfileId"`
	User_Profile_ID   int       `json:"userProfileId"`
	Message_Content   string    `json:"messageContent"`
	Prayer_Request_ID *int      `json:"prayerRequestId"`
	Datetime_Create   time.Time `json:"datetimeCreate"`
}

type ChatMessageCreate struct {
	Message_Content   string `json:"messageContent" binding:"required"`
	Prayer_Request_ID *int   `json:"prayerRequestId"`
}
