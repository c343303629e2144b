package models

import "time"

type GroupProfile struct {
	Group_Profile_ID  int       `json:"groupProfileId" goqu:"skipinsert"`
	Group_Name        string    `json:"groupName"`
	Group_Description string    `json:"groupDescription"`
	Is_Public         bool      `json:"isPublic"`
	Meeting_Day       *string   `json:"meetingDay"`
	Meeting_Time      *string   `json:"meetingTime"`
	Latitude          *float64  `json:"latitude"`
	Longitude         *float64  `json:"longitude"`
	Is_Active         bool      `json:"isActive"`
	Created_By        int       `json:"createdBy"`
	Updated_By        int       `json:"updatedBy"`
	Datetime_Create   time.Time `json:"datetimeCreate"`
	Datetime_Update   time.Time `json:"datetimeUpdate"`
}

type GroupCreate struct {
	Group_Name        string   `json:"groupName" binding:"required"`
	Group_Description string   `json:"groupDescription"`
	Is_Public         bool     `json:"isPublic"`
	Meeting_Day       *string  `json:"meetingDay"`
	Meeting_Time      *string  `json:"meetingTime"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
}

type GroupUpdate struct {
	Group_Name        string   `json:"groupName" binding:"required"`
	Group_Description string   `json:"groupDescription"`
	Is_Public         bool     `json:"isPublic"`
	Meeting_Day       *string  `json:"meetingDay"`
	Meeting_Time      *string  `json:"meetingTime"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Is_Active         bool     `json:"isActive"`
}
