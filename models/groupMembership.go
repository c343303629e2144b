package models

import "time"

// Membership status constants. A membership only ever moves
// pending -> approved or pending -> rejected; terminal states are frozen
// and re-joining after rejection requires a fresh request.
const (
	MembershipStatusPending  = "pending"
	MembershipStatusApproved = "approved"
	MembershipStatusRejected = "rejected"
)

type GroupMembership struct {
	Group_Membership_ID int        `json:"groupMembershipId" goqu:"skipinsert"`
	User_Profile_ID     int        `json:"userProfileId"`
	Group_Profile_ID    int        `json:"groupProfileId"`
	Membership_Status   string     `json:"membershipStatus"`
	Request_Message     string     `json:"requestMessage"`
	Datetime_Joined     *time.Time `json:"datetimeJoined"`
	Created_By          int        `json:"createdBy"`
	Updated_By          int        `json:"updatedBy"`
	Datetime_Create     time.Time  `json:"datetimeCreate"`
	Datetime_Update     time.Time  `json:"datetimeUpdate"`
}

type JoinRequestCreate struct {
	Message string `json:"message"`
}
