package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/GatherPoint/models"
	"github.com/GatherPoint/services"
	"github.com/GatherPoint/store"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

type MeetingController struct {
	DB            *store.Store
	Rsvps         *services.RsvpService
	Notifications *services.NotificationService
}

func (ctrl *MeetingController) CreateMeeting(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	var newMeeting models.MeetingCreate
	if err := c.ShouldBindJSON(&newMeeting); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meeting := models.Meeting{
		Group_Profile_ID: groupID,
		Meeting_Title:    newMeeting.Meeting_Title,
		Meeting_Location: newMeeting.Meeting_Location,
		Start_Time:       newMeeting.Start_Time,
		Meeting_Status:   models.MeetingStatusScheduled,
		Created_By:       currentUser.User_Profile_ID,
		Updated_By:       currentUser.User_Profile_ID,
		Datetime_Create:  time.Now(),
		Datetime_Update:  time.Now(),
	}

	var insertedID int
	insert := ctrl.DB.DB().Insert("meeting").Rows(meeting).Returning("meeting_id")
	if _, err := insert.Executor().ScanVal(&insertedID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meeting"})
		return
	}
	meeting.Meeting_ID = insertedID

	c.JSON(http.StatusCreated, meeting)
}

func (ctrl *MeetingController) GetGroupMeetings(c *gin.Context) {
	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	var meetings []models.Meeting
	err = ctrl.DB.DB().From("meeting").
		Where(goqu.C("group_profile_id").Eq(groupID)).
		Order(goqu.C("start_time").Asc()).
		ScanStructs(&meetings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meetings"})
		return
	}

	c.JSON(http.StatusOK, meetings)
}

// UpsertRsvp records or overwrites the caller's response to a meeting.
func (ctrl *MeetingController) UpsertRsvp(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	meetingID, err := strconv.Atoi(c.Param("meeting_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meeting ID"})
		return
	}

	var update models.RsvpUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rsvp, err := ctrl.Rsvps.UpsertRsvp(meetingID, currentUser.User_Profile_ID, update.Rsvp_Status, update.Guest_Count, update.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rsvp)
}

// GetMeetingRsvps returns every response plus the computed counts.
func (ctrl *MeetingController) GetMeetingRsvps(c *gin.Context) {
	meetingID, err := strconv.Atoi(c.Param("meeting_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meeting ID"})
		return
	}

	counts, err := ctrl.Rsvps.ComputeCounts(meetingID)
	if err != nil {
		respondError(c, err)
		return
	}

	rsvps, err := ctrl.Rsvps.GetMeetingRsvps(meetingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"counts": counts,
		"rsvps":  rsvps,
	})
}

// GetNextUpcomingMeeting returns the caller's nearest future meeting
// across all of their approved groups.
func (ctrl *MeetingController) GetNextUpcomingMeeting(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	upcoming, err := ctrl.Rsvps.GetNextUpcomingMeeting(currentUser.User_Profile_ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if upcoming == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No upcoming meetings"})
		return
	}

	c.JSON(http.StatusOK, upcoming)
}

// TriggerMeetingReminder fans out the reminder immediately instead of
// waiting for the hourly sweep.
func (ctrl *MeetingController) TriggerMeetingReminder(c *gin.Context) {
	meetingID, err := strconv.Atoi(c.Param("meeting_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meeting ID"})
		return
	}

	created, err := ctrl.Notifications.FanOutMeetingReminder(meetingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Meeting reminders queued",
		"notifications": created,
	})
}
