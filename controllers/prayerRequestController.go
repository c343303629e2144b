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
	"github.com/rs/zerolog/log"
)

type PrayerRequestController struct {
	DB            *store.Store
	Notifications *services.NotificationService
}

// CreatePrayerRequest inserts the request, then fans out notifications.
// The fan-out is deliberately outside the insert: the request exists
// even if some or all notifications fail.
func (ctrl *PrayerRequestController) CreatePrayerRequest(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	var newRequest models.PrayerRequestCreate
	if err := c.ShouldBindJSON(&newRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request := models.PrayerRequest{
		Group_Profile_ID: groupID,
		Subject:          newRequest.Subject,
		Prayer_Content:   newRequest.Prayer_Content,
		Created_By:       currentUser.User_Profile_ID,
		Updated_By:       currentUser.User_Profile_ID,
		Datetime_Create:  time.Now(),
		Datetime_Update:  time.Now(),
	}

	var insertedID int
	insert := ctrl.DB.DB().Insert("prayer_request").Rows(request).Returning("prayer_request_id")
	if _, err := insert.Executor().ScanVal(&insertedID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prayer request"})
		return
	}
	request.Prayer_Request_ID = insertedID

	created, err := ctrl.Notifications.FanOutPrayerRequestCreated(insertedID)
	if err != nil {
		log.Error().Err(err).Int("prayer_request_id", insertedID).Msg("prayer request fan-out failed")
	}

	c.JSON(http.StatusCreated, gin.H{
		"prayerRequest": request,
		"notifications": created,
	})
}

func (ctrl *PrayerRequestController) GetGroupPrayerRequests(c *gin.Context) {
	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	var requests []models.PrayerRequest
	err = ctrl.DB.DB().From("prayer_request").
		Where(goqu.C("group_profile_id").Eq(groupID)).
		Order(goqu.C("datetime_create").Desc()).
		ScanStructs(&requests)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// RespondToPrayerRequest records the caller's response. One response
// per (request, user) pair; the unique index catches duplicates.
func (ctrl *PrayerRequestController) RespondToPrayerRequest(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	prayerRequestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID"})
		return
	}

	var newResponse models.PrayerResponseCreate
	_ = c.ShouldBindJSON(&newResponse)

	response := models.PrayerResponse{
		Prayer_Request_ID: prayerRequestID,
		User_Profile_ID:   currentUser.User_Profile_ID,
		Response_Message:  newResponse.Response_Message,
		Datetime_Create:   time.Now(),
		Datetime_Update:   time.Now(),
	}

	var insertedID int
	insert := ctrl.DB.DB().Insert("prayer_response").Rows(response).Returning("prayer_response_id")
	if _, err := insert.Executor().ScanVal(&insertedID); err != nil {
		if store.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already responded to this prayer request"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record response"})
		return
	}
	response.Prayer_Response_ID = insertedID

	c.JSON(http.StatusCreated, response)
}

func (ctrl *PrayerRequestController) GetPrayerResponses(c *gin.Context) {
	prayerRequestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID"})
		return
	}

	var responses []models.PrayerResponse
	err = ctrl.DB.DB().From("prayer_response").
		Where(goqu.C("prayer_request_id").Eq(prayerRequestID)).
		Order(goqu.C("datetime_create").Asc()).
		ScanStructs(&responses)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch responses"})
		return
	}

	c.JSON(http.StatusOK, responses)
}
