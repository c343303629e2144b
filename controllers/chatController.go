package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/GatherPoint/models"
	"github.com/GatherPoint/store"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

type ChatController struct {
	DB *store.Store
}

func (ctrl *ChatController) PostMessage(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	var newMessage models.ChatMessageCreate
	if err := c.ShouldBindJSON(&newMessage); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := models.ChatMessage{
		Group_Profile_ID:  groupID,
		User_Profile_ID:   currentUser.User_Profile_ID,
		Message_Content:   newMessage.Message_Content,
		Prayer_Request_ID: newMessage.Prayer_Request_ID,
		Datetime_Create:   time.Now(),
	}

	var insertedID int
	insert := ctrl.DB.DB().Insert("chat_message").Rows(message).Returning("chat_message_id")
	if _, err := insert.Executor().ScanVal(&insertedID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post message"})
		return
	}
	message.Chat_Message_ID = insertedID

	c.JSON(http.StatusCreated, message)
}

func (ctrl *ChatController) GetGroupMessages(c *gin.Context) {
	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	page, limit := paginationParams(c)

	var messages []models.ChatMessage
	err = ctrl.DB.DB().From("chat_message").
		Where(goqu.C("group_profile_id").Eq(groupID)).
		Order(goqu.C("datetime_create").Desc()).
		Limit(uint(limit)).
		Offset(uint((page - 1) * limit)).
		ScanStructs(&messages)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}
