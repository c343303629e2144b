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

type NotificationController struct {
	DB *store.Store
}

// GetUserNotifications lists the caller's notifications, newest first.
// Pass ?unread=true to filter to unread only.
func (ctrl *NotificationController) GetUserNotifications(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	query := ctrl.DB.DB().From("notification").
		Where(goqu.C("user_profile_id").Eq(currentUser.User_Profile_ID))

	if c.Query("unread") == "true" {
		query = query.Where(goqu.C("notification_status").Eq(models.NotificationStatusUnread))
	}

	var notifications []models.Notification
	err := query.Order(goqu.C("datetime_create").Desc()).ScanStructs(&notifications)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// ToggleNotificationStatus flips a notification between READ and UNREAD.
func (ctrl *NotificationController) ToggleNotificationStatus(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	notificationID, err := strconv.Atoi(c.Param("notification_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	var notification models.Notification
	found, err := ctrl.DB.DB().From("notification").
		Where(
			goqu.C("notification_id").Eq(notificationID),
			goqu.C("user_profile_id").Eq(currentUser.User_Profile_ID),
		).ScanStruct(&notification)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notification"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	newStatus := models.NotificationStatusRead
	if notification.Notification_Status == models.NotificationStatusRead {
		newStatus = models.NotificationStatusUnread
	}

	_, err = ctrl.DB.DB().Update("notification").
		Set(goqu.Record{
			"notification_status": newStatus,
			"updated_by":          currentUser.User_Profile_ID,
			"datetime_update":     time.Now(),
		}).
		Where(goqu.C("notification_id").Eq(notificationID)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked " + newStatus})
}

// MarkAllNotificationsRead marks every unread notification of the
// caller as read in one statement.
func (ctrl *NotificationController) MarkAllNotificationsRead(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	result, err := ctrl.DB.DB().Update("notification").
		Set(goqu.Record{
			"notification_status": models.NotificationStatusRead,
			"updated_by":          currentUser.User_Profile_ID,
			"datetime_update":     time.Now(),
		}).
		Where(
			goqu.C("user_profile_id").Eq(currentUser.User_Profile_ID),
			goqu.C("notification_status").Eq(models.NotificationStatusUnread),
		).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	updated, _ := result.RowsAffected()
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read", "updated": updated})
}
