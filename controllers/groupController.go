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

type GroupController struct {
	DB     *store.Store
	Groups *services.GroupService
}

// CreateGroup creates the group with the caller as its admin; the
// service inserts the group and the admin's approved membership in one
// transaction.
func (ctrl *GroupController) CreateGroup(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	var newGroup models.GroupCreate
	if err := c.ShouldBindJSON(&newGroup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := ctrl.Groups.CreateGroup(currentUser.User_Profile_ID, newGroup)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

func (ctrl *GroupController) GetGroup(c *gin.Context) {
	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	var group models.GroupProfile
	found, err := ctrl.DB.DB().From("group_profile").
		Where(goqu.C("group_profile_id").Eq(groupID)).
		ScanStruct(&group)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	c.JSON(http.StatusOK, group)
}

// GetPublicGroups lists active public groups for discovery.
func (ctrl *GroupController) GetPublicGroups(c *gin.Context) {
	var groups []models.GroupProfile
	err := ctrl.DB.DB().From("group_profile").
		Where(
			goqu.C("is_public").IsTrue(),
			goqu.C("is_active").IsTrue(),
		).
		Order(goqu.C("group_name").Asc()).
		ScanStructs(&groups)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	c.JSON(http.StatusOK, groups)
}

func (ctrl *GroupController) UpdateGroup(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)
	isAdmin := c.MustGet("admin").(bool)

	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	if !isAdmin && !ctrl.isGroupAdmin(currentUser.User_Profile_ID, groupID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the group admin can update this group"})
		return
	}

	var updateGroup models.GroupUpdate
	if err := c.ShouldBindJSON(&updateGroup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := ctrl.DB.DB().Update("group_profile").
		Set(goqu.Record{
			"group_name":        updateGroup.Group_Name,
			"group_description": updateGroup.Group_Description,
			"is_public":         updateGroup.Is_Public,
			"meeting_day":       updateGroup.Meeting_Day,
			"meeting_time":      updateGroup.Meeting_Time,
			"latitude":          updateGroup.Latitude,
			"longitude":         updateGroup.Longitude,
			"is_active":         updateGroup.Is_Active,
			"updated_by":        currentUser.User_Profile_ID,
			"datetime_update":   time.Now(),
		}).
		Where(goqu.C("group_profile_id").Eq(groupID))

	result, err := update.Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update group"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group updated successfully"})
}

// DeleteGroup cascades through every dependent record; see
// services.GroupService.DeleteGroup for the ordering contract.
func (ctrl *GroupController) DeleteGroup(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)
	isAdmin := c.MustGet("admin").(bool)

	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	if !isAdmin && !ctrl.isGroupAdmin(currentUser.User_Profile_ID, groupID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the group admin can delete this group"})
		return
	}

	if err := ctrl.Groups.DeleteGroup(groupID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group and all related records deleted successfully"})
}

func (ctrl *GroupController) GetGroupMembers(c *gin.Context) {
	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	query := ctrl.DB.DB().From("group_membership").
		Select(
			"user_profile.user_profile_id",
			"user_profile.username",
			"user_profile.email",
			"user_profile.first_name",
			"user_profile.last_name",
		).
		InnerJoin(
			goqu.T("user_profile"),
			goqu.On(goqu.Ex{"group_membership.user_profile_id": goqu.I("user_profile.user_profile_id")}),
		).
		Where(
			goqu.C("group_profile_id").Table("group_membership").Eq(groupID),
			goqu.C("membership_status").Table("group_membership").Eq(models.MembershipStatusApproved),
		)

	sql, args, err := query.ToSQL()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to construct query"})
		return
	}

	var users []models.UserProfile
	if err := ctrl.DB.DB().ScanStructs(&users, sql, args...); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group members"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// isGroupAdmin reports whether the user created the group.
func (ctrl *GroupController) isGroupAdmin(userID, groupID int) bool {
	var count int
	_, err := ctrl.DB.DB().From("group_profile").
		Select(goqu.COUNT("*")).
		Where(
			goqu.C("group_profile_id").Eq(groupID),
			goqu.C("created_by").Eq(userID),
		).ScanVal(&count)
	return err == nil && count > 0
}
