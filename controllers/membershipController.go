package controllers

import (
	"net/http"
	"strconv"

	"github.com/GatherPoint/models"
	"github.com/GatherPoint/services"
	"github.com/GatherPoint/store"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

type MembershipController struct {
	DB          *store.Store
	Memberships *services.MembershipService
}

// RequestJoin files a pending join request for the caller.
func (ctrl *MembershipController) RequestJoin(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	// the message body is optional
	var request models.JoinRequestCreate
	_ = c.ShouldBindJSON(&request)

	membership, err := ctrl.Memberships.RequestJoin(currentUser.User_Profile_ID, groupID, request.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, membership)
}

func (ctrl *MembershipController) ApproveMembership(c *gin.Context) {
	ctrl.transition(c, true)
}

func (ctrl *MembershipController) RejectMembership(c *gin.Context) {
	ctrl.transition(c, false)
}

func (ctrl *MembershipController) transition(c *gin.Context, approve bool) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)
	isAdmin := c.MustGet("admin").(bool)

	membershipID, err := strconv.Atoi(c.Param("group_membership_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid membership ID"})
		return
	}

	if !isAdmin {
		allowed, err := ctrl.canManage(currentUser.User_Profile_ID, membershipID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check permissions", "details": err.Error()})
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the group admin can manage join requests"})
			return
		}
	}

	if approve {
		err = ctrl.Memberships.Approve(membershipID, currentUser.User_Profile_ID)
	} else {
		err = ctrl.Memberships.Reject(membershipID, currentUser.User_Profile_ID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	status := models.MembershipStatusApproved
	if !approve {
		status = models.MembershipStatusRejected
	}
	c.JSON(http.StatusOK, gin.H{"message": "Membership " + status})
}

// GetMembershipStatus returns the caller's membership record for a
// group, or status "none" when they never requested to join.
func (ctrl *MembershipController) GetMembershipStatus(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	membership, err := ctrl.Memberships.GetStatus(currentUser.User_Profile_ID, groupID)
	if err != nil {
		respondError(c, err)
		return
	}
	if membership == nil {
		c.JSON(http.StatusOK, gin.H{"status": "none"})
		return
	}

	c.JSON(http.StatusOK, membership)
}

// GetPendingRequests lists a group's pending join requests for its admin.
func (ctrl *MembershipController) GetPendingRequests(c *gin.Context) {
	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	var memberships []models.GroupMembership
	err = ctrl.DB.DB().From("group_membership").
		Where(
			goqu.C("group_profile_id").Eq(groupID),
			goqu.C("membership_status").Eq(models.MembershipStatusPending),
		).
		Order(goqu.C("datetime_create").Asc()).
		ScanStructs(&memberships)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch join requests"})
		return
	}

	c.JSON(http.StatusOK, memberships)
}

// canManage reports whether the user created the group behind the
// membership record.
func (ctrl *MembershipController) canManage(userID, membershipID int) (bool, error) {
	var creatorID int
	found, err := ctrl.DB.DB().From("group_membership").
		Select(goqu.I("group_profile.created_by")).
		InnerJoin(
			goqu.T("group_profile"),
			goqu.On(goqu.Ex{"group_membership.group_profile_id": goqu.I("group_profile.group_profile_id")}),
		).
		Where(goqu.C("group_membership_id").Table("group_membership").Eq(membershipID)).
		ScanVal(&creatorID)
	if err != nil {
		return false, err
	}
	if !found {
		// let the service report NotFound consistently
		return true, nil
	}
	return creatorID == userID, nil
}
